package submit

import "github.com/luminasmiles/lead-relay/pkg/logging"

// NotificationKind classifies a progress message shown to the submitter.
type NotificationKind string

const (
	NotifySending NotificationKind = "sending"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notifier is the surface the coordinator reports progress to. The
// presentation layer owns rendering; the coordinator owns when and what.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}

// LogNotifier reports progress through the structured logger.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a notifier backed by the logger.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the progress message.
func (n *LogNotifier) Notify(kind NotificationKind, message string) {
	n.logger.Info("submission progress", "kind", string(kind), "message", message)
}

var _ Notifier = (*LogNotifier)(nil)

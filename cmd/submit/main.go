// Command submit sends one lead through the submission coordinator from the
// command line: the same validate/screen/extract/deliver flow the website
// form runs, without a browser.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	appconfig "github.com/luminasmiles/lead-relay/internal/config"
	"github.com/luminasmiles/lead-relay/internal/delivery"
	"github.com/luminasmiles/lead-relay/internal/leads"
	"github.com/luminasmiles/lead-relay/internal/submit"
	"github.com/luminasmiles/lead-relay/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	var input leads.Submission
	flag.StringVar(&input.Name, "name", "", "lead name")
	flag.StringVar(&input.Email, "email", "", "lead email")
	flag.StringVar(&input.Phone, "phone", "", "lead phone")
	flag.StringVar(&input.Service, "service", "", "requested service")
	flag.StringVar(&input.Message, "message", "", "optional message")
	flag.StringVar(&input.SubmissionID, "submission-id", "", "reuse an existing submission id (retry of the same attempt)")
	flag.Parse()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	client := delivery.NewBoundedClient(delivery.WithLogger(logger))

	coordCfg := submit.Config{
		Services: cfg.Services,
		Logger:   logger,
	}
	if cfg.WebhookURL != "" {
		coordCfg.Primary = delivery.NewWebhookSender(client, cfg.WebhookURL, cfg.WebhookTimeout, logger)
	}
	if cfg.BackupRelayURL != "" {
		coordCfg.Backup = delivery.NewRelaySender(client, cfg.BackupRelayURL, cfg.WebhookTimeout, logger)
	}

	coordinator := submit.NewCoordinator(coordCfg)

	result, err := coordinator.Submit(context.Background(), input)
	if err != nil {
		if ve, ok := leads.AsValidationError(err); ok {
			fmt.Fprintln(os.Stderr, "invalid submission:", ve.Detail())
		} else {
			fmt.Fprintln(os.Stderr, "submission failed:", err)
		}
		os.Exit(1)
	}

	if result.Status == submit.StatusDiscarded {
		return
	}

	out, _ := json.MarshalIndent(map[string]any{
		"submissionId": result.Lead.SubmissionID,
		"message":      result.Message,
		"primary":      result.Primary,
		"backup":       result.Backup,
	}, "", "  ")
	fmt.Println(string(out))
}

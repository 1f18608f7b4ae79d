package leads

import "github.com/google/uuid"

// KeyGenerator produces one unique submission identifier per logical
// submission. The identifier is carried unchanged into every channel so
// downstream systems can deduplicate repeated deliveries.
type KeyGenerator interface {
	NewKey() string
}

// UUIDKeyGenerator issues random UUID submission identifiers.
type UUIDKeyGenerator struct{}

// NewKey returns a fresh identifier.
func (UUIDKeyGenerator) NewKey() string {
	return uuid.NewString()
}

var _ KeyGenerator = UUIDKeyGenerator{}

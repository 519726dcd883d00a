package store

import (
	"context"
)

// Persister reads and writes the single serialized store record.
// Load returns nil data and a nil error when no record exists yet.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

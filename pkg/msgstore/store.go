package msgstore

import (
	"context"

	"github.com/pkg/errors"

	"github.com/go-go-golems/chatstore/pkg/messages"
)

// ErrInvalidArgument is returned when an operation is given options it does
// not recognize. Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// SetupOptions configures Setup. No options are currently recognized; any
// non-empty set is rejected with ErrInvalidArgument.
type SetupOptions map[string]any

// Store persists an append-only, time-ordered log of message bags.
type Store interface {
	// Setup creates the backing table if it does not exist. Idempotent.
	Setup(ctx context.Context, opts SetupOptions) error
	// Drop deletes all stored rows. The table itself is kept; callers that
	// ran Setup once can keep saving after a Drop.
	Drop(ctx context.Context) error
	// Save appends one bag as a single stored row.
	Save(ctx context.Context, bag messages.Bag) error
	// Load returns every stored bag's messages, oldest first, concatenated
	// into one bag.
	Load(ctx context.Context) (messages.Bag, error)
	Close() error
}

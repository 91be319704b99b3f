package msgstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/go-go-golems/chatstore/pkg/messages"
)

// MemoryStore is an in-memory Store for embedding callers and tests. It
// mirrors the SQL store's semantics — including the codec round trip per
// Save/Load — so consumers observe identical ordering and failure behavior.
type MemoryStore struct {
	mu    sync.Mutex
	codec messages.Codec
	clock Clock
	rows  []memoryRow
}

type memoryRow struct {
	payload string
	addedAt int64
}

var _ Store = &MemoryStore{}

func NewMemoryStore(codec messages.Codec, clock Clock) (*MemoryStore, error) {
	if codec == nil {
		return nil, errors.New("memory message store: codec is nil")
	}
	if clock == nil {
		return nil, errors.New("memory message store: clock is nil")
	}
	return &MemoryStore{codec: codec, clock: clock}, nil
}

func (s *MemoryStore) Setup(_ context.Context, opts SetupOptions) error {
	if len(opts) > 0 {
		return errors.Wrap(ErrInvalidArgument, "memory message store: unsupported setup options")
	}
	return nil
}

func (s *MemoryStore) Drop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

func (s *MemoryStore) Save(_ context.Context, bag messages.Bag) error {
	payload, err := s.codec.Serialize(bag.Messages())
	if err != nil {
		return err
	}
	addedAt := s.clock.Now().Unix()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, memoryRow{payload: payload, addedAt: addedAt})
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (messages.Bag, error) {
	s.mu.Lock()
	rows := make([]memoryRow, len(s.rows))
	copy(rows, s.rows)
	s.mu.Unlock()

	// Stable sort keeps insertion order within a timestamp, matching the
	// SQL store's added_at/id ordering.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].addedAt < rows[j].addedAt })

	bag := messages.Bag{}
	for _, row := range rows {
		msgs, err := s.codec.Deserialize(row.payload)
		if err != nil {
			return messages.Bag{}, err
		}
		bag.Append(msgs...)
	}
	return bag, nil
}

func (s *MemoryStore) Close() error { return nil }

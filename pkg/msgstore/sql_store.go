package msgstore

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-go-golems/chatstore/pkg/messages"
)

// SQLStore persists message bags into a single relational table, one row per
// Save call. All collaborators are injected; the store holds no mutable state
// between calls and performs no recovery of its own — every collaborator
// failure is surfaced to the caller.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	table   string
	codec   messages.Codec
	clock   Clock
}

var _ Store = &SQLStore{}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func NewSQLStore(db *sql.DB, dialect Dialect, table string, codec messages.Codec, clock Clock) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("sql message store: db is nil")
	}
	if dialect == nil {
		return nil, errors.New("sql message store: dialect is nil")
	}
	if codec == nil {
		return nil, errors.New("sql message store: codec is nil")
	}
	if clock == nil {
		return nil, errors.New("sql message store: clock is nil")
	}
	table = strings.TrimSpace(table)
	if !tableNamePattern.MatchString(table) {
		return nil, errors.Errorf("sql message store: invalid table name %q", table)
	}
	return &SQLStore{db: db, dialect: dialect, table: table, codec: codec, clock: clock}, nil
}

// Table returns the configured table name.
func (s *SQLStore) Table() string { return s.table }

// Setup creates the message table unless it already exists. The only
// recognized option set is the empty one.
func (s *SQLStore) Setup(ctx context.Context, opts SetupOptions) error {
	if len(opts) > 0 {
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		return errors.Wrapf(ErrInvalidArgument, "sql message store: unsupported setup options: %s", strings.Join(keys, ", "))
	}
	exists, err := s.tableExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	for _, stmt := range s.dialect.CreateTableSQL(s.table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "sql message store: create table %s", s.table)
		}
	}
	return nil
}

// Drop deletes every stored row. The table itself is kept so that a
// following Setup stays a no-op; a missing table makes Drop a no-op.
func (s *SQLStore) Drop(ctx context.Context) error {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.DeleteSQL(s.table)); err != nil {
		return errors.Wrapf(err, "sql message store: delete rows from %s", s.table)
	}
	return nil
}

// Save serializes the bag and inserts exactly one row, stamped with the
// clock's current Unix time.
func (s *SQLStore) Save(ctx context.Context, bag messages.Bag) error {
	payload, err := s.codec.Serialize(bag.Messages())
	if err != nil {
		return err
	}
	addedAt := s.clock.Now().Unix()
	if _, err := s.db.ExecContext(ctx, s.dialect.InsertSQL(s.table), payload, addedAt); err != nil {
		return errors.Wrapf(err, "sql message store: insert into %s", s.table)
	}
	return nil
}

// Load returns all stored messages oldest first. Rows sharing an added_at
// second come back in insertion (id) order.
func (s *SQLStore) Load(ctx context.Context) (messages.Bag, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.SelectSQL(s.table))
	if err != nil {
		return messages.Bag{}, errors.Wrapf(err, "sql message store: query %s", s.table)
	}
	defer func() { _ = rows.Close() }()

	bag := messages.Bag{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return messages.Bag{}, errors.Wrap(err, "sql message store: scan row")
		}
		msgs, err := s.codec.Deserialize(payload)
		if err != nil {
			return messages.Bag{}, err
		}
		bag.Append(msgs...)
	}
	if err := rows.Err(); err != nil {
		return messages.Bag{}, errors.Wrap(err, "sql message store: iterate rows")
	}
	return bag, nil
}

// Close closes the underlying connection handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) tableExists(ctx context.Context) (bool, error) {
	query, args := s.dialect.TableExistsSQL(s.table)
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, errors.Wrapf(err, "sql message store: introspect table %s", s.table)
	}
	return n > 0, nil
}

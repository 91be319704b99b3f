package msgstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Dialect captures the per-backend SQL shapes the store needs. Backends that
// cannot auto-increment natively report RequiresSequence and get a companion
// sequence object named <table>_seq.
type Dialect interface {
	Name() string
	// CreateTableSQL returns the statements that create the message table,
	// in execution order.
	CreateTableSQL(table string) []string
	// TableExistsSQL returns an introspection query yielding a count, plus
	// its bind arguments.
	TableExistsSQL(table string) (string, []any)
	InsertSQL(table string) string
	SelectSQL(table string) string
	DeleteSQL(table string) string
	RequiresSequence() bool
	SequenceName(table string) string
}

// SQLiteDialect covers both the cgo (mattn) and pure-Go (modernc) drivers.
type SQLiteDialect struct{}

var _ Dialect = SQLiteDialect{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) CreateTableSQL(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	messages TEXT NOT NULL,
	added_at INTEGER NOT NULL
)`, table)}
}

func (SQLiteDialect) TableExistsSQL(table string) (string, []any) {
	return `SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, []any{table}
}

func (SQLiteDialect) InsertSQL(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (messages, added_at) VALUES (?, ?)`, table)
}

func (SQLiteDialect) SelectSQL(table string) string {
	return fmt.Sprintf(`SELECT messages FROM %s ORDER BY added_at ASC, id ASC`, table)
}

func (SQLiteDialect) DeleteSQL(table string) string {
	return fmt.Sprintf(`DELETE FROM %s`, table)
}

func (SQLiteDialect) RequiresSequence() bool { return false }
func (SQLiteDialect) SequenceName(string) string { return "" }

type PostgresDialect struct{}

var _ Dialect = PostgresDialect{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) CreateTableSQL(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE %s (
	id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	messages TEXT NOT NULL,
	added_at INTEGER NOT NULL
)`, table)}
}

func (PostgresDialect) TableExistsSQL(table string) (string, []any) {
	return `SELECT COUNT(1) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`, []any{table}
}

func (PostgresDialect) InsertSQL(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (messages, added_at) VALUES ($1, $2)`, table)
}

func (PostgresDialect) SelectSQL(table string) string {
	return fmt.Sprintf(`SELECT messages FROM %s ORDER BY added_at ASC, id ASC`, table)
}

func (PostgresDialect) DeleteSQL(table string) string {
	return fmt.Sprintf(`DELETE FROM %s`, table)
}

func (PostgresDialect) RequiresSequence() bool { return false }
func (PostgresDialect) SequenceName(string) string { return "" }

// OracleDialect is the sequence-backed auto-increment family: the id column
// draws its default from a companion sequence instead of a native
// auto-increment.
type OracleDialect struct{}

var _ Dialect = OracleDialect{}

func (OracleDialect) Name() string { return "oracle" }

func (d OracleDialect) CreateTableSQL(table string) []string {
	seq := d.SequenceName(table)
	return []string{
		fmt.Sprintf(`CREATE SEQUENCE %s`, seq),
		fmt.Sprintf(`CREATE TABLE %s (
	id NUMBER(19) DEFAULT %s.NEXTVAL NOT NULL,
	messages CLOB NOT NULL,
	added_at NUMBER(10) NOT NULL,
	PRIMARY KEY (id)
)`, table, seq),
	}
}

func (OracleDialect) TableExistsSQL(table string) (string, []any) {
	// Oracle folds unquoted identifiers to upper case.
	return `SELECT COUNT(1) FROM user_tables WHERE table_name = :1`, []any{strings.ToUpper(table)}
}

func (OracleDialect) InsertSQL(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (messages, added_at) VALUES (:1, :2)`, table)
}

func (OracleDialect) SelectSQL(table string) string {
	return fmt.Sprintf(`SELECT messages FROM %s ORDER BY added_at ASC, id ASC`, table)
}

func (OracleDialect) DeleteSQL(table string) string {
	return fmt.Sprintf(`DELETE FROM %s`, table)
}

func (OracleDialect) RequiresSequence() bool { return true }

func (OracleDialect) SequenceName(table string) string {
	return table + "_seq"
}

// DialectForDriverName maps a database/sql driver name to its dialect.
func DialectForDriverName(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return SQLiteDialect{}, nil
	case "postgres", "pgx", "postgresql":
		return PostgresDialect{}, nil
	case "oracle", "godror", "oci8":
		return OracleDialect{}, nil
	default:
		return nil, errors.Errorf("no dialect for driver %q", driver)
	}
}

// DialectForDB sniffs the dialect from the connection's driver type.
func DialectForDB(db *sql.DB) (Dialect, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	name := strings.ToLower(fmt.Sprintf("%T", db.Driver()))
	switch {
	case strings.Contains(name, "sqlite"):
		return SQLiteDialect{}, nil
	case strings.Contains(name, "pgx"), strings.Contains(name, "postgres"), strings.Contains(name, "pq."):
		return PostgresDialect{}, nil
	case strings.Contains(name, "godror"), strings.Contains(name, "oci"), strings.Contains(name, "oracle"):
		return OracleDialect{}, nil
	default:
		return nil, errors.Errorf("no dialect for driver type %s", name)
	}
}

package msgstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteDialect_SQL(t *testing.T) {
	d := SQLiteDialect{}
	require.Equal(t, "sqlite", d.Name())
	require.False(t, d.RequiresSequence())

	stmts := d.CreateTableSQL("chat_messages")
	require.Len(t, stmts, 1)
	require.Contains(t, stmts[0], "CREATE TABLE chat_messages")
	require.Contains(t, stmts[0], "AUTOINCREMENT")

	query, args := d.TableExistsSQL("chat_messages")
	require.Contains(t, query, "sqlite_master")
	require.Equal(t, []any{"chat_messages"}, args)

	require.Contains(t, d.InsertSQL("chat_messages"), "VALUES (?, ?)")
	require.Contains(t, d.SelectSQL("chat_messages"), "ORDER BY added_at ASC, id ASC")
	require.Equal(t, "DELETE FROM chat_messages", d.DeleteSQL("chat_messages"))
}

func TestPostgresDialect_SQL(t *testing.T) {
	d := PostgresDialect{}
	require.Equal(t, "postgres", d.Name())
	require.False(t, d.RequiresSequence())

	stmts := d.CreateTableSQL("chat_messages")
	require.Len(t, stmts, 1)
	require.Contains(t, stmts[0], "GENERATED BY DEFAULT AS IDENTITY")

	require.Contains(t, d.InsertSQL("chat_messages"), "VALUES ($1, $2)")

	query, args := d.TableExistsSQL("chat_messages")
	require.Contains(t, query, "information_schema.tables")
	require.Equal(t, []any{"chat_messages"}, args)
}

func TestOracleDialect_SequenceBackedAutoIncrement(t *testing.T) {
	d := OracleDialect{}
	require.Equal(t, "oracle", d.Name())
	require.True(t, d.RequiresSequence())
	require.Equal(t, "chat_messages_seq", d.SequenceName("chat_messages"))

	stmts := d.CreateTableSQL("chat_messages")
	require.Len(t, stmts, 2)
	require.True(t, strings.HasPrefix(stmts[0], "CREATE SEQUENCE chat_messages_seq"))
	require.Contains(t, stmts[1], "DEFAULT chat_messages_seq.NEXTVAL")

	// Oracle's catalog stores unquoted identifiers upper-cased.
	_, args := d.TableExistsSQL("chat_messages")
	require.Equal(t, []any{"CHAT_MESSAGES"}, args)

	require.Contains(t, d.InsertSQL("chat_messages"), "VALUES (:1, :2)")
}

func TestDialectForDriverName(t *testing.T) {
	cases := map[string]string{
		"sqlite3":  "sqlite",
		"sqlite":   "sqlite",
		"postgres": "postgres",
		"pgx":      "postgres",
		"godror":   "oracle",
		"oci8":     "oracle",
	}
	for driver, want := range cases {
		d, err := DialectForDriverName(driver)
		require.NoError(t, err, driver)
		require.Equal(t, want, d.Name(), driver)
	}

	_, err := DialectForDriverName("mysql")
	require.Error(t, err)
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("CHATSTORE_DRIVER", "sqlite")
	t.Setenv("CHATSTORE_DSN", "/tmp/history.db")
	t.Setenv("CHATSTORE_TABLE", "history")
	t.Setenv("CHATSTORE_LOG_LEVEL", "debug")

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", s.Driver)
	require.Equal(t, "/tmp/history.db", s.DSN)
	require.Equal(t, "history", s.Table)
	require.Equal(t, "debug", s.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CHATSTORE_DRIVER", "CHATSTORE_DSN", "CHATSTORE_TABLE", "CHATSTORE_LOG_LEVEL"} {
		// t.Setenv registers the restore; unset so the defaults apply.
		t.Setenv(key, "placeholder")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite3", s.Driver)
	require.Equal(t, "chatstore.db", s.DSN)
	require.Equal(t, "chat_messages", s.Table)
	require.Equal(t, "info", s.LogLevel)
}

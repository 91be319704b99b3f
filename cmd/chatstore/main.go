package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/go-go-golems/chatstore/internal/config"
	"github.com/go-go-golems/chatstore/pkg/messages"
	"github.com/go-go-golems/chatstore/pkg/msgstore"
)

var (
	flagDriver   string
	flagDSN      string
	flagTable    string
	flagLogLevel string
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "chatstore",
		Short: "Persist and inspect an ordered chat message history",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(flagLogLevel)
			if err != nil {
				return errors.Wrapf(err, "invalid log level %q", flagLogLevel)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", settings.Driver, "database/sql driver (sqlite3 or sqlite)")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", settings.DSN, "database DSN")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", settings.Table, "message table name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", settings.LogLevel, "log level")

	rootCmd.AddCommand(newSetupCmd(), newDropCmd(), newSaveCmd(), newLoadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (*msgstore.SQLStore, error) {
	dialect, err := msgstore.DialectForDriverName(flagDriver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(flagDriver, flagDSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", flagDriver)
	}
	store, err := msgstore.NewSQLStore(db, dialect, flagTable, messages.JSONCodec{}, msgstore.SystemClock{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the message table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Setup(cmd.Context(), nil); err != nil {
				return err
			}
			log.Info().Str("table", flagTable).Msg("message table ready")
			return nil
		},
	}
}

func newDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Delete all stored messages (the table is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Drop(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("table", flagTable).Msg("message table emptied")
			return nil
		},
	}
}

func newSaveCmd() *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "save [role:content ...]",
		Short: "Append one bag of messages to the history",
		Long: `Append one bag of messages to the history.

Messages are given as role:content arguments, e.g.

    chatstore save user:"hi there" assistant:"hello"

or, with --stdin, as a JSON message array on standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var msgs []messages.Message
			var err error
			if fromStdin {
				msgs, err = readMessagesJSON(cmd.InOrStdin())
			} else {
				msgs, err = parseMessageArgs(args)
			}
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				return errors.New("no messages given")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Save(cmd.Context(), messages.NewBag(msgs...)); err != nil {
				return err
			}
			log.Info().Int("count", len(msgs)).Msg("saved message bag")
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read a JSON message array from stdin")
	return cmd
}

func newLoadCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print the full message history, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			bag, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printMessages(cmd.OutOrStdout(), bag.Messages(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml or json)")
	return cmd
}

func parseMessageArgs(args []string) ([]messages.Message, error) {
	msgs := make([]messages.Message, 0, len(args))
	for _, arg := range args {
		role, content, ok := strings.Cut(arg, ":")
		if !ok || strings.TrimSpace(role) == "" {
			return nil, errors.Errorf("malformed message %q, want role:content", arg)
		}
		msgs = append(msgs, messages.Message{
			Kind:    messages.KindText,
			Role:    messages.Role(strings.TrimSpace(role)),
			Content: content,
		})
	}
	return msgs, nil
}

func readMessagesJSON(r io.Reader) ([]messages.Message, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read stdin")
	}
	return messages.JSONCodec{}.Deserialize(string(payload))
}

func printMessages(w io.Writer, msgs []messages.Message, format string) error {
	switch strings.ToLower(format) {
	case "yaml":
		b, err := yaml.Marshal(msgs)
		if err != nil {
			return errors.Wrap(err, "marshal yaml")
		}
		_, err = w.Write(b)
		return err
	case "json":
		b, err := json.MarshalIndent(msgs, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal json")
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Settings holds the CLI defaults, resolved from the environment. Flags
// override these at the command level.
type Settings struct {
	Driver   string `env:"CHATSTORE_DRIVER" envDefault:"sqlite3"`
	DSN      string `env:"CHATSTORE_DSN" envDefault:"chatstore.db"`
	Table    string `env:"CHATSTORE_TABLE" envDefault:"chat_messages"`
	LogLevel string `env:"CHATSTORE_LOG_LEVEL" envDefault:"info"`
}

// Load reads settings from the environment, picking up a .env file from the
// working directory when present.
func Load() (Settings, error) {
	_ = godotenv.Load()
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Wrap(err, "parse environment")
	}
	return s, nil
}

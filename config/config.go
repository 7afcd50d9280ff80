// Package config reads the bot's settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// StoreBackend selects where answers are persisted.
type StoreBackend string

const (
	BackendSQLite   StoreBackend = "sqlite"
	BackendFirebase StoreBackend = "firebase"
	BackendPostgres StoreBackend = "postgres"
)

// Config is the complete process configuration.
type Config struct {
	Telegram TelegramConfig
	Sheets   SheetsConfig
	Store    StoreConfig
	Admin    AdminConfig
	Logging  LoggingConfig

	// CatalogFile replaces the built-in survey when set.
	CatalogFile string
}

type TelegramConfig struct {
	Token string // TELEGRAM_BOT_TOKEN, required
}

// SheetsConfig locates the export spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string // SHEETS_SPREADSHEET_ID, required
	Range           string // SHEETS_RANGE, default Sheet1
	CredentialsFile string // SHEETS_CREDENTIALS_FILE
	CredentialsJSON string // SHEETS_CREDENTIALS_JSON
}

// StoreConfig selects and locates the response store.
type StoreConfig struct {
	Backend StoreBackend // STORE_BACKEND, default sqlite

	SQLitePath string // SQLITE_PATH, default survey.db

	DatabaseURL string // DATABASE_URL, postgres only

	FirebaseKeyPath     string // FIREBASE_SERVICE_ACCOUNT_KEY_PATH
	FirebaseDatabaseURL string // FIREBASE_DATABASE_URL
}

type AdminConfig struct {
	Addr  string // ADMIN_ADDR; the admin API is off when empty
	Token string // ADMIN_TOKEN; bearer token required when set
}

type LoggingConfig struct {
	Level  string // LOG_LEVEL: debug, info, warn, error
	Format string // LOG_FORMAT: console or json
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing default .env is not an error.
func LoadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err != nil && !required && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			Range:           getenv("SHEETS_RANGE", "Sheet1"),
			CredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
			CredentialsJSON: os.Getenv("SHEETS_CREDENTIALS_JSON"),
		},
		Store: StoreConfig{
			Backend:             StoreBackend(strings.ToLower(getenv("STORE_BACKEND", string(BackendSQLite)))),
			SQLitePath:          getenv("SQLITE_PATH", "survey.db"),
			DatabaseURL:         os.Getenv("DATABASE_URL"),
			FirebaseKeyPath:     os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH"),
			FirebaseDatabaseURL: os.Getenv("FIREBASE_DATABASE_URL"),
		},
		Admin: AdminConfig{
			Addr:  os.Getenv("ADMIN_ADDR"),
			Token: os.Getenv("ADMIN_TOKEN"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getenv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getenv("LOG_FORMAT", "console")),
		},
		CatalogFile: os.Getenv("CATALOG_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN environment variable not set"))
	}
	if c.Sheets.SpreadsheetID == "" {
		errs = append(errs, errors.New("SHEETS_SPREADSHEET_ID environment variable not set"))
	}
	if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
		errs = append(errs, errors.New("one of SHEETS_CREDENTIALS_FILE or SHEETS_CREDENTIALS_JSON must be set"))
	}

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH must not be empty"))
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL environment variable not set"))
		}
	case BackendFirebase:
		if c.Store.FirebaseKeyPath == "" {
			errs = append(errs, errors.New("FIREBASE_SERVICE_ACCOUNT_KEY_PATH environment variable not set"))
		}
		if c.Store.FirebaseDatabaseURL == "" {
			errs = append(errs, errors.New("FIREBASE_DATABASE_URL environment variable not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q is not one of sqlite, postgres, firebase", c.Store.Backend))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not one of console, json", c.Logging.Format))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

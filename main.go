package main

import (
	"SurveyBot/admin"
	"SurveyBot/catalog"
	"SurveyBot/config"
	"SurveyBot/handler"
	"SurveyBot/repo"
	"SurveyBot/survey"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// responseStore is what the survey engine and the admin API need from a
// storage backend.
type responseStore interface {
	survey.ResponseStore
	Close() error
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("survey bot stopped")
	}
}

func run() error {
	var envFile, catalogFile, logLevel string

	flags := pflag.NewFlagSet("surveybot", pflag.ContinueOnError)
	flags.StringVar(&envFile, "env-file", ".env", "file of KEY=value lines loaded into the environment")
	flags.StringVar(&catalogFile, "catalog", "", "YAML survey definition (overrides CATALOG_FILE)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if err := config.LoadEnvFile(envFile, flags.Changed("env-file")); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if catalogFile != "" {
		cfg.CatalogFile = catalogFile
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	log.Logger = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.Load(cfg.CatalogFile); err != nil {
			return err
		}
	}
	logger.Info().Int("questions", cat.Len()).Msg("survey catalog loaded")

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info().Str("backend", string(cfg.Store.Backend)).Msg("response store ready")

	sink, err := repo.NewSheetsSink(ctx, repo.SheetsConfig{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		Range:           cfg.Sheets.Range,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: []byte(cfg.Sheets.CredentialsJSON),
	}, cat, logger)
	if err != nil {
		return err
	}

	b, err := bot.New(cfg.Telegram.Token, bot.WithDefaultHandler(handler.DefaultHandler(logger)))
	if err != nil {
		return fmt.Errorf("error creating bot: %w", err)
	}

	engine := survey.NewEngine(cat, store, sink, handler.NewTelegramTransport(b), survey.NewMemorySessions(), logger)
	handler.NewSurveyBotHandler(engine, b, logger).Register(b)

	if cfg.Admin.Addr != "" {
		adminServer := admin.NewServer(store, engine, cfg.Admin.Token, logger)
		go func() {
			if err := adminServer.ListenAndServe(ctx, cfg.Admin.Addr); err != nil {
				logger.Error().Err(err).Msg("admin API stopped")
			}
		}()
	}

	logger.Info().Msg("bot started")
	b.Start(ctx)
	logger.Info().Msg("bot stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (responseStore, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return repo.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.BackendFirebase:
		return repo.NewFirebaseStore(ctx, cfg.FirebaseKeyPath, cfg.FirebaseDatabaseURL)
	default:
		return repo.NewSQLiteStore(cfg.SQLitePath)
	}
}

func newLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

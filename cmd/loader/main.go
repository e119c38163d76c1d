// Package main implements the bulk importer. It reads a JSON fixture of
// authors and quotes and loads it through the same repositories and
// service the API uses, one record at a time.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/jsamuelsen/quotes-api/internal/adapters/postgres"
	"github.com/jsamuelsen/quotes-api/internal/app"
	"github.com/jsamuelsen/quotes-api/internal/platform/config"
	"github.com/jsamuelsen/quotes-api/internal/platform/logging"
)

// fixture is the JSON shape the loader consumes.
type fixture struct {
	Authors []fixtureAuthor `json:"authors"`
	Quotes  []fixtureQuote  `json:"quotes"`
}

type fixtureAuthor struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

type fixtureQuote struct {
	Author string `json:"author"`
	Quote  struct {
		Text string `json:"text"`
	} `json:"quote"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var filePath string

	pflag.StringVar(&filePath, "file", "", "path to the JSON fixture to load")
	pflag.Parse()

	if filePath == "" {
		return fmt.Errorf("-file is required")
	}

	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name + "-loader",
		Version: cfg.App.Version,
	})
	slog.SetDefault(logger)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	dbCfg := postgres.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(dbCfg.URL(), logger); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	dbClient, err := postgres.NewClient(ctx, dbCfg, logger)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer dbClient.Close()

	characters := postgres.NewCharacterRepository(dbClient.Pool(), logger)
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Characters: characters,
		Quotes:     postgres.NewQuoteRepository(dbClient.Pool(), logger),
		Logger:     logger,
	})

	// Authors first so the quotes can resolve them by name. Creation is
	// idempotent, so re-running the loader against an existing database
	// only adds the quotes.
	for _, author := range fx.Authors {
		if err := characters.Create(ctx, author.Name, author.FullName); err != nil {
			return fmt.Errorf("creating author %q: %w", author.Name, err)
		}
	}

	logger.Info("authors loaded", slog.Int("count", len(fx.Authors)))

	for i, quote := range fx.Quotes {
		if err := service.CreateQuote(ctx, quote.Author, quote.Quote.Text); err != nil {
			return fmt.Errorf("creating quote %d for %q: %w", i, quote.Author, err)
		}
	}

	logger.Info("quotes loaded", slog.Int("count", len(fx.Quotes)))

	return nil
}

// Package postgres implements the repository ports against PostgreSQL
// using pgx. The connection pool is constructed explicitly in main and
// injected into each repository; nothing in this package reaches for
// process-wide state.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config contains PostgreSQL connection settings.
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// URL renders the config as a postgres:// connection URL, the format
// shared by pgxpool and golang-migrate.
func (c Config) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode)
}

// Client owns the pgx connection pool shared by the repositories.
type Client struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewClient parses the config, establishes the pool and verifies
// connectivity with a ping before returning.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	logger.Info("connected to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
	)

	return &Client{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pool for repository construction.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Close releases all pool connections. Safe to call once at shutdown.
func (c *Client) Close() {
	c.pool.Close()
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string {
	return "postgres"
}

// Check implements ports.HealthChecker by pinging the pool.
func (c *Client) Check(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

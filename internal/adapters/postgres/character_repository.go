package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/quotes-api/internal/domain"
)

// CharacterRepository implements ports.CharacterRepository against the
// authors table.
type CharacterRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCharacterRepository creates a character repository backed by pool.
func NewCharacterRepository(pool *pgxpool.Pool, logger *slog.Logger) *CharacterRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &CharacterRepository{pool: pool, logger: logger}
}

// Resolve looks a character up by id when the token has the canonical
// UUID shape, otherwise by name. Driver failures are logged here with
// full detail and surfaced as an opaque storage error.
func (r *CharacterRepository) Resolve(ctx context.Context, token string) (*domain.Character, error) {
	query := `SELECT id, name, full_name FROM authors WHERE name = $1 LIMIT 1`
	if domain.IsCharacterID(token) {
		query = `SELECT id, name, full_name FROM authors WHERE id = $1 LIMIT 1`
	}

	var character domain.Character

	err := r.pool.QueryRow(ctx, query, token).
		Scan(&character.ID, &character.Name, &character.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("character", token)
		}

		r.logger.ErrorContext(ctx, "resolving character",
			slog.String("token", token),
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError("getting character", err)
	}

	return &character, nil
}

// Create inserts a character with a freshly generated id. The unique
// constraint on name makes creation idempotent: inserting a name that
// already exists is a no-op and the existing row keeps its id.
func (r *CharacterRepository) Create(ctx context.Context, name, fullName string) error {
	query := `INSERT INTO authors (id, name, full_name) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, uuid.NewString(), name, fullName)
	if err != nil {
		r.logger.ErrorContext(ctx, "creating character",
			slog.String("name", name),
			slog.Any("error", err),
		)

		return domain.NewStorageError("creating character", err)
	}

	return nil
}

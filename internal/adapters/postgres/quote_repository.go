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

// QuoteRepository implements ports.QuoteRepository against the quotes
// table. Every read joins authors so callers always receive the quote
// together with its character's display data.
type QuoteRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewQuoteRepository creates a quote repository backed by pool.
func NewQuoteRepository(pool *pgxpool.Pool, logger *slog.Logger) *QuoteRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteRepository{pool: pool, logger: logger}
}

const quoteColumns = `q.id, q.quote, a.id, a.name, a.full_name
	FROM quotes q JOIN authors a ON a.id = q.author_id`

// randomNotFound distinguishes an empty table from a character that has
// no quotes, so the caller's error message names the character it asked
// for.
func randomNotFound(authorID string) error {
	if authorID != "" {
		return domain.NewNotFoundError("quote for character", authorID)
	}

	return domain.NewNotFoundError("quote", "")
}

func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var quote domain.Quote

	err := row.Scan(
		&quote.ID,
		&quote.Text,
		&quote.Author.ID,
		&quote.Author.Name,
		&quote.Author.FullName,
	)
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// GetRandom selects one quote uniformly at random, restricted to
// authorID when non-empty. Random selection happens in the database so
// concurrent callers never see coordinated results.
func (r *QuoteRepository) GetRandom(ctx context.Context, authorID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` ORDER BY random() LIMIT 1`
	args := []any{}

	if authorID != "" {
		query = `SELECT ` + quoteColumns + ` WHERE q.author_id = $1 ORDER BY random() LIMIT 1`
		args = append(args, authorID)
	}

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, randomNotFound(authorID)
		}

		r.logger.ErrorContext(ctx, "selecting random quote",
			slog.String("author_id", authorID),
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError("getting quote", err)
	}

	return quote, nil
}

// GetByID fetches a single quote with its author.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` WHERE q.id = $1`

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		r.logger.ErrorContext(ctx, "getting quote",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError("getting quote", err)
	}

	return quote, nil
}

// Create inserts a quote with a freshly generated id.
func (r *QuoteRepository) Create(ctx context.Context, authorID, text string) error {
	query := `INSERT INTO quotes (id, author_id, quote) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, uuid.NewString(), authorID, text)
	if err != nil {
		r.logger.ErrorContext(ctx, "creating quote",
			slog.String("author_id", authorID),
			slog.Any("error", err),
		)

		return domain.NewStorageError("creating quote", err)
	}

	return nil
}

// Update replaces the text and author of an existing quote. Updating an
// id that does not exist affects zero rows and is not an error; the
// service layer checks existence before calling Update.
func (r *QuoteRepository) Update(ctx context.Context, id, authorID, text string) error {
	query := `UPDATE quotes SET author_id = $1, quote = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, authorID, text, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "updating quote",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domain.NewStorageError("updating quote", err)
	}

	return nil
}

// Delete removes a quote unconditionally. Deleting an id that does not
// exist is a no-op.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM quotes WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "deleting quote",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domain.NewStorageError("deleting quote", err)
	}

	return nil
}

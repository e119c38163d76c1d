// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never storage rows or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrStorage, etc.)
//   - Absence is always domain.ErrNotFound, never a storage fault
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes-api/internal/domain"
)

// CharacterRepository performs character lookup and creation.
type CharacterRepository interface {
	// Resolve locates a character from a free-text token. A token matching
	// the canonical UUID shape is looked up by id, anything else by name;
	// exactly one record is returned (LIMIT 1 semantics).
	// Returns domain.ErrNotFound if no row matches and domain.ErrStorage
	// if the backing query itself fails.
	Resolve(ctx context.Context, token string) (*domain.Character, error)

	// Create inserts a character, generating its id. Creation is idempotent
	// on the unique name: a conflict on an existing name is swallowed as
	// success, leaving the existing row untouched.
	Create(ctx context.Context, name, fullName string) error
}

// QuoteRepository performs the quote operations against storage.
// Every read joins the quote with its character so results carry author
// display data inline.
type QuoteRepository interface {
	// GetRandom selects one quote uniformly at random, scoped to authorID
	// when non-empty. An empty result set returns domain.ErrNotFound.
	GetRandom(ctx context.Context, authorID string) (*domain.Quote, error)

	// GetByID fetches a single quote.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// Create inserts a quote, generating its id. The caller must have
	// already validated that authorID references an existing character;
	// the repository does not re-validate.
	Create(ctx context.Context, authorID, text string) error

	// Update replaces both mutable fields of a quote. The caller supplies
	// final values; there are no partial-field semantics at this layer.
	Update(ctx context.Context, id, authorID, text string) error

	// Delete removes a quote unconditionally. Deleting a non-existent id
	// is a no-op, not an error.
	Delete(ctx context.Context, id string) error
}

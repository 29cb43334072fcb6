package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for Author data access operations
type Repository interface {
	// Create inserts a new author. ID và CreatedBy phải được set sẵn.
	Create(ctx context.Context, a *Author) error

	// Update ghi đè name, bio. Errors: ErrAuthorNotFound
	Update(ctx context.Context, id uuid.UUID, name string, bio *string) error

	// Delete removes author by ID
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks (FK từ books)
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// List theo name ASC kèm số book
	List(ctx context.Context) ([]AuthorWithBookCount, error)

	// ListOptions theo name ASC, được cache
	ListOptions(ctx context.Context) ([]Option, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

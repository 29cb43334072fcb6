package book

import (
	"context"
)

// Repository defines the interface for Book data access operations
type Repository interface {
	// Create errors: ErrISBNExists (books_pkey), ErrAuthorNotExists (FK)
	Create(ctx context.Context, b *Book) error

	// Update ghi đè mọi field trừ isbn. Errors: ErrBookNotFound, ErrAuthorNotExists
	Update(ctx context.Context, isbn string, b *Book) error

	// Delete errors: ErrBookNotFound
	Delete(ctx context.Context, isbn string) error

	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// List theo title ASC kèm author name
	List(ctx context.Context) ([]BookWithAuthor, error)

	Exists(ctx context.Context, isbn string) (bool, error)
}

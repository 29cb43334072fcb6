package book

import (
	"context"
	"io"

	"github.com/google/uuid"

	"bookstore-admin/internal/shared/submission"
)

// AuthorLookup là phần của author.Service mà book cần
type AuthorLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service defines business logic operations for Book domain
type Service interface {
	Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error)
	Delete(ctx context.Context, isbn string) error
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	List(ctx context.Context) ([]BookWithAuthor, error)

	// Export ghi danh sách books dạng xlsx vào w
	Export(ctx context.Context, w io.Writer) error
}

package author

import (
	"context"

	"github.com/google/uuid"

	"bookstore-admin/internal/shared/submission"
)

// Service defines business logic operations for Author domain
type Service interface {
	// Submit chạy form submission (new/update/delete) qua pipeline
	Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error)

	// Delete xóa trực tiếp (DELETE /dashboard/authors/:id), không qua form
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context) ([]AuthorWithBookCount, error)
	Options(ctx context.Context) ([]Option, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

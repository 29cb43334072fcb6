package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa interface cho data access layer
type Repository interface {
	// Create tạo user mới
	// Errors: ErrEmailAlreadyExists, ErrUsernameAlreadyExists
	Create(ctx context.Context, user *User) error

	// FindByID errors: ErrUserNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail errors: ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// DeleteByEmail trả về false nếu không có user nào bị xóa.
	// Authors và books của user bị xóa theo (ON DELETE CASCADE).
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}

package user

import (
	"context"

	"github.com/google/uuid"

	"bookstore-admin/internal/shared/submission"
)

// Service định nghĩa business logic cho authentication
type Service interface {
	// Register chạy RegisterForm qua pipeline (intent new, không cần actor)
	Register(ctx context.Context, values submission.Values) (*submission.Result, error)

	// Login trả về LoginResult.Errors khi form sai hoặc credentials không đúng
	Login(ctx context.Context, form LoginForm) (*LoginResult, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/infrastructure/database"
	pkgdb "bookstore-admin/pkg/database"
)

// Unique constraints trong migrations/00001_init.sql
const (
	usersEmailKey    = "users_email_key"
	usersUsernameKey = "users_username_key"
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	db pkgdb.DBTX
}

// NewPostgresRepository nhận pool hoặc transaction
func NewPostgresRepository(db pkgdb.DBTX) user.Repository {
	return &postgresRepository{db: db}
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, u.ID, u.Email, u.Username, u.PasswordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, usersEmailKey):
			return user.ErrEmailAlreadyExists
		case database.IsUniqueViolation(err, usersUsernameKey):
			return user.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail: email đã được lowercase ở DecodeForm
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users
	` + where

	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &u, nil
}

// ========================================
// EXISTENCE CHECKS
// ========================================

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *postgresRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

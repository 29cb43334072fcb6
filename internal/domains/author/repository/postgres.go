package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/infrastructure/database"
	"bookstore-admin/pkg/cache"
	pkgdb "bookstore-admin/pkg/database"
)

const (
	authorsHasBooksFK = "books_author_id_fkey"
)

// postgresRepository implements author.Repository
type postgresRepository struct {
	db      pkgdb.DBTX
	options *optionsCache
	group   singleflight.Group
}

// NewPostgresRepository creates a new author repository instance.
// c có thể nil (vd: seed chạy trong transaction)
func NewPostgresRepository(db pkgdb.DBTX, c cache.Cache) author.Repository {
	return &postgresRepository{db: db, options: newOptionsCache(c)}
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
        INSERT INTO authors (id, name, bio, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `

	err := r.db.QueryRow(ctx, query, a.ID, a.Name, a.Bio, a.CreatedBy).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateOptions(ctx)
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, name string, bio *string) error {
	query := `
        UPDATE authors
        SET name = $2, bio = $3, updated_at = NOW()
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query, id, name, bio)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidateOptions(ctx)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, authorsHasBooksFK) {
			return author.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidateOptions(ctx)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `
        SELECT id, name, bio, created_by, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var a author.Author
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Bio,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.AuthorWithBookCount, error) {
	query := `
        SELECT a.id, a.name, a.bio, a.created_by, a.created_at, a.updated_at,
               COUNT(b.isbn) AS book_count
        FROM authors a
        LEFT JOIN books b ON b.author_id = a.id
        GROUP BY a.id
        ORDER BY a.name ASC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.AuthorWithBookCount, 0)
	for rows.Next() {
		var a author.AuthorWithBookCount
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Bio,
			&a.CreatedBy,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.BookCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	return authors, rows.Err()
}

// ListOptions: cache -> singleflight -> database
func (r *postgresRepository) ListOptions(ctx context.Context) ([]author.Option, error) {
	if cached, ok := r.options.get(ctx); ok {
		return cached, nil
	}

	v, err, _ := r.group.Do(optionsCacheKey, func() (interface{}, error) {
		gen := r.options.generation()
		options, err := r.loadOptions(ctx)
		if err != nil {
			return nil, err
		}
		r.options.store(ctx, gen, options)
		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]author.Option), nil
}

func (r *postgresRepository) loadOptions(ctx context.Context) ([]author.Option, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list author options: %w", err)
	}
	defer rows.Close()

	options := make([]author.Option, 0)
	for rows.Next() {
		var o author.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan author option: %w", err)
		}
		options = append(options, o)
	}

	return options, rows.Err()
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidateOptions(ctx context.Context) {
	r.options.invalidate(ctx)
}

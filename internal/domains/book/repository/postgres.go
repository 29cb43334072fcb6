package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookstore-admin/internal/domains/book"
	"bookstore-admin/internal/infrastructure/database"
	pkgdb "bookstore-admin/pkg/database"
)

// Constraint names trong migrations/00001_init.sql
const (
	booksPKey     = "books_pkey"
	booksAuthorFK = "books_author_id_fkey"
)

type postgresRepository struct {
	db pkgdb.DBTX
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(db pkgdb.DBTX) book.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
        INSERT INTO books (isbn, title, summary, published_at, author_id, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `

	err := r.db.QueryRow(ctx, query,
		b.ISBN,
		b.Title,
		b.Summary,
		b.PublishedAt,
		b.AuthorID,
		b.CreatedBy,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapWriteError("create", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, isbn string, b *book.Book) error {
	query := `
        UPDATE books
        SET title = $2, summary = $3, published_at = $4, author_id = $5, updated_at = NOW()
        WHERE isbn = $1
    `

	tag, err := r.db.Exec(ctx, query, isbn, b.Title, b.Summary, b.PublishedAt, b.AuthorID)
	if err != nil {
		return mapWriteError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, isbn string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	query := `
        SELECT isbn, title, summary, published_at, author_id, created_by, created_at, updated_at
        FROM books
        WHERE isbn = $1
    `

	var b book.Book
	err := r.db.QueryRow(ctx, query, isbn).Scan(
		&b.ISBN,
		&b.Title,
		&b.Summary,
		&b.PublishedAt,
		&b.AuthorID,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]book.BookWithAuthor, error) {
	query := `
        SELECT b.isbn, b.title, b.summary, b.published_at, b.author_id, b.created_by,
               b.created_at, b.updated_at, a.name
        FROM books b
        JOIN authors a ON a.id = b.author_id
        ORDER BY b.title ASC, b.isbn ASC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.BookWithAuthor, 0)
	for rows.Next() {
		var b book.BookWithAuthor
		if err := rows.Scan(
			&b.ISBN,
			&b.Title,
			&b.Summary,
			&b.PublishedAt,
			&b.AuthorID,
			&b.CreatedBy,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

func (r *postgresRepository) Exists(ctx context.Context, isbn string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`, isbn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

// mapWriteError: constraint violation -> domain error
func mapWriteError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err, booksPKey):
		return book.ErrISBNExists
	case database.IsForeignKeyViolation(err, booksAuthorFK):
		return book.ErrAuthorNotExists
	default:
		return fmt.Errorf("failed to %s book: %w", op, err)
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookstore-admin/internal/domains/author"
	authorRepo "bookstore-admin/internal/domains/author/repository"
	"bookstore-admin/internal/domains/book"
	bookRepo "bookstore-admin/internal/domains/book/repository"
	"bookstore-admin/internal/domains/user"
	userRepo "bookstore-admin/internal/domains/user/repository"
	pkgdb "bookstore-admin/pkg/database"
)

const (
	demoEmail    = "admin@remix.run"
	demoUsername = "d&Wz"
	demoPassword = "password"
)

type seedBook struct {
	ISBN        string
	Title       string
	Summary     string
	PublishedAt string
}

var demoAuthor = struct {
	Name string
	Bio  string
}{
	Name: "Robert C. Martin",
	Bio:  "Robert C. Martin is a professional developer since 1970",
}

var demoBooks = []seedBook{
	{"978-2-3260-0286-9", "Clean Agile", "Practice clean agile", "2021-07-01"},
	{"978-2-3260-0287-9", "Clean Architecture", "Become a pro of clean software architecture", "2021-05-01"},
	{"978-2-3260-0287-10", "The Clean Coder", "Become a pro of clean coding", "2021-05-01"},
	{"978-2-3260-0287-11", "Clean Code", "", "2021-05-01"},
	{"978-2-3260-0287-12", "Clean Craftsmanship", "In Clean Craftsmanship, the legendary Robert C. Martin (\"Uncle Bob\") " +
		"has written the principles that define the profession--and the craft--of software development. " +
		"Uncle Bob brings together the disciplines, standards, and ethics you need to deliver robust, " +
		"effective code and to be proud of all the software you write.", "2021-05-01"},
}

// Summary là kết quả của một lần seed
type Summary struct {
	UserID   uuid.UUID
	AuthorID uuid.UUID
	Books    int
}

// Seed xóa demo user (authors, books của user bị cascade) rồi tạo lại trong một transaction
func Seed(ctx context.Context, db pkgdb.Beginner) (*Summary, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	summary := &Summary{}
	err = pkgdb.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		users := userRepo.NewPostgresRepository(tx)
		authors := authorRepo.NewPostgresRepository(tx, nil)
		books := bookRepo.NewPostgresRepository(tx)

		// cleanup: không sao nếu user chưa tồn tại
		deleted, err := users.DeleteByEmail(ctx, demoEmail)
		if err != nil {
			return err
		}
		log.Debug().Bool("deleted", deleted).Str("email", demoEmail).Msg("Demo user cleanup")

		u := &user.User{
			ID:           uuid.New(),
			Email:        demoEmail,
			Username:     demoUsername,
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}
		summary.UserID = u.ID

		bio := demoAuthor.Bio
		a := &author.Author{ID: uuid.New(), Name: demoAuthor.Name, Bio: &bio, CreatedBy: u.ID}
		if err := authors.Create(ctx, a); err != nil {
			return fmt.Errorf("create demo author: %w", err)
		}
		summary.AuthorID = a.ID

		for _, sb := range demoBooks {
			b, err := sb.toBook(a.ID, u.ID)
			if err != nil {
				return err
			}
			if err := books.Create(ctx, b); err != nil {
				return fmt.Errorf("create book %s: %w", sb.ISBN, err)
			}
			summary.Books++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (sb seedBook) toBook(authorID, creator uuid.UUID) (*book.Book, error) {
	published, err := time.Parse(book.DateLayout, sb.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", sb.ISBN, err)
	}

	var summary *string
	if sb.Summary != "" {
		s := sb.Summary
		summary = &s
	}

	return &book.Book{
		ISBN:        sb.ISBN,
		Title:       sb.Title,
		Summary:     summary,
		PublishedAt: published,
		AuthorID:    authorID,
		CreatedBy:   creator,
	}, nil
}

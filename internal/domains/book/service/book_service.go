package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstore-admin/internal/domains/book"
	"bookstore-admin/internal/shared/submission"
)

const listPath = "/dashboard/books"

type bookService struct {
	repo     book.Repository
	authors  book.AuthorLookup
	now      func() time.Time
	pipeline *submission.Pipeline[book.BookForm]
}

// Option cấu hình bookService
type Option func(*bookService)

// WithClock thay clock dùng cho rule publishedAt
func WithClock(now func() time.Time) Option {
	return func(s *bookService) { s.now = now }
}

// NewBookService creates a new book service
func NewBookService(repo book.Repository, authors book.AuthorLookup, opts ...Option) book.Service {
	s := &bookService{repo: repo, authors: authors, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.pipeline = &submission.Pipeline[book.BookForm]{
		Name:   "book",
		Decode: book.FormDecoder(s.now),
		Check:  s.check,
		Ops: submission.Operations[book.BookForm]{
			Create: s.create,
			Update: s.update,
			Delete: s.delete,
		},
		Conflict:     conflict,
		RedirectTo:   listPath,
		RequireActor: true,
	}
	return s
}

func (s *bookService) Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error) {
	return s.pipeline.Submit(ctx, sub)
}

// check chạy sau schema: isbn unique khi new, isbn không đổi khi update, author phải tồn tại
func (s *bookService) check(ctx context.Context, intent submission.Intent, key string, form book.BookForm) (submission.FieldErrors, error) {
	errs := submission.FieldErrors{}

	switch intent {
	case submission.IntentNew:
		exists, err := s.repo.Exists(ctx, form.ISBN)
		if err != nil {
			return nil, err
		}
		if exists {
			errs.Add("isbn", book.MsgISBNExists)
		}
	case submission.IntentUpdate:
		if form.ISBN != key {
			errs.Add("isbn", book.MsgISBNImmutable)
		}
	}

	if intent != submission.IntentDelete {
		ok := false
		if authorID, err := uuid.Parse(form.AuthorID); err == nil {
			if ok, err = s.authors.Exists(ctx, authorID); err != nil {
				return nil, err
			}
		}
		if !ok {
			errs.Add("authorId", book.MsgAuthorInvalid)
		}
	}

	return errs, nil
}

func (s *bookService) create(ctx context.Context, actor uuid.UUID, form book.BookForm) (string, error) {
	b, err := toBook(form)
	if err != nil {
		return "", err
	}
	b.CreatedBy = actor

	if err := s.repo.Create(ctx, b); err != nil {
		return "", err
	}
	return b.ISBN, nil
}

func (s *bookService) update(ctx context.Context, isbn string, form book.BookForm) error {
	b, err := toBook(form)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, isbn, b)
}

func (s *bookService) delete(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}

// conflict: constraint của store bắt được race sau check
func conflict(err error) submission.FieldErrors {
	switch {
	case errors.Is(err, book.ErrISBNExists):
		return submission.FieldErrors{"isbn": book.MsgISBNExists}
	case errors.Is(err, book.ErrAuthorNotExists):
		return submission.FieldErrors{"authorId": book.MsgAuthorInvalid}
	}
	return nil
}

func toBook(form book.BookForm) (*book.Book, error) {
	published, err := form.PublishedDate()
	if err != nil {
		return nil, fmt.Errorf("parse publishedAt: %w", err)
	}
	authorID, err := uuid.Parse(form.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("parse authorId: %w", err)
	}

	return &book.Book{
		ISBN:        form.ISBN,
		Title:       form.Title,
		Summary:     form.Summary,
		PublishedAt: published,
		AuthorID:    authorID,
	}, nil
}

func (s *bookService) Delete(ctx context.Context, isbn string) error {
	if err := s.repo.Delete(ctx, isbn); err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	return nil
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

func (s *bookService) List(ctx context.Context) ([]book.BookWithAuthor, error) {
	return s.repo.List(ctx)
}

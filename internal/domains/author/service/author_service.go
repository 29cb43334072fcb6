package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/shared/submission"
)

const listPath = "/dashboard/authors"

type authorService struct {
	repo     author.Repository
	pipeline *submission.Pipeline[author.AuthorForm]
}

// NewAuthorService creates a new author service
func NewAuthorService(repo author.Repository) author.Service {
	s := &authorService{repo: repo}
	s.pipeline = &submission.Pipeline[author.AuthorForm]{
		Name:   "author",
		Decode: author.DecodeForm,
		Ops: submission.Operations[author.AuthorForm]{
			Create: s.create,
			Update: s.update,
			Delete: s.delete,
		},
		RedirectTo:   listPath,
		RequireActor: true,
	}
	return s
}

func (s *authorService) Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error) {
	return s.pipeline.Submit(ctx, sub)
}

func (s *authorService) create(ctx context.Context, actor uuid.UUID, form author.AuthorForm) (string, error) {
	a := &author.Author{
		ID:        uuid.New(),
		Name:      form.Name,
		Bio:       form.Bio,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return "", err
	}
	return a.ID.String(), nil
}

func (s *authorService) update(ctx context.Context, key string, form author.AuthorForm) error {
	id, err := parseKey(key)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, form.Name, form.Bio)
}

func (s *authorService) delete(ctx context.Context, key string) error {
	id, err := parseKey(key)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete author %s: %w", id, err)
	}
	return nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]author.AuthorWithBookCount, error) {
	return s.repo.List(ctx)
}

func (s *authorService) Options(ctx context.Context) ([]author.Option, error) {
	return s.repo.ListOptions(ctx)
}

func (s *authorService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

// parseKey: id không phải uuid thì không thể tồn tại
func parseKey(key string) (uuid.UUID, error) {
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", author.ErrAuthorNotFound, key)
	}
	return id, nil
}

package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/domains/book"
	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/shared/submission"
)

// Dữ liệu seed phải qua được chính các form của dashboard
func TestDemoData_PassesForms(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	decode := book.FormDecoder(now)
	authorID := uuid.NewString()

	seen := map[string]bool{}
	for _, sb := range demoBooks {
		form := decode(submission.Values{
			"isbn":        sb.ISBN,
			"title":       sb.Title,
			"authorId":    authorID,
			"summary":     sb.Summary,
			"publishedAt": sb.PublishedAt,
		})
		assert.NoError(t, form.Validate(), sb.ISBN)
		assert.False(t, seen[sb.ISBN], "duplicate isbn %s", sb.ISBN)
		seen[sb.ISBN] = true
	}
	assert.Len(t, seen, 5)

	assert.NoError(t, author.AuthorForm{Name: demoAuthor.Name}.Validate())
	assert.NoError(t, user.DecodeRegisterForm(submission.Values{
		"email": demoEmail, "password": demoPassword, "username": demoUsername,
	}).Validate())
}

func TestSeedBook_ToBook(t *testing.T) {
	a, u := uuid.New(), uuid.New()

	b, err := demoBooks[3].toBook(a, u)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", b.Title)
	assert.Nil(t, b.Summary)
	assert.Equal(t, a, b.AuthorID)
	assert.Equal(t, u, b.CreatedBy)
	assert.Equal(t, time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), b.PublishedAt)

	_, err = seedBook{ISBN: "x", PublishedAt: "May 2021"}.toBook(a, u)
	assert.Error(t, err)
}

package book

import (
	"time"

	"github.com/google/uuid"
)

// Book: isbn là natural key, không đổi sau khi tạo
type Book struct {
	ISBN        string    `json:"isbn" db:"isbn"`
	Title       string    `json:"title" db:"title"`
	Summary     *string   `json:"summary,omitempty" db:"summary"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	CreatedBy   uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BookWithAuthor là một dòng của danh sách books
type BookWithAuthor struct {
	Book
	AuthorName string `json:"author_name"`
}

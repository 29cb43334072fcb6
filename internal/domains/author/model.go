package author

import (
	"time"

	"github.com/google/uuid"
)

// Author represents the core Author entity
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"` // owning user
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthorWithBookCount là một dòng của trang danh sách authors
type AuthorWithBookCount struct {
	Author
	BookCount int `json:"book_count"`
}

// Option là cặp id/name cho select box ở form book
type Option struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

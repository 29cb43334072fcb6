package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/shared/submission"
)

const (
	DateLayout     = "2006-01-02"
	MinTitleLength = 5
	MaxTitleLength = 255
	MaxISBNLength  = 32
	MaxSummary     = 5000
)

// ReservedKeys là các path segment đã có route riêng dưới /dashboard/books,
// isbn trùng sẽ không mở được detail
var ReservedKeys = []interface{}{"new", "export"}

// BookForm là body của POST /dashboard/books/:isbn
type BookForm struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	AuthorID    string  `json:"authorId"`
	Summary     *string `json:"summary"`
	PublishedAt string  `json:"publishedAt"`

	now func() time.Time
}

// FormDecoder trả về Decode cho pipeline, clock dùng cho rule publishedAt
func FormDecoder(now func() time.Time) func(submission.Values) BookForm {
	return func(v submission.Values) BookForm {
		return BookForm{
			ISBN:        v.Get("isbn"),
			Title:       v.Get("title"),
			AuthorID:    v.Get("authorId"),
			Summary:     v.Optional("summary"),
			PublishedAt: v.Get("publishedAt"),
			now:         now,
		}
	}
}

func (f BookForm) Validate() error {
	now := time.Now
	if f.now != nil {
		now = f.now
	}

	return validation.ValidateStruct(&f,
		validation.Field(&f.ISBN,
			validation.Required.Error("Isbn is required"),
			validation.RuneLength(0, MaxISBNLength).Error("Isbn must contain at most 32 characters"),
			validation.NotIn(ReservedKeys...).Error(MsgISBNReserved),
		),
		validation.Field(&f.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(MinTitleLength, 0).Error(MsgTitleTooShort),
			validation.RuneLength(0, MaxTitleLength).Error("Title must contain at most 255 characters"),
		),
		validation.Field(&f.AuthorID,
			validation.Required.Error(MsgAuthorInvalid),
			is.UUID.Error(MsgAuthorInvalid),
		),
		validation.Field(&f.Summary,
			validation.RuneLength(0, MaxSummary).Error("Summary must contain at most 5000 characters"),
		),
		validation.Field(&f.PublishedAt,
			validation.Required.Error("Publication date is required"),
			validation.Date(DateLayout).
				Max(calendarDate(now())).
				Error("Publication date is invalid").
				RangeError(MsgPublishedFuture),
		),
	)
}

// calendarDate: ngày của now (theo location của now) dưới dạng UTC midnight.
// Date("2006-01-02") parse ra UTC midnight nên so sánh trên cùng hệ.
func calendarDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// PublishedDate parse publishedAt đã qua Validate
func (f BookForm) PublishedDate() (time.Time, error) {
	return time.Parse(DateLayout, f.PublishedAt)
}

// BookListResponse - payload của GET /dashboard/books
type BookListResponse struct {
	Books []BookWithAuthor `json:"books"`
}

// BookDetailResponse - payload của GET /dashboard/books/:isbn
type BookDetailResponse struct {
	Book    *Book           `json:"book,omitempty"` // nil khi isbn = "new"
	Authors []author.Option `json:"authors"`
}

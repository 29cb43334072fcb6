package book

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrISBNExists      = errors.New("book with this isbn already exists")
	ErrAuthorNotExists = errors.New("author does not exist")
)

// Field error messages hiển thị lại trên form
const (
	MsgTitleTooShort   = "Title must contain at least 5 characters"
	MsgAuthorInvalid   = "Author is invalid. Please choose one from the list"
	MsgPublishedFuture = "Publication date can not be in the future"
	MsgISBNExists      = "A book with this isbn code already exists"
	MsgISBNImmutable   = "Isbn can not be changed"
	MsgISBNReserved    = "Isbn is invalid"
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrISBNExists):
		return http.StatusConflict
	case errors.Is(err, ErrAuthorNotExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package user

import (
	"errors"
	"net/http"
)

// Repository-level errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Messages hiển thị lại trên form login/register
const (
	MsgEmailInvalid       = "Email is invalid"
	MsgEmailTaken         = "A user already exists with this email"
	MsgUsernameTaken      = "A user already exists with this username"
	MsgInvalidCredentials = "Invalid email or password"
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrUsernameAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

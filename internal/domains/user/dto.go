package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookstore-admin/internal/shared/submission"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterForm - POST /register
type RegisterForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func DecodeRegisterForm(v submission.Values) RegisterForm {
	return RegisterForm{
		Email:    strings.ToLower(v.Get("email")),
		Password: v["password"], // password không trim
		Username: v.Get("username"),
	}
}

func (r RegisterForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.EmailFormat.Error(MsgEmailInvalid),
			validation.RuneLength(0, 255).Error(MsgEmailInvalid),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
			validation.Length(8, 0).Error("Password must contain at least 8 characters"),
			validation.Length(0, 72).Error("Password must contain at most 72 characters"), // giới hạn của bcrypt
		),
		validation.Field(&r.Username,
			validation.Required.Error("Username is required"),
			validation.RuneLength(3, 0).Error("Username must contain at least 3 characters"),
			validation.RuneLength(0, 50).Error("Username must contain at most 50 characters"),
		),
	)
}

// LoginForm - POST /
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func DecodeLoginForm(v submission.Values) LoginForm {
	return LoginForm{
		Email:    strings.ToLower(v.Get("email")),
		Password: v["password"],
		Remember: v.Get("remember") == "on",
	}
}

func (r LoginForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.EmailFormat.Error(MsgEmailInvalid),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// LoginResult: đúng một trong User hoặc Errors được set
type LoginResult struct {
	User   *User
	Errors submission.FieldErrors
}

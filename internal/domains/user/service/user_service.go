package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/shared/submission"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	bcryptCost int
	dummyHash  []byte // so sánh khi email không tồn tại để thời gian phản hồi như nhau
	pipeline   *submission.Pipeline[user.RegisterForm]
}

// Option cấu hình userService
type Option func(*userService)

// WithBcryptCost dùng bcrypt.MinCost trong test
func WithBcryptCost(cost int) Option {
	return func(s *userService) { s.bcryptCost = cost }
}

// NewUserService tạo service instance. redirectTo là đích mặc định sau register.
func NewUserService(repo user.Repository, redirectTo string, opts ...Option) user.Service {
	s := &userService{repo: repo, bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookstore-admin"), s.bcryptCost)

	s.pipeline = &submission.Pipeline[user.RegisterForm]{
		Name:   "register",
		Decode: user.DecodeRegisterForm,
		Check:  s.checkRegister,
		Ops: submission.Operations[user.RegisterForm]{
			Create: s.create,
		},
		Conflict:   conflict,
		RedirectTo: redirectTo,
	}
	return s
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới, Result.Key là user id
func (s *userService) Register(ctx context.Context, values submission.Values) (*submission.Result, error) {
	return s.pipeline.Submit(ctx, submission.Submission{
		Intent: submission.IntentNew,
		Values: values,
	})
}

// checkRegister: email và username phải chưa được dùng, báo cả hai nếu trùng cả hai
func (s *userService) checkRegister(ctx context.Context, _ submission.Intent, _ string, form user.RegisterForm) (submission.FieldErrors, error) {
	errs := submission.FieldErrors{}

	exists, err := s.repo.ExistsByEmail(ctx, form.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		errs.Add("email", user.MsgEmailTaken)
	}

	exists, err = s.repo.ExistsByUsername(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		errs.Add("username", user.MsgUsernameTaken)
	}

	return errs, nil
}

func (s *userService) create(ctx context.Context, _ uuid.UUID, form user.RegisterForm) (string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        form.Email,
		Username:     form.Username,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", err
	}
	return u.ID.String(), nil
}

func conflict(err error) submission.FieldErrors {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return submission.FieldErrors{"email": user.MsgEmailTaken}
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		return submission.FieldErrors{"username": user.MsgUsernameTaken}
	}
	return nil
}

// Login xác thực email + password
func (s *userService) Login(ctx context.Context, form user.LoginForm) (*user.LoginResult, error) {
	// STEP 1: VALIDATE INPUT
	if err := form.Validate(); err != nil {
		fieldErrs, ok := submission.FromValidation(err)
		if !ok {
			return nil, fmt.Errorf("validate login: %w", err)
		}
		return &user.LoginResult{Errors: fieldErrs}, nil
	}

	// STEP 2: FIND USER BY EMAIL
	u, err := s.repo.FindByEmail(ctx, form.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// STEP 3: VERIFY PASSWORD
	// Không phân biệt "email không tồn tại" và "sai password"
	hash := s.dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(form.Password)) != nil || u == nil {
		return &user.LoginResult{Errors: submission.FieldErrors{"email": user.MsgInvalidCredentials}}, nil
	}

	return &user.LoginResult{User: u}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

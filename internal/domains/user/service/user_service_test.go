package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/shared/submission"
)

type stubRepo struct {
	users   map[uuid.UUID]*user.User
	creates int
	// createErr giả lập unique violation sau khi check đã pass
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *stubRepo) Create(_ context.Context, u *user.User) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *stubRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) DeleteByEmail(_ context.Context, email string) (bool, error) {
	for id, u := range r.users {
		if u.Email == email {
			delete(r.users, id)
			return true, nil
		}
	}
	return false, nil
}

func newService(repo user.Repository) user.Service {
	return NewUserService(repo, "/dashboard", WithBcryptCost(bcrypt.MinCost))
}

func registerValues() submission.Values {
	return submission.Values{"email": "Reader@Example.com", "password": "correct horse", "username": "reader"}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerValues())
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", res.Redirect)

	id, err := uuid.Parse(res.Key)
	require.NoError(t, err)
	u := repo.users[id]
	require.NotNil(t, u)
	assert.Equal(t, "reader@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
}

func TestRegister_ValidationErrors(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), submission.Values{"email": "nope", "password": "short", "username": "ab"})
	require.NoError(t, err)
	assert.Equal(t, submission.FieldErrors{
		"email":    user.MsgEmailInvalid,
		"password": "Password must contain at least 8 characters",
		"username": "Username must contain at least 3 characters",
	}, res.Errors)
	assert.Zero(t, repo.creates)
}

func TestRegister_UsernameLengthCountsCharacters(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	v := registerValues()
	v["username"] = "李明"
	res, err := svc.Register(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, submission.FieldErrors{"username": "Username must contain at least 3 characters"}, res.Errors)
	assert.Zero(t, repo.creates)

	v["username"] = "李小明"
	res, err = svc.Register(context.Background(), v)
	require.NoError(t, err)
	assert.False(t, res.Failed(), res.Errors)
	assert.Equal(t, 1, repo.creates)
}

func TestRegister_TakenEmailAndUsername(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	_, err := svc.Register(context.Background(), registerValues())
	require.NoError(t, err)

	res, err := svc.Register(context.Background(), registerValues())
	require.NoError(t, err)
	assert.Equal(t, submission.FieldErrors{
		"email":    user.MsgEmailTaken,
		"username": user.MsgUsernameTaken,
	}, res.Errors)
	assert.Equal(t, 1, repo.creates)
}

func TestRegister_UniqueViolationRace(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = user.ErrUsernameAlreadyExists
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerValues())
	require.NoError(t, err)
	assert.Equal(t, submission.FieldErrors{"username": user.MsgUsernameTaken}, res.Errors)
}

func TestLogin(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	_, err := svc.Register(context.Background(), registerValues())
	require.NoError(t, err)

	tests := []struct {
		name     string
		form     user.LoginForm
		wantUser bool
		wantErrs submission.FieldErrors
	}{
		{"success", user.LoginForm{Email: "reader@example.com", Password: "correct horse"}, true, nil},
		{"wrong password", user.LoginForm{Email: "reader@example.com", Password: "battery staple"}, false,
			submission.FieldErrors{"email": user.MsgInvalidCredentials}},
		{"unknown email", user.LoginForm{Email: "ghost@example.com", Password: "correct horse"}, false,
			submission.FieldErrors{"email": user.MsgInvalidCredentials}},
		{"invalid form", user.LoginForm{Email: "ghost"}, false,
			submission.FieldErrors{"email": user.MsgEmailInvalid, "password": "Password is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tt.form)
			require.NoError(t, err)
			if tt.wantUser {
				require.NotNil(t, res.User)
				assert.Equal(t, "reader", res.User.Username)
				assert.Empty(t, res.Errors)
				return
			}
			assert.Nil(t, res.User)
			assert.Equal(t, tt.wantErrs, res.Errors)
		})
	}
}

func TestDecodeLoginForm_Remember(t *testing.T) {
	assert.True(t, user.DecodeLoginForm(submission.Values{"remember": "on"}).Remember)
	assert.False(t, user.DecodeLoginForm(submission.Values{"remember": "yes"}).Remember)
	assert.False(t, user.DecodeLoginForm(submission.Values{}).Remember)
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/infrastructure/session"
	"bookstore-admin/internal/shared/middleware"
	"bookstore-admin/internal/shared/submission"
	"bookstore-admin/pkg/cache/memory"
	"bookstore-admin/pkg/jwt"
)

const cookieName = "__session"

// fakeService: một user cố định reader@example.com / "correct horse"
type fakeService struct {
	userID      uuid.UUID
	registerRes *submission.Result
}

func (f *fakeService) Register(_ context.Context, _ submission.Values) (*submission.Result, error) {
	return f.registerRes, nil
}

func (f *fakeService) Login(_ context.Context, form user.LoginForm) (*user.LoginResult, error) {
	if form.Email == "reader@example.com" && form.Password == "correct horse" {
		return &user.LoginResult{User: &user.User{ID: f.userID, Email: form.Email}}, nil
	}
	return &user.LoginResult{Errors: submission.FieldErrors{"email": user.MsgInvalidCredentials}}, nil
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return &user.User{ID: id}, nil
}

func setup(svc user.Service) (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(memory.New(), jwt.NewManager("test-secret", "bookstore-admin"), time.Hour, 7*24*time.Hour)
	h := NewUserHandler(svc, store, CookieConfig{Name: cookieName}, "/dashboard")

	r := gin.New()
	r.Use(middleware.Session(store, cookieName))
	r.POST("/", h.Login)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)
	r.GET("/dashboard", middleware.RequireUser(), func(c *gin.Context) {
		id, _ := middleware.CurrentUser(c)
		c.String(http.StatusOK, id.String())
	})
	return r, store
}

func post(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func TestLogin_SessionRoundTrip(t *testing.T) {
	svc := &fakeService{userID: uuid.New()}
	r, _ := setup(svc)

	w := post(r, "/", url.Values{"email": {"reader@example.com"}, "password": {"correct horse"}, "redirectTo": {"/dashboard/books"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/books", w.Header().Get("Location"))

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Zero(t, ck.MaxAge)

	w = get(r, "/dashboard", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, svc.userID.String(), w.Body.String())
}

func TestLogin_RememberSetsMaxAge(t *testing.T) {
	r, _ := setup(&fakeService{userID: uuid.New()})

	w := post(r, "/", url.Values{"email": {"reader@example.com"}, "password": {"correct horse"}, "remember": {"on"}})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), sessionCookie(t, w).MaxAge)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := setup(&fakeService{userID: uuid.New()})

	w := post(r, "/", url.Values{"email": {"reader@example.com"}, "password": {"nope"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), user.MsgInvalidCredentials)
	assert.Empty(t, w.Result().Cookies())
}

func TestLogin_UnsafeRedirectFallsBack(t *testing.T) {
	r, _ := setup(&fakeService{userID: uuid.New()})

	w := post(r, "/", url.Values{"email": {"reader@example.com"}, "password": {"correct horse"}, "redirectTo": {"//evil.example"}})

	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRegister_StartsSession(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{registerRes: &submission.Result{Redirect: "/dashboard", Key: id.String()}}
	r, _ := setup(svc)

	w := post(r, "/register", url.Values{"email": {"new@example.com"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = get(r, "/dashboard", sessionCookie(t, w))
	assert.Equal(t, id.String(), w.Body.String())
}

func TestRegister_FieldErrors(t *testing.T) {
	svc := &fakeService{registerRes: &submission.Result{Errors: submission.FieldErrors{"email": user.MsgEmailTaken}}}
	r, _ := setup(svc)

	w := post(r, "/register", url.Values{"email": {"reader@example.com"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), user.MsgEmailTaken)
}

func TestLogout_RevokesSession(t *testing.T) {
	r, _ := setup(&fakeService{userID: uuid.New()})

	w := post(r, "/", url.Values{"email": {"reader@example.com"}, "password": {"correct horse"}})
	ck := sessionCookie(t, w)

	w = post(r, "/logout", url.Values{}, ck)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	// cookie cũ không còn dùng được dù chữ ký vẫn hợp lệ
	w = get(r, "/dashboard", ck)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/?redirectTo="))
}

func TestLoginPage_RedirectsLoggedInUser(t *testing.T) {
	r, store := setup(&fakeService{userID: uuid.New()})
	h := NewUserHandler(&fakeService{}, store, CookieConfig{Name: cookieName}, "/dashboard")
	r.GET("/", h.LoginPage)

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	issued, err := store.Create(context.Background(), uuid.New(), false)
	require.NoError(t, err)
	w = get(r, "/", &http.Cookie{Name: cookieName, Value: issued.Token})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestMe(t *testing.T) {
	id := uuid.New()
	r, store := setup(&fakeService{userID: id})
	h := NewUserHandler(&fakeService{userID: id}, store, CookieConfig{Name: cookieName}, "/dashboard")
	r.GET("/dashboard/me", middleware.RequireUser(), h.Me)

	issued, err := store.Create(context.Background(), id, false)
	require.NoError(t, err)

	w := get(r, "/dashboard/me", &http.Cookie{Name: cookieName, Value: issued.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/domains/user"
	"bookstore-admin/internal/infrastructure/session"
	"bookstore-admin/internal/shared/httpx"
	"bookstore-admin/internal/shared/middleware"
	"bookstore-admin/internal/shared/response"
	"bookstore-admin/internal/shared/utils"
)

// Sessions là phần của session.Store mà handler cần
type Sessions interface {
	Create(ctx context.Context, userID uuid.UUID, remember bool) (*session.Issued, error)
	Destroy(ctx context.Context, token string) error
}

// CookieConfig cho session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

type UserHandler struct {
	service       user.Service
	sessions      Sessions
	cookie        CookieConfig
	loginRedirect string
}

func NewUserHandler(svc user.Service, sessions Sessions, cookie CookieConfig, loginRedirect string) *UserHandler {
	return &UserHandler{
		service:       svc,
		sessions:      sessions,
		cookie:        cookie,
		loginRedirect: loginRedirect,
	}
}

// LoginPage xử lý GET /: user đã login thì không cần form login nữa
func (h *UserHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		response.Redirect(c, h.loginRedirect)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Me xử lý GET /dashboard: user hiện tại cho header của dashboard
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// session còn sống nhưng user đã bị xóa
			h.Logout(c)
			return
		}
		h.internalError(c, err, "Load current user failed")
		return
	}

	response.Success(c, http.StatusOK, u.ToDTO())
}

// Register xử lý POST /register
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE FORM
	values, err := httpx.ReadValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid form body")
		return
	}

	// STEP 2: VALIDATE + CREATE qua pipeline
	res, err := h.service.Register(c.Request.Context(), values)
	if err != nil {
		httpx.SubmissionError(c, err, user.ToHTTPStatus)
		return
	}
	if res.Failed() {
		response.FieldErrors(c, res.Errors)
		return
	}

	// STEP 3: MỞ SESSION (không remember)
	userID, err := uuid.Parse(res.Key)
	if err != nil {
		h.internalError(c, err, "Register returned invalid user id")
		return
	}
	if !h.startSession(c, userID, false) {
		return
	}

	response.Redirect(c, utils.SafeRedirect(values.Get("redirectTo"), res.Redirect))
}

// Login xử lý POST /
func (h *UserHandler) Login(c *gin.Context) {
	// STEP 1: PARSE FORM
	values, err := httpx.ReadValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid form body")
		return
	}
	form := user.DecodeLoginForm(values)

	// STEP 2: AUTHENTICATE
	res, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		h.internalError(c, err, "Login failed")
		return
	}
	if res.User == nil {
		response.FieldErrors(c, res.Errors)
		return
	}

	// STEP 3: SET SESSION COOKIE
	if !h.startSession(c, res.User.ID, form.Remember) {
		return
	}

	log.Info().Str("user_id", res.User.ID.String()).Bool("remember", form.Remember).Msg("User logged in")
	response.Redirect(c, utils.SafeRedirect(values.Get("redirectTo"), h.loginRedirect))
}

// Logout xử lý POST /logout. Không có session vẫn redirect bình thường.
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			h.internalError(c, err, "Destroy session failed")
			return
		}
	}

	h.setCookie(c, "", -1)
	response.Redirect(c, middleware.LoginPath)
}

// startSession trả về false nếu đã render lỗi
func (h *UserHandler) startSession(c *gin.Context, userID uuid.UUID, remember bool) bool {
	issued, err := h.sessions.Create(c.Request.Context(), userID, remember)
	if err != nil {
		h.internalError(c, err, "Create session failed")
		return false
	}

	// Không remember: cookie sống theo browser session, Redis vẫn giữ TTL ngắn
	maxAge := 0
	if remember {
		maxAge = int(issued.MaxAge.Seconds())
	}
	h.setCookie(c, issued.Token, maxAge)
	return true
}

func (h *UserHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *UserHandler) internalError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)
	response.InternalServerError(c, "Internal server error")
}

package middleware

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/infrastructure/session"
	"bookstore-admin/internal/shared/response"
)

const currentUserKey = "userID"

// LoginPath là trang login; RequireUser redirect về đây kèm redirectTo
const LoginPath = "/"

// Session resolve cookie thành current user (nếu có). Không bao giờ abort.
func Session(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := store.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(currentUserKey, userID)
		case errors.Is(err, session.ErrNoSession):
			log.Debug().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Stale session cookie")
		default:
			log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Session lookup failed")
		}

		c.Next()
	}
}

// RequireUser chặn request chưa login, redirect về trang login
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}

		target := LoginPath + "?" + url.Values{"redirectTo": []string{c.Request.URL.RequestURI()}}.Encode()
		response.Redirect(c, target)
		c.Abort()
	}
}

// CurrentUser trả về user id do Session middleware set
func CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetCurrentUser dùng trong test handler để giả lập user đã login
func SetCurrentUser(c *gin.Context, id uuid.UUID) {
	c.Set(currentUserKey, id)
}

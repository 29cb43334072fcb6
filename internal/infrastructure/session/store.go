package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstore-admin/pkg/cache"
	"bookstore-admin/pkg/jwt"
)

const keyPrefix = "session:"

// ErrNoSession: cookie không hợp lệ, hết hạn hoặc đã bị revoke
var ErrNoSession = errors.New("no active session")

// Store giữ session server-side trong cache; cookie chỉ mang token đã ký
type Store struct {
	cache       cache.Cache
	tokens      *jwt.Manager
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewStore(c cache.Cache, tokens *jwt.Manager, ttl, rememberTTL time.Duration) *Store {
	return &Store{cache: c, tokens: tokens, ttl: ttl, rememberTTL: rememberTTL}
}

// Issued là kết quả Create: token đặt vào cookie và thời hạn cookie
type Issued struct {
	Token  string
	MaxAge time.Duration
}

// Create mở session mới cho userID
func (s *Store) Create(ctx context.Context, userID uuid.UUID, remember bool) (*Issued, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("create session: empty user id")
	}

	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	id := uuid.NewString()
	if err := s.cache.Set(ctx, keyPrefix+id, userID.String(), ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(id, userID.String(), ttl)
	if err != nil {
		_ = s.cache.Delete(ctx, keyPrefix+id)
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &Issued{Token: token, MaxAge: ttl}, nil
}

// Resolve trả về user id của session, ErrNoSession nếu không còn hiệu lực
func (s *Store) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoSession
	}

	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	var stored string
	found, err := s.cache.Get(ctx, keyPrefix+claims.ID, &stored)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}
	if !found || stored != claims.UserID {
		return uuid.Nil, ErrNoSession
	}

	userID, err := uuid.Parse(stored)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	return userID, nil
}

// Destroy revoke session. Token hỏng không phải lỗi: không có gì để xóa.
func (s *Store) Destroy(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil
	}
	return s.cache.Delete(ctx, keyPrefix+claims.ID)
}

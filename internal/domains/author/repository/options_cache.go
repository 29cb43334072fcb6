package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/pkg/cache"
)

const (
	optionsCacheKey = "authors:options"
	cacheTTL        = 15 * time.Minute
)

// optionsCache giữ danh sách author options trong cache.
// generation tăng mỗi lần invalidate; store bỏ qua kết quả load từ generation cũ
// để list đọc trước một mutation không ghi đè lại cache sau khi đã bị xoá.
type optionsCache struct {
	cache cache.Cache

	mu  sync.Mutex
	gen uint64
}

func newOptionsCache(c cache.Cache) *optionsCache {
	return &optionsCache{cache: c}
}

func (o *optionsCache) get(ctx context.Context) ([]author.Option, bool) {
	if o.cache == nil {
		return nil, false
	}

	var cached []author.Option
	found, err := o.cache.Get(ctx, optionsCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", optionsCacheKey).Msg("Author options cache read failed")
		return nil, false
	}
	return cached, found
}

// generation phải được đọc TRƯỚC khi query database
func (o *optionsCache) generation() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gen
}

func (o *optionsCache) store(ctx context.Context, gen uint64, options []author.Option) {
	if o.cache == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen {
		log.Debug().Str("key", optionsCacheKey).Msg("Author options changed while loading, skip cache write")
		return
	}
	if err := o.cache.Set(ctx, optionsCacheKey, options, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", optionsCacheKey).Msg("Author options cache write failed")
	}
}

func (o *optionsCache) invalidate(ctx context.Context) {
	if o.cache == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.gen++
	if err := o.cache.Delete(ctx, optionsCacheKey); err != nil {
		log.Warn().Err(err).Str("key", optionsCacheKey).Msg("Author options cache invalidation failed")
	}
}

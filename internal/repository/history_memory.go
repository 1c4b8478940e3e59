package repository

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// HistoryMemory is the in-process history store used when no Redis address
// is configured (single-node deployments, development, tests). It stores the
// same encoded payload as the Redis store so the two are interchangeable.
type HistoryMemory struct {
	cache *gocache.Cache
}

func NewHistoryMemory(defaultTTL time.Duration) *HistoryMemory {
	return &HistoryMemory{
		cache: gocache.New(defaultTTL, 10*time.Minute),
	}
}

func (h *HistoryMemory) Read(ctx context.Context, key string) ([]entity.Message, error) {
	value, ok := h.cache.Get(redisKeyPrefix + key)
	if !ok {
		return []entity.Message{}, nil
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected transcript type for %q", key)
	}

	messages, err := decodeTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("decode transcript %q: %w", key, err)
	}

	return messages, nil
}

func (h *HistoryMemory) Write(ctx context.Context, key string, messages []entity.Message, ttl time.Duration) error {
	data, err := encodeTranscript(messages)
	if err != nil {
		return fmt.Errorf("encode transcript %q: %w", key, err)
	}

	h.cache.Set(redisKeyPrefix+key, data, ttl)
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// Keys carry a msg_ prefix to keep transcripts apart from anything else that
// may share the database.
const redisKeyPrefix = "msg_"

// HistoryRedis stores transcripts in Redis. Redis owns expiry; every write
// resets the TTL.
type HistoryRedis struct {
	client *redis.Client
}

func NewHistoryRedis(client *redis.Client) *HistoryRedis {
	return &HistoryRedis{client: client}
}

func (h *HistoryRedis) Read(ctx context.Context, key string) ([]entity.Message, error) {
	data, err := h.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []entity.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript %q: %w", key, err)
	}

	messages, err := decodeTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("decode transcript %q: %w", key, err)
	}

	return messages, nil
}

func (h *HistoryRedis) Write(ctx context.Context, key string, messages []entity.Message, ttl time.Duration) error {
	data, err := encodeTranscript(messages)
	if err != nil {
		return fmt.Errorf("encode transcript %q: %w", key, err)
	}

	if err := h.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("write transcript %q: %w", key, err)
	}

	return nil
}

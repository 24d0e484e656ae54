package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/domain"
)

// History stores chat transcripts in Redis, one JSON blob per session.
type History struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *History {
	return &History{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func key(sessionID string) string { return "chat:" + sessionID }

func (h *History) Load(ctx context.Context, sessionID string) ([]domain.Message, error) {
	v, err := h.c.Get(ctx, key(sessionID)).Bytes()
	if err == redis.Nil {
		observability.ObserveHistory("redis", "miss")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	observability.ObserveHistory("redis", "hit")
	var msgs []domain.Message
	return msgs, json.Unmarshal(v, &msgs)
}

func (h *History) Save(ctx context.Context, sessionID string, messages []domain.Message) error {
	b, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	observability.ObserveHistory("redis", "save")
	return h.c.Set(ctx, key(sessionID), b, h.ttl).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// SessionCache is a read-through cache in front of the sessions table,
// keyed by session token. A miss returns (nil, nil).
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(cfg utils.RedisConfig, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *SessionCache) Get(ctx context.Context, token string) (*entity.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *SessionCache) Set(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(session.SessionToken), payload, c.ttl).Err()
}

func (c *SessionCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func (c *SessionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("cache:session:%s", token)
}

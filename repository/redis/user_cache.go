package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/tasklane/backend/domain"
	"github.com/tasklane/backend/repository"
)

type userCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache creates a Redis-backed user profile cache. A miss is reported
// as domain.ErrUserNotFound so callers can fall through to the repository.
func NewUserCache(client *redislib.Client, ttl time.Duration) repository.UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &userCache{
		client: client,
		prefix: "user:",
		ttl:    ttl,
	}
}

func (c *userCache) Get(ctx context.Context, id string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *userCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(user.ID), payload, c.ttl).Err()
}

func (c *userCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *userCache) key(id string) string {
	return fmt.Sprintf("%s%s", c.prefix, id)
}

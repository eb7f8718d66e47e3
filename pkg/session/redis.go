package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepo keys sessions by user so that a single DEL invalidates every
// credential a user holds, matching the MySQL repo's semantics.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: "session:user:",
	}
}

func (r *RedisRepo) key(userID int64) string {
	return fmt.Sprintf("%s%d", r.prefix, userID)
}

func (r *RedisRepo) Create(userID int64, sessionID string) (string, error) {
	now := time.Now()
	s := Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("session: failed to marshal: %w", err)
	}

	ctx := context.Background()
	if err := r.client.Set(ctx, r.key(userID), data, TTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *RedisRepo) IsValid(userID int64) (bool, error) {
	ctx := context.Background()

	val, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return false, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return s.ExpiresAt.After(time.Now()), nil
}

func (r *RedisRepo) Invalidate(userID int64) error {
	return r.client.Del(context.Background(), r.key(userID)).Err()
}

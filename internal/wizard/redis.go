// internal/wizard/redis.go
package wizard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"aiready-check/internal/common/errors"
)

const redisKeyPrefix = "aiready:session:"

// RedisStore keeps sessions in redis so in-progress answers survive process
// restarts. Values are JSON with a sliding TTL refreshed on every Put.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return Session{}, errors.NewSessionNotFoundError(id)
		}
		return Session{}, errors.NewSessionStoreFailedError(err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return Session{}, errors.NewSessionStoreFailedError(err)
	}
	return session, nil
}

func (r *RedisStore) Put(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.NewSessionStoreFailedError(err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}

package ranking

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the pub/sub channel ranking updates are fanned out on.
const EventsChannel = "ranking_events"

// RedisStore persists rankings as plain string keys.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Save(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// RedisPublisher publishes every admitted score so all server instances
// can push the refreshed ranking to their clients.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) RankingUpdated(ctx context.Context, u Update) error {
	payload := map[string]interface{}{
		"type":         "ranking_updated",
		"board":        u.Board,
		"match_length": u.MatchLength,
		"entry":        u.Entry,
		"ranking":      u.Ranking,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, EventsChannel, b).Err()
}

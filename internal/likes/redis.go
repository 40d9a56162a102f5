package likes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"callouts/internal/callouts"
)

const likedPrefix = "callouts:liked:"

// RedisSessions keeps each session's liked set in a Redis SET that expires
// after ttl without activity.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions builds client options from a redis:// URL when one is given,
// and from the plain address, password and db otherwise.
func RedisOptions(rawURL, addr, password string, db int) (*redis.Options, error) {
	if rawURL != "" {
		opts, err := redis.ParseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr, Password: password, DB: db}, nil
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{client: client, ttl: ttl}
}

func (r *RedisSessions) Load(ctx context.Context, session string) (*callouts.LikeTracker, error) {
	ids, err := r.client.SMembers(ctx, likedPrefix+session).Result()
	if err != nil {
		return nil, fmt.Errorf("read liked set: %w", err)
	}
	// SET members come back unordered.
	sort.Strings(ids)
	return callouts.NewLikeTracker(ids), nil
}

func (r *RedisSessions) Save(ctx context.Context, session string, t *callouts.LikeTracker) error {
	key := likedPrefix + session
	ids := t.IDs()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) == 0 {
			return nil
		}
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		pipe.SAdd(ctx, key, members...)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write liked set: %w", err)
	}
	return nil
}

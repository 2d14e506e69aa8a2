package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// KV stores json values with an expiry.
type KV interface {
	// Get decodes the value of k into v and reports whether k was present.
	Get(ctx context.Context, k string, v any) (bool, error)
	Set(ctx context.Context, k string, v any, ttl time.Duration) error
}

var _ KV = (*Redis)(nil)

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, k string, v any) (bool, error) {
	res := r.client.Get(ctx, k)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return false, nil
		}
		return false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}

	return true, json.Unmarshal(buf, v)
}

func (r *Redis) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, k, value, ttl).Err()
}

var _ KV = NopKV{}

// NopKV never stores anything.
type NopKV struct{}

func (NopKV) Get(ctx context.Context, k string, v any) (bool, error) {
	return false, nil
}

func (NopKV) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	return nil
}

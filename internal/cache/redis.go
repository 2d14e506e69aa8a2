package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/compress"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	jobPostVersionHash = "jobpost:version"
	defaultTTL         = time.Hour
)

func jobPostKey(id uint64) string {
	return "jobpost:" + strconv.FormatUint(id, 10)
}

func jobPostRenderKey(id uint64) string {
	return "jobpost:render:" + strconv.FormatUint(id, 10)
}

func renderField(version int64, format v1.RenderFormat) string {
	return fmt.Sprintf("%d:%s", version, format)
}

var _ JobPostCache = (*RedisJobPostCache)(nil)

// RedisJobPostCache keeps encoded posts under jobpost:<id> and rendered bodies
// in the jobpost:render:<id> hash, keyed by version and format.
type RedisJobPostCache struct {
	client  *redis.Client
	encoder compress.Compress
	ttl     time.Duration
}

func NewRedisJobPostCache(client *redis.Client, encoder compress.Compress) *RedisJobPostCache {
	if encoder == nil {
		encoder = compress.NewNop()
	}
	return &RedisJobPostCache{client: client, encoder: encoder, ttl: defaultTTL}
}

// WithTTL sets how long entries stay in the cache.
func (r *RedisJobPostCache) WithTTL(ttl time.Duration) *RedisJobPostCache {
	r.ttl = ttl
	return r
}

func (r *RedisJobPostCache) GetJobPost(ctx context.Context, id uint64) (*v1.JobPost, error) {
	res := r.client.Get(ctx, jobPostKey(id))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	data, err := r.encoder.Decode(buf)
	if err != nil {
		return nil, err
	}

	post := &v1.JobPost{}
	if err := json.Unmarshal(data, post); err != nil {
		// a stale entry written by another encoding is treated as a miss
		logrus.Warnf("dropping undecodable cache entry for job post %d: %v", id, err)
		return nil, r.DeleteJobPost(ctx, id)
	}

	return post, nil
}

func (r *RedisJobPostCache) SetJobPost(ctx context.Context, post *v1.JobPost) error {
	marshal, err := json.Marshal(post)
	if err != nil {
		return err
	}

	data, err := r.encoder.Encode(marshal)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Set(ctx, jobPostKey(post.ID), data, r.ttl).Err(); err != nil {
			return err
		}

		if err := p.HSet(ctx, jobPostVersionHash, strconv.FormatUint(post.ID, 10), post.Version).Err(); err != nil {
			return err
		}

		return nil
	})

	return err
}

func (r *RedisJobPostCache) GetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat) (string, bool, error) {
	res := r.client.HGet(ctx, jobPostRenderKey(id), renderField(version, format))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return "", false, nil
		}
		return "", false, res.Err()
	}

	return res.Val(), true, nil
}

func (r *RedisJobPostCache) SetRendered(ctx context.Context, id uint64, version int64, format v1.RenderFormat, content string) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.HSet(ctx, jobPostRenderKey(id), renderField(version, format), content).Err(); err != nil {
			return err
		}

		return p.Expire(ctx, jobPostRenderKey(id), r.ttl).Err()
	})

	return err
}

func (r *RedisJobPostCache) DeleteJobPost(ctx context.Context, id uint64) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, jobPostKey(id), jobPostRenderKey(id))
		p.HDel(ctx, jobPostVersionHash, strconv.FormatUint(id, 10))
		return nil
	})

	return err
}

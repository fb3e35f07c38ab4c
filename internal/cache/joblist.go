package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/redis/go-redis/v9"
)

const (
	jobListKey = "farmlink:jobs:list"
	jobListTTL = 30 * time.Second
)

// JobList is a read-through cache for the public job list. When Redis is not
// configured or unreachable every method degrades to a no-op, so callers
// never branch on cache availability.
type JobList struct {
	client *redis.Client

	warnedUnavailable atomic.Bool
}

// NewJobList connects to Redis at addr. An empty addr or a failed ping
// returns a bypassing cache.
func NewJobList(addr string) *JobList {
	if addr == "" {
		return &JobList{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache] Redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		return &JobList{}
	}

	return &JobList{client: client}
}

func (c *JobList) unavailable() bool {
	return c == nil || c.client == nil
}

func (c *JobList) warnOnce(err error) {
	if c == nil {
		return
	}
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("[cache] Redis error, bypassing cache: %v", err)
	}
}

// Get returns the cached job list, if present.
func (c *JobList) Get(ctx context.Context) ([]dto.JobDTO, bool) {
	if c.unavailable() {
		return nil, false
	}

	b, err := c.client.Get(ctx, jobListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnOnce(err)
		}
		return nil, false
	}

	var jobs []dto.JobDTO
	if err := json.Unmarshal(b, &jobs); err != nil {
		return nil, false
	}
	return jobs, true
}

// Set stores the job list.
func (c *JobList) Set(ctx context.Context, jobs []dto.JobDTO) {
	if c.unavailable() {
		return
	}

	b, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, jobListKey, b, jobListTTL).Err(); err != nil {
		c.warnOnce(err)
	}
}

// Invalidate drops the cached list. Called after every job or application
// mutation so reads never serve a stale count.
func (c *JobList) Invalidate(ctx context.Context) {
	if c.unavailable() {
		return
	}
	if err := c.client.Del(ctx, jobListKey).Err(); err != nil {
		c.warnOnce(err)
	}
}

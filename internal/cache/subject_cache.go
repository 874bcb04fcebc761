package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// SubjectCache provides Redis caching for generated subject lines
type SubjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubjectCache creates a subject cache with the given TTL
func NewSubjectCache(client *redis.Client, ttl time.Duration) *SubjectCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &SubjectCache{client: client, ttl: ttl}
}

// Get returns the cached line of a category. Misses and Redis errors both report false.
func (c *SubjectCache) Get(ctx context.Context, category string) (models.SubjectLine, bool) {
	val, err := c.client.Get(ctx, c.buildKey(category)).Result()
	if err == redis.Nil {
		return models.SubjectLine{}, false
	}
	if err != nil {
		logrus.Warnf("Subject cache read failed: %v", err)
		return models.SubjectLine{}, false
	}

	var line models.SubjectLine
	if err := json.Unmarshal([]byte(val), &line); err != nil {
		logrus.Warnf("Subject cache entry for %q is corrupt: %v", category, err)
		return models.SubjectLine{}, false
	}
	return line, true
}

// Set stores a line for the cache TTL
func (c *SubjectCache) Set(ctx context.Context, category string, line models.SubjectLine) {
	data, err := json.Marshal(line)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.buildKey(category), data, c.ttl).Err(); err != nil {
		logrus.Warnf("Subject cache write failed: %v", err)
	}
}

func (c *SubjectCache) buildKey(category string) string {
	return "phishsim:subject:" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
}

// Package cache stores keyword statistics in a fiber storage backend,
// normally redis, so repeated searches skip the provider round trip.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"

	"keywordjourney/internal/logger"
	"keywordjourney/internal/metrics"
	"keywordjourney/internal/models"
)

const keyPrefix = "keywordjourney:stats:"

// NewRedisStorage connects to redis at url. It panics if the server is unreachable.
func NewRedisStorage(url string) *redis.Storage {
	return redis.New(redis.Config{URL: url})
}

// OpenRedis is NewRedisStorage with the connection failure returned as an error.
func OpenRedis(url string) (storage *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to connect to redis: %v", r)
		}
	}()
	return NewRedisStorage(url), nil
}

// PingRedis checks that the redis server behind storage answers.
func PingRedis(ctx context.Context, storage *redis.Storage) error {
	return storage.Conn().Ping(ctx).Err()
}

// Stats caches related-keyword statistics per keyword and detail flag.
type Stats struct {
	store fiber.Storage
	ttl   time.Duration
	log   logger.Logger
}

// NewStats creates a statistics cache over store. A nil store disables caching.
func NewStats(store fiber.Storage, ttl time.Duration, log logger.Logger) *Stats {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Stats{store: store, ttl: ttl, log: log}
}

// Key returns the storage key for a keyword query.
func Key(keyword string, detail bool) string {
	flag := "0"
	if detail {
		flag = "1"
	}
	return fmt.Sprintf("%s%s:%s", keyPrefix, flag, strings.ToLower(strings.TrimSpace(keyword)))
}

// Get returns cached statistics. Storage errors and corrupt entries are
// logged and reported as a miss.
func (s *Stats) Get(ctx context.Context, keyword string, detail bool) ([]models.KeywordStat, bool) {
	if s == nil || s.store == nil {
		return nil, false
	}

	key := Key(keyword, detail)
	data, err := s.store.GetWithContext(ctx, key)
	if err != nil {
		s.log.WithError(err).Warn("stats cache read failed", map[string]interface{}{"key": key})
		metrics.StatsCache.WithLabelValues("error").Inc()
		return nil, false
	}
	if len(data) == 0 {
		metrics.StatsCache.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats []models.KeywordStat
	if err := json.Unmarshal(data, &stats); err != nil {
		s.log.WithError(err).Warn("stats cache entry corrupt", map[string]interface{}{"key": key})
		metrics.StatsCache.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.StatsCache.WithLabelValues("hit").Inc()
	return stats, true
}

// Set stores statistics. Failures are logged and otherwise ignored.
func (s *Stats) Set(ctx context.Context, keyword string, detail bool, stats []models.KeywordStat) {
	if s == nil || s.store == nil || len(stats) == 0 {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		s.log.WithError(err).Warn("stats cache encode failed", nil)
		return
	}
	key := Key(keyword, detail)
	if err := s.store.SetWithContext(ctx, key, data, s.ttl); err != nil {
		s.log.WithError(err).Warn("stats cache write failed", map[string]interface{}{"key": key})
	}
}

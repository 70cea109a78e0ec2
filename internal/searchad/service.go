package searchad

import (
	"context"

	"keywordjourney/internal/cache"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

// Sources reported by Service.Lookup.
const (
	SourceProvider = "searchad"
	SourceCache    = "cache"
	SourceDummy    = "dummy"
	SourceFallback = "fallback"
)

// Provider returns related keywords for a query. *Client implements it.
type Provider interface {
	RelatedKeywords(ctx context.Context, q Query) ([]models.KeywordStat, error)
}

// Service resolves keyword statistics. Without a provider it serves dummy
// rows; provider failures degrade to a single fallback row.
type Service struct {
	provider Provider
	cache    *cache.Stats
	log      logger.Logger
}

// NewService creates a service. provider may be nil.
func NewService(provider Provider, statsCache *cache.Stats, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{provider: provider, cache: statsCache, log: log}
}

// Configured reports whether a real provider is wired.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// Lookup returns related keyword statistics for keyword and where they came from.
// It never fails.
func (s *Service) Lookup(ctx context.Context, keyword string, detail bool) ([]models.KeywordStat, string) {
	if s.provider == nil {
		s.log.Warn("searchad credentials not configured, returning dummy data", map[string]interface{}{
			"keyword": keyword,
		})
		return DummyStats(keyword), SourceDummy
	}

	if stats, ok := s.cache.Get(ctx, keyword, detail); ok {
		return stats, SourceCache
	}

	stats, err := s.provider.RelatedKeywords(ctx, Query{
		HintKeywords:        keyword,
		ShowDetail:          detail,
		IncludeHintKeywords: true,
	})
	if err != nil {
		s.log.WithError(err).Error("searchad request failed, returning fallback row", map[string]interface{}{
			"keyword": keyword,
		})
		return FallbackStats(keyword), SourceFallback
	}

	s.cache.Set(ctx, keyword, detail, stats)
	return stats, SourceProvider
}

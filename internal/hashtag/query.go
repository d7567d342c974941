package hashtag

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yibu/backend/internal/cache"
	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/metrics"
	"github.com/yibu/backend/internal/models"
	"gorm.io/gorm"
)

const (
	// DefaultLimit is the trending page size when the caller does not ask
	DefaultLimit = 20
	// MaxLimit bounds response size regardless of what the caller asks for
	MaxLimit = 50

	trendingCachePrefix = "trending:hashtags:"
	trendingCacheName   = "trending"
)

// TrendingEntry is the summary shape served to feed/discovery surfaces
type TrendingEntry struct {
	Name          string                 `json:"name"`
	TotalUsage    int64                  `json:"total_usage"`
	Last24Hours   int64                  `json:"last_24h"`
	Category      models.HashtagCategory `json:"category"`
	TrendingScore float64                `json:"trending_score"`
	Velocity      float64                `json:"velocity"`
	IsFeatured    bool                   `json:"is_featured"`
}

// Query serves ranked hashtag lists. Reads go through a short-TTL redis cache
// when one is available; a cache failure silently falls through to the
// database, and rankings may be a tick stale relative to in-flight increments.
type Query struct {
	db       *gorm.DB
	redis    *cache.RedisClient
	cacheTTL time.Duration
}

// NewQuery creates a trending query service. redis may be nil, in which case
// every read hits the database.
func NewQuery(db *gorm.DB, redis *cache.RedisClient, cacheTTL time.Duration) *Query {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Query{db: db, redis: redis, cacheTTL: cacheTTL}
}

// GetTrending returns at most limit hashtags ranked for discovery.
//
// Ordering: featured tags are pinned ahead of everything else, then trending
// score descending, ties broken by total usage descending, then name
// ascending. The order is total, so pagination over unchanged data is stable.
// Banned tags are never returned. category filters to one category when
// non-empty.
func (q *Query) GetTrending(ctx context.Context, limit int, category string) ([]TrendingEntry, error) {
	m := metrics.Get()
	start := time.Now()
	defer func() {
		m.TrendingQueryDuration.Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	cacheKey := q.cacheKey(limit, category)

	if q.redis != nil {
		if cached, err := q.redis.Get(ctx, cacheKey); err == nil {
			var entries []TrendingEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				m.CacheHitsTotal.WithLabelValues(trendingCacheName).Inc()
				return entries, nil
			}
		}
		m.CacheMissesTotal.WithLabelValues(trendingCacheName).Inc()
	}

	tx := q.db.WithContext(ctx).Model(&models.Hashtag{}).
		Where("is_banned = ?", false)
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var records []models.Hashtag
	err := tx.
		Order("is_featured DESC").
		Order("trending_score DESC").
		Order("total_usage DESC").
		Order("name ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]TrendingEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, TrendingEntry{
			Name:          rec.Name,
			TotalUsage:    rec.TotalUsage,
			Last24Hours:   rec.Last24Hours,
			Category:      rec.Category,
			TrendingScore: rec.TrendingScore,
			Velocity:      rec.Velocity,
			IsFeatured:    rec.IsFeatured,
		})
	}

	if q.redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := q.redis.SetEx(ctx, cacheKey, payload, q.cacheTTL); err != nil {
				logger.WarnWithFields("Failed to cache trending response", err)
			}
		}
	}

	return entries, nil
}

// InvalidateCache drops cached trending responses. Called after moderation
// changes so bans take effect immediately instead of after the TTL.
func (q *Query) InvalidateCache(ctx context.Context) {
	if q.redis == nil {
		return
	}
	if err := q.redis.DelPattern(ctx, trendingCachePrefix+"*"); err != nil {
		logger.WarnWithFields("Failed to invalidate trending cache", err)
	}
}

func (q *Query) cacheKey(limit int, category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d", trendingCachePrefix, category, limit)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HashtagCategory groups hashtags for discovery surfaces. The set is closed;
// anything unknown falls back to CategoryGeneral.
type HashtagCategory string

const (
	CategoryGeneral    HashtagCategory = "general"
	CategoryTechnology HashtagCategory = "technology"
	CategoryMusic      HashtagCategory = "music"
	CategoryArt        HashtagCategory = "art"
	CategorySports     HashtagCategory = "sports"
	CategoryGaming     HashtagCategory = "gaming"
	CategoryFood       HashtagCategory = "food"
	CategoryTravel     HashtagCategory = "travel"
	CategoryFashion    HashtagCategory = "fashion"
	CategoryNews       HashtagCategory = "news"
)

// AllCategories lists every valid category, in display order
var AllCategories = []HashtagCategory{
	CategoryGeneral,
	CategoryTechnology,
	CategoryMusic,
	CategoryArt,
	CategorySports,
	CategoryGaming,
	CategoryFood,
	CategoryTravel,
	CategoryFashion,
	CategoryNews,
}

// Valid reports whether c is one of the known categories
func (c HashtagCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Hashtag tracks usage and ranking for one normalized tag name.
//
// Window counters (last_hour/last_24h/last_7d) are incremented atomically on
// every use and hard-reset by the rollover scheduler once their window has
// elapsed. TrendingScore and Velocity are derived values written only by the
// scoring pass, never by ingestion.
type Hashtag struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"` // normalized: trimmed, lowercased, no leading '#'

	// All-time counter, monotonically non-decreasing
	TotalUsage int64 `gorm:"column:total_usage;not null;default:0" json:"total_usage"`

	// Trailing-window counters, each >= 0 at all times
	LastHour       int64     `gorm:"column:last_hour;not null;default:0" json:"last_hour"`
	Last24Hours    int64     `gorm:"column:last_24h;not null;default:0" json:"last_24h"`
	Last7Days      int64     `gorm:"column:last_7d;not null;default:0" json:"last_7d"`
	UsageUpdatedAt time.Time `gorm:"column:usage_updated_at" json:"usage_updated_at"`

	// Derived ranking values, overwritten by the scheduler's scoring pass
	TrendingScore float64 `gorm:"column:trending_score;not null;default:0;index:idx_hashtags_trending,sort:desc" json:"trending_score"`
	Velocity      float64 `gorm:"column:velocity;not null;default:0" json:"velocity"`

	// Snapshot from the previous scoring pass, used to derive velocity
	PrevLast24Hours int64      `gorm:"column:prev_last_24h;not null;default:0" json:"-"`
	LastScoredAt    *time.Time `gorm:"column:last_scored_at" json:"last_scored_at,omitempty"`

	Category HashtagCategory `gorm:"type:varchar(20);not null;default:'general';index" json:"category"`

	// Moderation and promotion flags, independent of score
	IsBanned   bool `gorm:"column:is_banned;not null;default:false" json:"is_banned"`
	IsFeatured bool `gorm:"column:is_featured;not null;default:false" json:"is_featured"`

	// Historical bookkeeping
	FirstUsedAt    time.Time  `gorm:"column:first_used_at" json:"first_used_at"`
	PeakUsageCount int64      `gorm:"column:peak_usage_count;not null;default:0" json:"peak_usage_count"`
	PeakUsageAt    *time.Time `gorm:"column:peak_usage_at" json:"peak_usage_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite
func (h *Hashtag) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

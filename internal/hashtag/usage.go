package hashtag

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yibu/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidTag is returned when a tag name is empty after normalization
var ErrInvalidTag = errors.New("invalid hashtag: empty after normalization")

// Normalize canonicalizes a tag name: trims whitespace, strips a leading '#',
// and lowercases. Returns ErrInvalidTag if nothing remains.
func Normalize(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.TrimPrefix(s, "#")
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrInvalidTag
	}
	return s, nil
}

// Tracker records hashtag usage against the hashtags table.
//
// Increments are single atomic SQL statements; the tracker never reads a
// counter, adds to it in Go, and writes it back.
type Tracker struct {
	db *gorm.DB
}

// NewTracker creates a usage tracker backed by db
func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// RecordUsage increments all counters for the named tag by 1, creating the
// record on first use
func (t *Tracker) RecordUsage(ctx context.Context, name string) error {
	return t.RecordUsageWeighted(ctx, name, 1)
}

// RecordUsageWeighted increments all counters for the named tag by weight.
// The record is created lazily with category "general" on first use.
func (t *Tracker) RecordUsageWeighted(ctx context.Context, name string, weight int64) error {
	normalized, err := Normalize(name)
	if err != nil {
		return err
	}
	if weight <= 0 {
		weight = 1
	}

	now := time.Now().UTC()

	rec := models.Hashtag{
		Name:           normalized,
		TotalUsage:     weight,
		LastHour:       weight,
		Last24Hours:    weight,
		Last7Days:      weight,
		UsageUpdatedAt: now,
		Category:       models.CategoryGeneral,
		FirstUsedAt:    now,
		PeakUsageCount: weight,
		PeakUsageAt:    &now,
	}

	// Upsert with in-database increments so concurrent calls for the same tag
	// never lose updates. Unqualified column references in DO UPDATE refer to
	// the existing row on both postgres and sqlite.
	err = t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_usage":      gorm.Expr("total_usage + ?", weight),
			"last_hour":        gorm.Expr("last_hour + ?", weight),
			"last_24h":         gorm.Expr("last_24h + ?", weight),
			"last_7d":          gorm.Expr("last_7d + ?", weight),
			"usage_updated_at": now,
			"updated_at":       now,
		}),
	}).Create(&rec).Error
	if err != nil {
		return err
	}

	// Raise the 24h high-water mark if the increment pushed past it. A single
	// conditional UPDATE keeps this safe under concurrency.
	return t.db.WithContext(ctx).Exec(
		"UPDATE hashtags SET peak_usage_count = last_24h, peak_usage_at = ? WHERE name = ? AND last_24h > peak_usage_count",
		now, normalized,
	).Error
}

// GetByName fetches a hashtag record by its (raw or normalized) name
func (t *Tracker) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	normalized, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	var rec models.Hashtag
	if err := t.db.WithContext(ctx).Where("name = ?", normalized).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetBanned toggles the moderation flag. Banned tags keep their counters but
// disappear from trending results.
func (t *Tracker) SetBanned(ctx context.Context, name string, banned bool) error {
	return t.setFlag(ctx, name, "is_banned", banned)
}

// SetFeatured toggles the promotion flag
func (t *Tracker) SetFeatured(ctx context.Context, name string, featured bool) error {
	return t.setFlag(ctx, name, "is_featured", featured)
}

// SetCategory reassigns a hashtag to a discovery category
func (t *Tracker) SetCategory(ctx context.Context, name string, category models.HashtagCategory) error {
	normalized, err := Normalize(name)
	if err != nil {
		return err
	}
	if !category.Valid() {
		return ErrInvalidCategory
	}

	result := t.db.WithContext(ctx).Model(&models.Hashtag{}).
		Where("name = ?", normalized).
		Update("category", category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ErrInvalidCategory is returned when a category is outside the closed set
var ErrInvalidCategory = errors.New("invalid hashtag category")

func (t *Tracker) setFlag(ctx context.Context, name string, column string, value bool) error {
	normalized, err := Normalize(name)
	if err != nil {
		return err
	}

	result := t.db.WithContext(ctx).Model(&models.Hashtag{}).
		Where("name = ?", normalized).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

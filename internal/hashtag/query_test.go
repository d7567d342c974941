package hashtag

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yibu/backend/internal/models"
	"gorm.io/gorm"
)

func createHashtag(t *testing.T, db *gorm.DB, rec models.Hashtag) {
	t.Helper()
	if rec.Category == "" {
		rec.Category = models.CategoryGeneral
	}
	rec.UsageUpdatedAt = time.Now().UTC()
	rec.FirstUsedAt = time.Now().UTC()
	require.NoError(t, db.Create(&rec).Error)
}

func names(entries []TrendingEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestGetTrendingOrdersByScore(t *testing.T) {
	db := setupTestDB(t)
	createHashtag(t, db, models.Hashtag{Name: "low", TrendingScore: 10, TotalUsage: 100})
	createHashtag(t, db, models.Hashtag{Name: "high", TrendingScore: 300, TotalUsage: 50})
	createHashtag(t, db, models.Hashtag{Name: "mid", TrendingScore: 150, TotalUsage: 500})

	query := NewQuery(db, nil, 0)
	entries, err := query.GetTrending(context.Background(), 10, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"high", "mid", "low"}, names(entries))
}

func TestGetTrendingBreaksTiesDeterministically(t *testing.T) {
	db := setupTestDB(t)
	// Same score: totalUsage descending decides
	createHashtag(t, db, models.Hashtag{Name: "smaller", TrendingScore: 50, TotalUsage: 10})
	createHashtag(t, db, models.Hashtag{Name: "bigger", TrendingScore: 50, TotalUsage: 99})
	// Same score and total: name ascending decides
	createHashtag(t, db, models.Hashtag{Name: "bravo", TrendingScore: 20, TotalUsage: 5})
	createHashtag(t, db, models.Hashtag{Name: "alpha", TrendingScore: 20, TotalUsage: 5})

	query := NewQuery(db, nil, 0)

	first, err := query.GetTrending(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bigger", "smaller", "alpha", "bravo"}, names(first))

	// Stable across repeated calls with unchanged data
	second, err := query.GetTrending(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetTrendingExcludesBanned(t *testing.T) {
	db := setupTestDB(t)
	createHashtag(t, db, models.Hashtag{Name: "clean", TrendingScore: 10})
	createHashtag(t, db, models.Hashtag{Name: "banned", TrendingScore: 9999, IsBanned: true})

	query := NewQuery(db, nil, 0)
	entries, err := query.GetTrending(context.Background(), 10, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"clean"}, names(entries))
}

func TestGetTrendingPinsFeatured(t *testing.T) {
	db := setupTestDB(t)
	createHashtag(t, db, models.Hashtag{Name: "organic", TrendingScore: 500})
	createHashtag(t, db, models.Hashtag{Name: "editorial", TrendingScore: 1, IsFeatured: true})

	query := NewQuery(db, nil, 0)
	entries, err := query.GetTrending(context.Background(), 10, "")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "editorial", entries[0].Name)
	assert.True(t, entries[0].IsFeatured)
}

func TestGetTrendingClampsLimit(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 60; i++ {
		createHashtag(t, db, models.Hashtag{
			Name:          string(rune('a'+i/26)) + string(rune('a'+i%26)),
			TrendingScore: float64(i),
		})
	}

	query := NewQuery(db, nil, 0)

	entries, err := query.GetTrending(context.Background(), 1000, "")
	require.NoError(t, err)
	assert.Len(t, entries, MaxLimit)

	entries, err = query.GetTrending(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Zero falls back to the default page size
	entries, err = query.GetTrending(context.Background(), 0, "")
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}

func TestGetTrendingFiltersByCategory(t *testing.T) {
	db := setupTestDB(t)
	createHashtag(t, db, models.Hashtag{Name: "synthwave", TrendingScore: 10, Category: models.CategoryMusic})
	createHashtag(t, db, models.Hashtag{Name: "golang", TrendingScore: 20, Category: models.CategoryTechnology})

	query := NewQuery(db, nil, 0)
	entries, err := query.GetTrending(context.Background(), 10, string(models.CategoryMusic))
	require.NoError(t, err)

	assert.Equal(t, []string{"synthwave"}, names(entries))
}

package hashtag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ai", "ai"},
		{"  AI  ", "ai"},
		{"#GoLang", "golang"},
		{"# spaced ", "spaced"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	for _, invalid := range []string{"", "   ", "#", " # "} {
		_, err := Normalize(invalid)
		assert.ErrorIs(t, err, ErrInvalidTag)
	}
}

func TestRecordUsageCountsEveryCall(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, tracker.RecordUsage(ctx, "ai"))
	}

	rec, err := tracker.GetByName(ctx, "ai")
	require.NoError(t, err)

	assert.EqualValues(t, n, rec.TotalUsage)
	assert.EqualValues(t, n, rec.LastHour)
	assert.EqualValues(t, n, rec.Last24Hours)
	assert.EqualValues(t, n, rec.Last7Days)
	assert.False(t, rec.UsageUpdatedAt.IsZero())
	assert.False(t, rec.FirstUsedAt.IsZero())
}

func TestRecordUsageNormalizesToOneRecord(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	require.NoError(t, tracker.RecordUsage(ctx, "  AI  "))
	require.NoError(t, tracker.RecordUsage(ctx, "ai"))
	require.NoError(t, tracker.RecordUsage(ctx, "#ai"))

	rec, err := tracker.GetByName(ctx, "ai")
	require.NoError(t, err)
	assert.EqualValues(t, 3, rec.TotalUsage)

	var count int64
	db.Table("hashtags").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordUsageRejectsEmptyTag(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)

	err := tracker.RecordUsage(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestRecordUsageWeighted(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	require.NoError(t, tracker.RecordUsageWeighted(ctx, "music", 5))
	require.NoError(t, tracker.RecordUsageWeighted(ctx, "music", 3))

	rec, err := tracker.GetByName(ctx, "music")
	require.NoError(t, err)
	assert.EqualValues(t, 8, rec.TotalUsage)
	assert.EqualValues(t, 8, rec.Last24Hours)
}

func TestRecordUsageTracksPeak(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, tracker.RecordUsage(ctx, "peak"))
	}

	rec, err := tracker.GetByName(ctx, "peak")
	require.NoError(t, err)
	assert.EqualValues(t, 4, rec.PeakUsageCount)
	require.NotNil(t, rec.PeakUsageAt)
}

func TestRecordUsageNeverTouchesScore(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	require.NoError(t, tracker.RecordUsage(ctx, "quiet"))

	rec, err := tracker.GetByName(ctx, "quiet")
	require.NoError(t, err)
	assert.Zero(t, rec.TrendingScore)
	assert.Zero(t, rec.Velocity)
	assert.Nil(t, rec.LastScoredAt)
}

func TestModerationFlags(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ctx := context.Background()

	require.NoError(t, tracker.RecordUsage(ctx, "spam"))

	require.NoError(t, tracker.SetBanned(ctx, "spam", true))
	rec, err := tracker.GetByName(ctx, "spam")
	require.NoError(t, err)
	assert.True(t, rec.IsBanned)

	require.NoError(t, tracker.SetFeatured(ctx, "#SPAM", true))
	rec, err = tracker.GetByName(ctx, "spam")
	require.NoError(t, err)
	assert.True(t, rec.IsFeatured)

	// Unknown tag
	err = tracker.SetBanned(ctx, "nosuchtag", true)
	assert.Error(t, err)
}

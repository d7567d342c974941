package hashtag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHashtags(t *testing.T) {
	tags := ExtractHashtags("New drop! #SynthWave #synthwave check #lo_fi and #2024 🎧")
	assert.Equal(t, []string{"synthwave", "lo_fi", "2024"}, tags)
}

func TestExtractHashtagsNoMatches(t *testing.T) {
	assert.Nil(t, ExtractHashtags("no tags in here"))
	assert.Nil(t, ExtractHashtags(""))
	// A bare '#' is not a tag
	assert.Nil(t, ExtractHashtags("just a # symbol"))
}

func TestOnHashtagUsedRecordsAllTags(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ingestor := NewIngestor(tracker)
	ctx := context.Background()

	recorded := ingestor.OnHashtagUsed(ctx, []string{"#ai", "Music", "travel"})
	assert.Equal(t, 3, recorded)

	for _, name := range []string{"ai", "music", "travel"} {
		rec, err := tracker.GetByName(ctx, name)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rec.TotalUsage)
	}
}

// Invalid tags are skipped without failing the batch: the post-creation flow
// must never break because of a bad tag.
func TestOnHashtagUsedSkipsInvalidTags(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ingestor := NewIngestor(tracker)
	ctx := context.Background()

	recorded := ingestor.OnHashtagUsed(ctx, []string{"", "  ", "#", "valid"})
	assert.Equal(t, 1, recorded)

	rec, err := tracker.GetByName(ctx, "valid")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rec.TotalUsage)
}

func TestOnHashtagUsedDeduplicatesNothing(t *testing.T) {
	// Repeated tags in one event are counted once each; dedup is the
	// extractor's job, not the ingestor's
	db := setupTestDB(t)
	tracker := NewTracker(db)
	ingestor := NewIngestor(tracker)
	ctx := context.Background()

	recorded := ingestor.OnHashtagUsed(ctx, []string{"beat", "beat"})
	assert.Equal(t, 2, recorded)

	rec, err := tracker.GetByName(ctx, "beat")
	require.NoError(t, err)
	assert.EqualValues(t, 2, rec.TotalUsage)
}

package hashtag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yibu/backend/internal/models"
)

func TestComputeScoreDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := &models.Hashtag{
		TotalUsage:  1000,
		LastHour:    10,
		Last24Hours: 100,
		Last7Days:   500,
	}

	first := ComputeScore(rec, now)
	second := ComputeScore(rec, now)

	assert.Equal(t, first, second)
	assert.Greater(t, first.Score, 0.0)
}

func TestComputeScoreDoesNotMutateInput(t *testing.T) {
	now := time.Now().UTC()
	rec := &models.Hashtag{TotalUsage: 50, Last24Hours: 20, Last7Days: 40}
	before := *rec

	ComputeScore(rec, now)

	assert.Equal(t, before, *rec)
}

func TestComputeScoreMonotonicInEachWindow(t *testing.T) {
	now := time.Now().UTC()
	base := &models.Hashtag{
		TotalUsage:  1000,
		LastHour:    5,
		Last24Hours: 100,
		Last7Days:   500,
	}
	baseScore := ComputeScore(base, now).Score

	bumps := []func(h *models.Hashtag){
		func(h *models.Hashtag) { h.LastHour++ },
		func(h *models.Hashtag) { h.Last24Hours++ },
		func(h *models.Hashtag) { h.Last7Days++ },
		func(h *models.Hashtag) { h.TotalUsage++ },
	}

	for _, bump := range bumps {
		bumped := *base
		bump(&bumped)
		assert.Greater(t, ComputeScore(&bumped, now).Score, baseScore)
	}
}

// A tag with heavy recent activity must outrank one with a bigger all-time
// total but a quieter day: #music (1100 uses, all today) beats #ai (2000
// all-time, 500 today).
func TestComputeScoreRecencyDominates(t *testing.T) {
	now := time.Now().UTC()

	ai := &models.Hashtag{
		TotalUsage:  2000,
		Last24Hours: 500,
		Last7Days:   2000,
	}
	music := &models.Hashtag{
		TotalUsage:  1100,
		Last24Hours: 1100,
		Last7Days:   1100,
	}

	assert.Greater(t, ComputeScore(music, now).Score, ComputeScore(ai, now).Score)
}

func TestComputeScoreVelocity(t *testing.T) {
	now := time.Now().UTC()
	scoredAt := now.Add(-2 * time.Hour)

	rec := &models.Hashtag{
		Last24Hours:     120,
		PrevLast24Hours: 100,
		LastScoredAt:    &scoredAt,
	}

	result := ComputeScore(rec, now)
	assert.InDelta(t, 10.0, result.Velocity, 0.001) // +20 uses over 2 hours

	// Declining usage yields negative velocity
	rec.Last24Hours = 60
	result = ComputeScore(rec, now)
	assert.InDelta(t, -20.0, result.Velocity, 0.001)
}

func TestComputeScoreVelocityZeroWhenNeverScored(t *testing.T) {
	rec := &models.Hashtag{Last24Hours: 500}
	result := ComputeScore(rec, time.Now().UTC())
	assert.Zero(t, result.Velocity)
}

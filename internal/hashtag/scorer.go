package hashtag

import (
	"time"

	"github.com/yibu/backend/internal/models"
)

// Scoring weights. These are policy, not contract: recent windows must
// dominate older ones (hour > day > week > all-time) and every weight must be
// positive so the score is monotonic in each counter. With these values a tag
// with 1100 uses in the last day outranks one with 2000 all-time uses but only
// 500 in the last day.
const (
	weightLastHour = 8.0
	weightLast24h  = 2.0
	weightLast7d   = 0.5
	weightAllTime  = 0.01
)

// ScoreResult is the output of a scoring pass for one record
type ScoreResult struct {
	Score    float64
	Velocity float64
}

// ComputeScore derives the trending score and velocity for a record at time
// now. It is a pure function: identical inputs always produce identical
// output, and the record is never mutated.
//
// Velocity is the change in the 24h window since the previous scoring pass,
// per hour. A record that has never been scored has velocity 0.
func ComputeScore(rec *models.Hashtag, now time.Time) ScoreResult {
	score := float64(rec.LastHour)*weightLastHour +
		float64(rec.Last24Hours)*weightLast24h +
		float64(rec.Last7Days)*weightLast7d +
		float64(rec.TotalUsage)*weightAllTime

	velocity := 0.0
	if rec.LastScoredAt != nil {
		elapsed := now.Sub(*rec.LastScoredAt).Hours()
		if elapsed > 0 {
			velocity = float64(rec.Last24Hours-rec.PrevLast24Hours) / elapsed
		}
	}

	return ScoreResult{Score: score, Velocity: velocity}
}

package hashtag

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/metrics"
	"go.uber.org/zap"
)

// hashtagPattern matches #tags in post content: letters, digits and
// underscores, unicode-aware
var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags pulls the distinct normalized tag names out of post content
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		name, err := Normalize(match[1])
		if err != nil || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

// Ingestor receives "hashtag used" events from the post-creation pipeline.
//
// Tracking is best-effort: an invalid tag is skipped and logged, a storage
// failure is retried once with backoff and then dropped with a warning. The
// triggering post creation is never failed from here.
type Ingestor struct {
	tracker    *Tracker
	retryDelay time.Duration
}

// NewIngestor creates an ingest adapter over the given tracker
func NewIngestor(tracker *Tracker) *Ingestor {
	return &Ingestor{
		tracker:    tracker,
		retryDelay: 100 * time.Millisecond,
	}
}

// OnHashtagUsed records one usage event for each tag extracted from a created
// or edited post. Returns the number of tags successfully recorded.
func (in *Ingestor) OnHashtagUsed(ctx context.Context, names []string) int {
	m := metrics.Get()
	m.IngestBatchSize.Observe(float64(len(names)))

	recorded := 0
	for _, raw := range names {
		name, err := Normalize(raw)
		if err != nil {
			if errors.Is(err, ErrInvalidTag) {
				logger.Log.Warn("Skipping invalid hashtag",
					zap.String("raw", raw),
				)
				m.UsageEventsTotal.WithLabelValues("invalid").Inc()
				continue
			}
			m.UsageEventsTotal.WithLabelValues("failed").Inc()
			continue
		}

		if err := in.tracker.RecordUsage(ctx, name); err != nil {
			m.UsageRetriesTotal.Inc()
			if !in.sleep(ctx) {
				m.UsageEventsTotal.WithLabelValues("failed").Inc()
				return recorded
			}
			if err := in.tracker.RecordUsage(ctx, name); err != nil {
				logger.Log.Warn("Failed to record hashtag usage",
					logger.WithTag(name),
					zap.Error(err),
				)
				m.UsageEventsTotal.WithLabelValues("failed").Inc()
				continue
			}
		}

		m.UsageEventsTotal.WithLabelValues("ok").Inc()
		recorded++
	}

	return recorded
}

// sleep waits out the retry backoff, returning false if ctx was cancelled
func (in *Ingestor) sleep(ctx context.Context) bool {
	timer := time.NewTimer(in.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

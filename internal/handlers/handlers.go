package handlers

import (
	"github.com/yibu/backend/internal/hashtag"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	tracker  *hashtag.Tracker
	query    *hashtag.Query
	ingestor *hashtag.Ingestor
}

// NewHandlers creates a new handlers instance
func NewHandlers(tracker *hashtag.Tracker, query *hashtag.Query, ingestor *hashtag.Ingestor) *Handlers {
	return &Handlers{
		tracker:  tracker,
		query:    query,
		ingestor: ingestor,
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yibu/backend/internal/hashtag"
	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/models"
	"github.com/yibu/backend/internal/util"
	"gorm.io/gorm"
)

// GetTrendingHashtags returns hashtags ranked for discovery surfaces
// GET /api/hashtags/trending?limit=20&category=music
func (h *Handlers) GetTrendingHashtags(c *gin.Context) {
	limit := util.ParseInt(c.DefaultQuery("limit", "20"), hashtag.DefaultLimit)
	category := c.Query("category")

	if category != "" && !models.HashtagCategory(category).Valid() {
		util.RespondValidationError(c, "category", "unknown category")
		return
	}

	entries, err := h.query.GetTrending(c.Request.Context(), limit, category)
	if err != nil {
		// Trending degrades to an empty list rather than erroring the feed
		logger.ErrorWithFields("Failed to load trending hashtags", err)
		entries = []hashtag.TrendingEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtags": entries,
		"meta": gin.H{
			"limit":    util.ClampLimit(limit, hashtag.DefaultLimit, hashtag.MaxLimit),
			"count":    len(entries),
			"category": category,
		},
	})
}

// GetHashtag returns a single hashtag record
// GET /api/hashtags/:name
func (h *Handlers) GetHashtag(c *gin.Context) {
	name := c.Param("name")

	rec, err := h.tracker.GetByName(c.Request.Context(), name)
	if err != nil {
		switch err {
		case hashtag.ErrInvalidTag:
			util.RespondValidationError(c, "name", "invalid hashtag name")
		case gorm.ErrRecordNotFound:
			util.RespondNotFound(c, "hashtag")
		default:
			util.RespondInternalError(c, "failed to fetch hashtag")
		}
		return
	}

	// Banned tags are soft-disabled: hidden from the public surface
	if rec.IsBanned {
		util.RespondNotFound(c, "hashtag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hashtag": rec})
}

// GetHashtagCategories returns the closed category set used for discovery
// grouping
// GET /api/hashtags/categories
func (h *Handlers) GetHashtagCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.AllCategories})
}

// trackRequest is the body for the ingest endpoint. Either explicit tags or
// raw post content to extract from.
type trackRequest struct {
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
}

// TrackHashtags records hashtag usage from the post-creation pipeline
// POST /api/hashtags/track
func (h *Handlers) TrackHashtags(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	tags := req.Tags
	if req.Content != "" {
		tags = append(tags, hashtag.ExtractHashtags(req.Content)...)
	}

	if len(tags) == 0 {
		util.RespondBadRequest(c, "no tags or content provided")
		return
	}

	recorded := h.ingestor.OnHashtagUsed(c.Request.Context(), tags)

	c.JSON(http.StatusOK, gin.H{
		"tracked": recorded,
		"meta": gin.H{
			"submitted": len(tags),
		},
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yibu/backend/internal/hashtag"
	"github.com/yibu/backend/internal/models"
	"github.com/yibu/backend/internal/util"
	"gorm.io/gorm"
)

// Moderation endpoints. Auth is enforced by an admin middleware mounted in
// front of these routes; the handlers only deal with the hashtag state.

// BanHashtag soft-disables a hashtag: counters keep accumulating but the tag
// no longer appears in trending results
// POST /api/admin/hashtags/:name/ban
func (h *Handlers) BanHashtag(c *gin.Context) {
	h.setModerationFlag(c, func(name string) error {
		return h.tracker.SetBanned(c.Request.Context(), name, true)
	})
}

// UnbanHashtag reverses a ban
// POST /api/admin/hashtags/:name/unban
func (h *Handlers) UnbanHashtag(c *gin.Context) {
	h.setModerationFlag(c, func(name string) error {
		return h.tracker.SetBanned(c.Request.Context(), name, false)
	})
}

// FeatureHashtag pins a hashtag ahead of the score ordering
// POST /api/admin/hashtags/:name/feature
func (h *Handlers) FeatureHashtag(c *gin.Context) {
	h.setModerationFlag(c, func(name string) error {
		return h.tracker.SetFeatured(c.Request.Context(), name, true)
	})
}

// UnfeatureHashtag removes the pin
// POST /api/admin/hashtags/:name/unfeature
func (h *Handlers) UnfeatureHashtag(c *gin.Context) {
	h.setModerationFlag(c, func(name string) error {
		return h.tracker.SetFeatured(c.Request.Context(), name, false)
	})
}

// SetHashtagCategory reassigns a hashtag's discovery category
// PUT /api/admin/hashtags/:name/category
func (h *Handlers) SetHashtagCategory(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "category is required")
		return
	}

	h.setModerationFlag(c, func(name string) error {
		return h.tracker.SetCategory(c.Request.Context(), name, models.HashtagCategory(req.Category))
	})
}

// setModerationFlag runs a tracker mutation for the :name param, translates
// errors, and invalidates the trending cache on success
func (h *Handlers) setModerationFlag(c *gin.Context, mutate func(name string) error) {
	name := c.Param("name")

	if err := mutate(name); err != nil {
		switch err {
		case hashtag.ErrInvalidTag:
			util.RespondValidationError(c, "name", "invalid hashtag name")
		case hashtag.ErrInvalidCategory:
			util.RespondValidationError(c, "category", "unknown category")
		case gorm.ErrRecordNotFound:
			util.RespondNotFound(c, "hashtag")
		default:
			util.RespondInternalError(c, "failed to update hashtag")
		}
		return
	}

	h.query.InvalidateCache(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/dictionary"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/pkg/models"
)

const scribbleCacheTTL = 10 * time.Minute

func scribbleViews(scribbles []*models.Scribble) []*models.ScribbleView {
	views := make([]*models.ScribbleView, 0, len(scribbles))
	for _, s := range scribbles {
		views = append(views, s.View())
	}
	return views
}

// listScribbles serves published scribbles, newest first. When the wall is
// empty or unreachable the built-in posts are served instead.
func (api *API) listScribbles(c *gin.Context) {
	scribbles, err := api.scribbles.ListPublished(c.Request.Context())
	if err != nil {
		api.logger.ErrorWithErr("Scribble listing failed, serving built-ins", err)
		scribbles = dictionary.FallbackScribbles()
	}
	if len(scribbles) == 0 {
		scribbles = dictionary.FallbackScribbles()
	}

	c.JSON(http.StatusOK, gin.H{"scribbles": scribbleViews(scribbles)})
}

// listPinnedScribbles serves the pinned scribbles shown on the front page
func (api *API) listPinnedScribbles(c *gin.Context) {
	scribbles, err := api.scribbles.ListPinned(c.Request.Context(), 3)
	if err != nil {
		api.logger.ErrorWithErr("Pinned scribble listing failed", err)
		scribbles = nil
	}

	c.JSON(http.StatusOK, gin.H{"scribbles": scribbleViews(scribbles)})
}

// getScribble serves one published scribble by slug, cache first, falling
// back to the built-in posts when the wall has no matching scribble.
func (api *API) getScribble(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	if api.cache != nil {
		if cached, err := api.cache.GetScribble(ctx, slug); err == nil && cached != nil {
			metrics.RecordCacheAccess("scribbles", true)
			c.JSON(http.StatusOK, cached.View())
			return
		}
		metrics.RecordCacheAccess("scribbles", false)
	}

	scribble, err := api.scribbles.GetBySlug(ctx, slug)
	if err != nil || !scribble.IsPublished {
		if fallback := dictionary.FallbackScribble(slug); fallback != nil {
			c.JSON(http.StatusOK, fallback.View())
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "No scribble on this wall."})
		return
	}

	if api.cache != nil {
		if err := api.cache.SetScribble(ctx, scribble, scribbleCacheTTL); err != nil {
			api.logger.ErrorWithErr("Scribble cache write failed", err)
		}
	}

	c.JSON(http.StatusOK, scribble.View())
}

// listAllScribbles serves every scribble, drafts included (admin)
func (api *API) listAllScribbles(c *gin.Context) {
	scribbles, err := api.scribbles.ListAll(c.Request.Context())
	if err != nil {
		api.logger.ErrorWithErr("Scribble listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cave wall smudged. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scribbles": scribbles})
}

type scribbleRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content" binding:"required"`
	IsPublished bool   `json:"is_published"`
}

// createScribble writes a new scribble on the wall (admin)
func (api *API) createScribble(c *gin.Context) {
	var req scribbleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scribble := &models.Scribble{
		Slug:        req.Slug,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}

	if err := api.scribbles.CreateScribble(c.Request.Context(), scribble); err != nil {
		api.logger.ErrorWithErr("Scribble create failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug hand slip. Try again?"})
		return
	}

	api.invalidateScribbleCache(c)
	c.JSON(http.StatusCreated, scribble)
}

// updateScribble rewrites a scribble (admin)
func (api *API) updateScribble(c *gin.Context) {
	var req scribbleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scribble := &models.Scribble{
		ID:          c.Param("id"),
		Slug:        req.Slug,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}

	if err := api.scribbles.UpdateScribble(c.Request.Context(), scribble); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No scribble on this wall."})
		return
	}

	api.invalidateScribbleCache(c)
	c.JSON(http.StatusOK, scribble)
}

// pinScribble pins or unpins a scribble on the front page (admin)
func (api *API) pinScribble(c *gin.Context) {
	var req struct {
		Pinned bool `json:"pinned"`
		Order  *int `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.scribbles.SetPinned(c.Request.Context(), c.Param("id"), req.Pinned, req.Order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No scribble on this wall."})
		return
	}

	api.invalidateScribbleCache(c)
	c.JSON(http.StatusOK, gin.H{"pinned": req.Pinned})
}

// deleteScribble scrubs a scribble off the wall (admin)
func (api *API) deleteScribble(c *gin.Context) {
	if err := api.scribbles.DeleteScribble(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No scribble on this wall."})
		return
	}

	api.invalidateScribbleCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Scribble scrubbed."})
}

func (api *API) invalidateScribbleCache(c *gin.Context) {
	if api.cache == nil {
		return
	}
	if err := api.cache.InvalidateScribbles(c.Request.Context()); err != nil {
		api.logger.ErrorWithErr("Scribble cache invalidation failed", err)
	}
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/pkg/models"
)

// ownedWishlist loads a wishlist and checks it belongs to the caller
func (api *API) ownedWishlist(c *gin.Context) (*models.Wishlist, bool) {
	userID, _ := middleware.GetUserID(c)

	wishlist, err := api.wishlists.GetWishlist(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No painting in this cave."})
		return nil, false
	}
	if wishlist.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not man's painting."})
		return nil, false
	}

	return wishlist, true
}

// createWishlist starts a new cave painting
func (api *API) createWishlist(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		RecipientName string `json:"recipient_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Painting need name."})
		return
	}

	userID, _ := middleware.GetUserID(c)
	wishlist := &models.Wishlist{
		UserID:        userID,
		Name:          req.Name,
		RecipientName: req.RecipientName,
		IsActive:      true,
	}

	if err := api.wishlists.CreateWishlist(c.Request.Context(), wishlist); err != nil {
		api.logger.ErrorWithErr("Wishlist create failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	metrics.WishlistsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, wishlist)
}

// getOrCreateDefaultWishlist returns the caller's most recent wishlist,
// starting one for him when he has none yet
func (api *API) getOrCreateDefaultWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	wishlist, err := api.wishlists.GetOrCreateDefault(c.Request.Context(), userID)
	if err != nil {
		api.logger.ErrorWithErr("Default wishlist lookup failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// listWishlists serves the caller's wishlists
func (api *API) listWishlists(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	wishlists, err := api.wishlists.ListUserWishlists(c.Request.Context(), userID)
	if err != nil {
		api.logger.ErrorWithErr("Wishlist listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlists": wishlists})
}

// getWishlist serves one of the caller's wishlists with its items
func (api *API) getWishlist(c *gin.Context) {
	wishlist, ok := api.ownedWishlist(c)
	if !ok {
		return
	}

	items, err := api.wishlists.ListItems(c.Request.Context(), wishlist.ID)
	if err != nil {
		api.logger.ErrorWithErr("Wishlist items listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist, "items": items})
}

// updateWishlist renames a wishlist or its recipient
func (api *API) updateWishlist(c *gin.Context) {
	wishlist, ok := api.ownedWishlist(c)
	if !ok {
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required"`
		RecipientName string `json:"recipient_name"`
		IsActive      *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Painting need name."})
		return
	}

	wishlist.Name = req.Name
	wishlist.RecipientName = req.RecipientName
	if req.IsActive != nil {
		wishlist.IsActive = *req.IsActive
	}

	if err := api.wishlists.UpdateWishlist(c.Request.Context(), wishlist); err != nil {
		api.logger.ErrorWithErr("Wishlist update failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// deleteWishlist removes a wishlist and its items
func (api *API) deleteWishlist(c *gin.Context) {
	wishlist, ok := api.ownedWishlist(c)
	if !ok {
		return
	}

	if err := api.wishlists.DeleteWishlist(c.Request.Context(), wishlist.ID); err != nil {
		api.logger.ErrorWithErr("Wishlist delete failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Painting washed off wall."})
}

// addWishlistItem saves a product onto a wishlist
func (api *API) addWishlistItem(c *gin.Context) {
	wishlist, ok := api.ownedWishlist(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Man not pick thing."})
		return
	}

	if _, err := api.products.GetProduct(c.Request.Context(), req.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grug not find this thing."})
		return
	}

	item, err := api.wishlists.AddItem(c.Request.Context(), wishlist.ID, req.ProductID)
	if err != nil {
		api.logger.ErrorWithErr("Wishlist item add failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// removeWishlistItem takes a product off a wishlist
func (api *API) removeWishlistItem(c *gin.Context) {
	wishlist, ok := api.ownedWishlist(c)
	if !ok {
		return
	}

	if err := api.wishlists.RemoveItem(c.Request.Context(), wishlist.ID, c.Param("productID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thing not on painting."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thing off painting."})
}

// getSharedWishlist serves a wishlist by share token. Anyone holding the
// link can see it and vote; no session is required.
func (api *API) getSharedWishlist(c *gin.Context) {
	wishlist, err := api.wishlists.GetByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No painting in this cave."})
		return
	}

	items, err := api.wishlists.ListItems(c.Request.Context(), wishlist.ID)
	if err != nil {
		api.logger.ErrorWithErr("Wishlist items listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop paint. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": gin.H{"name": wishlist.Name, "recipient_name": wishlist.RecipientName},
		"items":    items,
	})
}

// voteWishlistItem records an up, down, or cleared vote on a shared item
func (api *API) voteWishlistItem(c *gin.Context) {
	wishlist, err := api.wishlists.GetByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No painting in this cave."})
		return
	}

	var req struct {
		Vote *string `json:"vote"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not understand vote."})
		return
	}
	if req.Vote != nil && *req.Vote != models.VoteUp && *req.Vote != models.VoteDown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not understand vote."})
		return
	}

	// The item must belong to the shared wishlist; a bare item ID from
	// another list is rejected.
	item, err := api.wishlists.GetItem(c.Request.Context(), c.Param("itemID"), wishlist.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thing not on painting."})
		return
	}

	if err := api.wishlists.SetVote(c.Request.Context(), item.ID, req.Vote); err != nil {
		api.logger.ErrorWithErr("Vote failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop vote rock. Try again?"})
		return
	}

	if req.Vote != nil {
		metrics.RecordWishlistVote(*req.Vote)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": voteMessage(req.Vote)})
}

func voteMessage(vote *string) string {
	switch {
	case vote == nil:
		return "Vote removed."
	case *vote == models.VoteUp:
		return "Womanfolk like this thing!"
	default:
		return "Womanfolk not want this thing."
	}
}

// getWishlistVotes summarises votes across a shared wishlist
func (api *API) getWishlistVotes(c *gin.Context) {
	wishlist, err := api.wishlists.GetByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No painting in this cave."})
		return
	}

	counts, err := api.wishlists.GetVoteCounts(c.Request.Context(), wishlist.ID)
	if err != nil {
		api.logger.ErrorWithErr("Vote counts failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug lose count. Try again?"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

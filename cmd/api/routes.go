package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/cache"
	"github.com/giftgrug/giftgrug/internal/chat"
	"github.com/giftgrug/giftgrug/internal/config"
	"github.com/giftgrug/giftgrug/internal/database"
	"github.com/giftgrug/giftgrug/internal/identity"
	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/internal/quota"
	"github.com/giftgrug/giftgrug/internal/storage"
	"github.com/giftgrug/giftgrug/pkg/models"
)

// usageLedger is the persisted per-identifier daily message counter
type usageLedger interface {
	GetCount(ctx context.Context, identifier, identifierType, date string) (int, error)
	Increment(ctx context.Context, identifier, identifierType, date string) error
}

// scribbleStore is the persisted collection of cave wall posts
type scribbleStore interface {
	ListPublished(ctx context.Context) ([]*models.Scribble, error)
	ListPinned(ctx context.Context, limit int) ([]*models.Scribble, error)
	ListAll(ctx context.Context) ([]*models.Scribble, error)
	GetBySlug(ctx context.Context, slug string) (*models.Scribble, error)
	CreateScribble(ctx context.Context, scribble *models.Scribble) error
	UpdateScribble(ctx context.Context, scribble *models.Scribble) error
	SetPinned(ctx context.Context, id string, pinned bool, order *int) error
	DeleteScribble(ctx context.Context, id string) error
}

// wishlistStore is the persisted collection of cave paintings and their items
type wishlistStore interface {
	CreateWishlist(ctx context.Context, wishlist *models.Wishlist) error
	GetWishlist(ctx context.Context, id string) (*models.Wishlist, error)
	GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error)
	GetOrCreateDefault(ctx context.Context, userID string) (*models.Wishlist, error)
	ListUserWishlists(ctx context.Context, userID string) ([]*models.Wishlist, error)
	UpdateWishlist(ctx context.Context, wishlist *models.Wishlist) error
	DeleteWishlist(ctx context.Context, id string) error
	AddItem(ctx context.Context, wishlistID, productID string) (*models.WishlistItem, error)
	RemoveItem(ctx context.Context, wishlistID, productID string) error
	GetItem(ctx context.Context, itemID, wishlistID string) (*models.WishlistItem, error)
	ListItems(ctx context.Context, wishlistID string) ([]*models.WishlistItemWithProduct, error)
	SetVote(ctx context.Context, itemID string, vote *string) error
	GetVoteCounts(ctx context.Context, wishlistID string) (*models.VoteCounts, error)
}

type API struct {
	cfg       *config.Config
	logger    *logging.Logger
	db        *database.DB
	products  *database.ProductRepository
	scribbles scribbleStore
	wishlists wishlistStore
	suns      *database.SpecialSunRepository
	profiles  *database.ProfileRepository
	usage     usageLedger
	cache     *cache.Cache
	storage   *storage.Storage
	completer chat.Completer
	resolver  *identity.Resolver
	policy    *quota.Policy
}

func setupRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.logger))

	router.GET("/health", api.healthCheck)

	chatLimiter := middleware.NewRateLimiter(api.cfg.Chat.RequestPerSec, api.cfg.Chat.RequestBurst)

	apiGroup := router.Group("/api")
	{
		// Chat
		chatGroup := apiGroup.Group("/grug-chat")
		chatGroup.Use(middleware.OptionalAuth())
		{
			chatGroup.POST("", middleware.RateLimit(chatLimiter), api.grugChat)
			chatGroup.GET("/usage", api.chatUsage)
		}

		// Catalogue
		apiGroup.GET("/products", api.listProducts)
		apiGroup.GET("/products/:id", api.getProduct)
		apiGroup.GET("/dictionary", api.getDictionary)

		// Scribbles
		apiGroup.GET("/scribbles", api.listScribbles)
		apiGroup.GET("/scribbles/pinned", api.listPinnedScribbles)
		apiGroup.GET("/scribbles/:slug", api.getScribble)

		// Shared wishlist views, reachable without a session
		shared := apiGroup.Group("/wishlists/shared/:token")
		{
			shared.GET("", api.getSharedWishlist)
			shared.GET("/votes", api.getWishlistVotes)
			shared.POST("/items/:itemID/vote", api.voteWishlistItem)
		}

		// One-click remembered link from reminder messages
		apiGroup.GET("/remembered/:id", api.markRemembered)

		// Authenticated
		authed := apiGroup.Group("")
		authed.Use(middleware.Auth())
		{
			authed.POST("/wishlists", api.createWishlist)
			authed.POST("/wishlists/default", api.getOrCreateDefaultWishlist)
			authed.GET("/wishlists", api.listWishlists)
			authed.GET("/wishlists/:id", api.getWishlist)
			authed.PUT("/wishlists/:id", api.updateWishlist)
			authed.DELETE("/wishlists/:id", api.deleteWishlist)
			authed.POST("/wishlists/:id/items", api.addWishlistItem)
			authed.DELETE("/wishlists/:id/items/:productID", api.removeWishlistItem)

			authed.POST("/special-suns", api.createSpecialSun)
			authed.GET("/special-suns", api.listSpecialSuns)
			authed.PUT("/special-suns/:id", api.updateSpecialSun)
			authed.DELETE("/special-suns/:id", api.deleteSpecialSun)
		}

		// Admin
		admin := apiGroup.Group("/admin")
		admin.Use(middleware.Auth(), api.requireAdmin)
		{
			admin.POST("/products", api.createProduct)
			admin.PUT("/products/:id", api.updateProduct)
			admin.DELETE("/products/:id", api.deactivateProduct)

			admin.GET("/scribbles", api.listAllScribbles)
			admin.POST("/scribbles", api.createScribble)
			admin.PUT("/scribbles/:id", api.updateScribble)
			admin.PUT("/scribbles/:id/pin", api.pinScribble)
			admin.DELETE("/scribbles/:id", api.deleteScribble)

			admin.POST("/images", api.uploadImage)
		}
	}

	return router
}

// requireAdmin rejects callers whose profile lacks the admin flag
func (api *API) requireAdmin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok || !api.profiles.IsAdmin(c.Request.Context(), userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This cave for Grug only."})
		c.Abort()
		return
	}
	c.Next()
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

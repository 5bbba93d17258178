package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/dictionary"
	"github.com/giftgrug/giftgrug/internal/metrics"
	"github.com/giftgrug/giftgrug/pkg/models"
)

const productCacheTTL = 5 * time.Minute

// listProducts serves the catalogue, filtered by query parameters. Listings
// are cached per filter key.
func (api *API) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	switch {
	case c.Query("search") != "":
		// Search results are not cached; the term space is unbounded
		products, err := api.products.SearchProducts(ctx, c.Query("search"))
		if err != nil {
			api.respondProductsError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	case c.Query("category") != "":
		category := c.Query("category")
		if _, ok := dictionary.CategoryByID(category); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grug not know this pile."})
			return
		}
		api.serveProductList(c, "category:"+category, func() ([]*models.Product, error) {
			return api.products.ListByCategory(ctx, category)
		})
	case c.Query("grug_picks") == "true":
		api.serveProductList(c, "grug-picks", func() ([]*models.Product, error) {
			return api.products.ListGrugPicks(ctx)
		})
	case c.Query("panic") == "true":
		api.serveProductList(c, "panic", func() ([]*models.Product, error) {
			return api.products.ListPanicProducts(ctx)
		})
	case c.Query("type") == models.ProductTypeMerch:
		api.serveProductList(c, "merch", func() ([]*models.Product, error) {
			return api.products.ListMerchProducts(ctx)
		})
	default:
		api.serveProductList(c, "affiliate", func() ([]*models.Product, error) {
			return api.products.ListAffiliateProducts(ctx)
		})
	}
}

// serveProductList answers from cache when possible, falling back to the
// database and repopulating.
func (api *API) serveProductList(c *gin.Context, listKey string, fetch func() ([]*models.Product, error)) {
	ctx := c.Request.Context()

	if api.cache != nil {
		if cached, err := api.cache.GetProducts(ctx, listKey); err == nil && cached != nil {
			metrics.RecordCacheAccess("products", true)
			c.JSON(http.StatusOK, gin.H{"products": cached})
			return
		}
		metrics.RecordCacheAccess("products", false)
	}

	products, err := fetch()
	if err != nil {
		api.respondProductsError(c, err)
		return
	}

	if api.cache != nil {
		if err := api.cache.SetProducts(ctx, listKey, products, productCacheTTL); err != nil {
			api.logger.ErrorWithErr("Product cache write failed", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (api *API) respondProductsError(c *gin.Context, err error) {
	api.logger.ErrorWithErr("Product listing failed", err)
	metrics.RecordError("products", "list")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop the pile. Try again?"})
}

// getProduct serves a single product
func (api *API) getProduct(c *gin.Context) {
	product, err := api.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grug not find this thing."})
		return
	}

	c.JSON(http.StatusOK, product)
}

// getDictionary serves the fixed grug vocabulary: categories, price ranges,
// recipient and occasion types.
func (api *API) getDictionary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":      dictionary.Categories,
		"price_ranges":    dictionary.PriceRanges,
		"recipient_types": dictionary.RecipientTypes,
		"occasion_types":  dictionary.OccasionTypes,
	})
}

type productRequest struct {
	GrugName       string   `json:"grug_name" binding:"required"`
	RealName       string   `json:"real_name" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	Price          float64  `json:"price"`
	AmazonURL      string   `json:"amazon_url"`
	AmazonASIN     string   `json:"amazon_asin"`
	ImageURL       string   `json:"image_url"`
	GrugSays       string   `json:"grug_says"`
	ProductType    string   `json:"product_type"`
	IsGrugPick     bool     `json:"is_grug_pick"`
	IsPanicProduct bool     `json:"is_panic_product"`
	Tags           []string `json:"tags"`
}

func (req *productRequest) toModel() *models.Product {
	productType := req.ProductType
	if productType == "" {
		productType = models.ProductTypeAffiliate
	}

	amazonURL := req.AmazonURL
	if amazonURL == "" && req.AmazonASIN != "" {
		amazonURL = dictionary.AffiliateURL(req.AmazonASIN, dictionary.DefaultAssociateTag)
	}

	return &models.Product{
		GrugName:       req.GrugName,
		RealName:       req.RealName,
		Category:       req.Category,
		PriceRange:     dictionary.PriceRangeForValue(req.Price).ID,
		Price:          req.Price,
		AmazonURL:      amazonURL,
		AmazonASIN:     req.AmazonASIN,
		ImageURL:       req.ImageURL,
		GrugSays:       req.GrugSays,
		ProductType:    productType,
		IsGrugPick:     req.IsGrugPick,
		IsActive:       true,
		IsPanicProduct: req.IsPanicProduct,
		Tags:           req.Tags,
	}
}

// createProduct adds a product to the catalogue (admin)
func (api *API) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := dictionary.CategoryByID(req.Category); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not know this pile."})
		return
	}

	product := req.toModel()
	if err := api.products.CreateProduct(c.Request.Context(), product); err != nil {
		api.logger.ErrorWithErr("Product create failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop the thing. Try again?"})
		return
	}

	api.invalidateProductCache(c)
	c.JSON(http.StatusCreated, product)
}

// updateProduct updates a catalogue product (admin)
func (api *API) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toModel()
	product.ID = c.Param("id")

	if err := api.products.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grug not find this thing."})
		return
	}

	api.invalidateProductCache(c)
	c.JSON(http.StatusOK, product)
}

// deactivateProduct soft-deletes a product (admin)
func (api *API) deactivateProduct(c *gin.Context) {
	if err := api.products.DeactivateProduct(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grug not find this thing."})
		return
	}

	api.invalidateProductCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Thing gone from pile."})
}

func (api *API) invalidateProductCache(c *gin.Context) {
	if api.cache == nil {
		return
	}
	if err := api.cache.InvalidateProducts(c.Request.Context()); err != nil {
		api.logger.ErrorWithErr("Product cache invalidation failed", err)
	}
}

// uploadImage stores a product or scribble image and returns its public URL
// (admin)
func (api *API) uploadImage(c *gin.Context) {
	if api.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Grug picture cave closed. Come back soon."})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Man not give picture."})
		return
	}

	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug not open picture."})
		return
	}
	defer reader.Close()

	contentType := file.Header.Get("Content-Type")
	objectName, err := api.storage.UploadImage(c.Request.Context(), "products", reader, file.Size, contentType)
	if err != nil {
		metrics.RecordStorageOperation("upload", "error", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Grug not take picture: %v", err)})
		return
	}
	metrics.RecordStorageOperation("upload", "success", file.Size)

	url, err := api.storage.PublicURL(c.Request.Context(), objectName)
	if err != nil {
		api.logger.ErrorWithErr("Public URL generation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug lose picture path."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"object": objectName, "url": url})
}

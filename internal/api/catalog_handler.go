package api

import (
	"net/http"

	"wholesale-be/internal/brand"
	"wholesale-be/internal/cache"
	"wholesale-be/internal/category"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the facet vocabularies the storefront filter panel
// is built from. Responses are cached in Redis until the next import.
type CatalogHandler struct {
	categories category.Service
	brands     brand.Repository
	cache      *cache.Cache
}

func NewCatalogHandler(categories category.Service, brands brand.Repository, c *cache.Cache) *CatalogHandler {
	return &CatalogHandler{categories: categories, brands: brands, cache: c}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []*category.Category
	if h.cache.GetJSON(ctx, cache.KeyCategories, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cats, err := h.categories.GetCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	h.cache.SetJSON(ctx, cache.KeyCategories, cats, cache.FacetTTL)
	c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []*category.Subcategory
	if h.cache.GetJSON(ctx, cache.KeySubcategories, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	subs, err := h.categories.GetAllSubcategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subcategories"})
		return
	}

	h.cache.SetJSON(ctx, cache.KeySubcategories, subs, cache.FacetTTL)
	c.JSON(http.StatusOK, subs)
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []*brand.Brand
	if h.cache.GetJSON(ctx, cache.KeyBrands, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	brands, err := h.brands.GetBrands(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list brands"})
		return
	}

	h.cache.SetJSON(ctx, cache.KeyBrands, brands, cache.FacetTTL)
	c.JSON(http.StatusOK, brands)
}

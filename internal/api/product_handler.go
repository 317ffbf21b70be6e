package api

import (
	"errors"
	"net/http"
	"strconv"

	"wholesale-be/internal/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products. Malformed facet parameters are a client
// error, not an empty result.
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := product.ParseFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	if result.TotalCount != nil {
		c.Header("X-Total-Count", strconv.Itoa(*result.TotalCount))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    result.Items,
		"page":     filter.Page,
		"limit":    filter.Limit,
		"has_more": len(result.Items) == filter.Limit,
	})
}

func (h *ProductHandler) GetByItem(c *gin.Context) {
	p, err := h.service.GetByItem(c.Request.Context(), c.Param("item"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	p, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ShelfLabel handles GET /api/products/:item/label and returns a QR code PNG
// encoding the item code.
func (h *ProductHandler) ShelfLabel(c *gin.Context) {
	png, err := h.service.ShelfLabel(c.Request.Context(), c.Param("item"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate label"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

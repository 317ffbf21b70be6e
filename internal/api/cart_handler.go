package api

import (
	"errors"
	"net/http"
	"strconv"

	"wholesale-be/internal/cart"
	"wholesale-be/internal/middleware"
	"wholesale-be/internal/user"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// cartUserID resolves whose cart the request operates on. Sales reps may
// act on a customer's cart via ?user=<id>; everyone else gets their own.
func cartUserID(c *gin.Context) (int, bool) {
	userID := middleware.UserID(c)

	override := c.Query("user")
	if override == "" {
		return userID, true
	}

	role := middleware.Role(c)
	if role != string(user.RoleSalesRep) && role != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act on another user's cart"})
		return 0, false
	}

	target, err := strconv.Atoi(override)
	if err != nil || target < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user parameter"})
		return 0, false
	}

	return target, true
}

func (h *CartHandler) GetItems(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}

	items, err := h.carts.GetItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, items)
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Tier      int `json:"tier" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.carts.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Tier:      req.Tier,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) || errors.Is(err, cart.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, cart.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove cart item"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"wholesale-be/internal/middleware"
	"wholesale-be/internal/order"
	"wholesale-be/internal/user"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// staffRole reports whether the role may see and manage all orders.
func staffRole(role string) bool {
	switch user.Role(role) {
	case user.RoleSalesRep, user.RolePicker, user.RoleAdmin:
		return true
	}
	return false
}

type placeOrderRequest struct {
	Notes string `json:"notes"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), middleware.UserID(c), c.GetString(middleware.CtxUserEmail), req.Notes)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context(), middleware.UserID(c), staffRole(middleware.Role(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetDetail(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.orders.GetOrderDetail(c.Request.Context(), orderID, middleware.UserID(c), staffRole(middleware.Role(c)))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, order.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus is restricted to pickers and admins by the route setup.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}

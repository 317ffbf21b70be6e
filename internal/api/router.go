package api

import (
	"time"

	"wholesale-be/internal/brand"
	"wholesale-be/internal/cache"
	"wholesale-be/internal/cart"
	"wholesale-be/internal/category"
	"wholesale-be/internal/logger"
	"wholesale-be/internal/middleware"
	"wholesale-be/internal/order"
	"wholesale-be/internal/product"
	"wholesale-be/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps bundles the services the router wires handlers to.
type Deps struct {
	Products   product.Service
	Categories category.Service
	Brands     brand.Repository
	Carts      cart.Service
	Orders     order.Service
	Users      user.Service
	Cache      *cache.Cache
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.RateLimit())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Total-Count"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	products := NewProductHandler(deps.Products)
	catalog := NewCatalogHandler(deps.Categories, deps.Brands, deps.Cache)
	auth := NewAuthHandler(deps.Users)
	carts := NewCartHandler(deps.Carts)
	orders := NewOrderHandler(deps.Orders)
	admin := NewAdminHandler(deps.Users)

	api := r.Group("/api")
	{
		api.POST("/auth/register", auth.Register)
		api.POST("/auth/login", auth.Login)

		api.GET("/products", products.List)
		api.GET("/products/by-barcode/:barcode", products.GetByBarcode)
		api.GET("/products/:item", products.GetByItem)
		api.GET("/products/:item/label", products.ShelfLabel)

		api.GET("/categories", catalog.ListCategories)
		api.GET("/categories/sub", catalog.ListSubcategories)
		api.GET("/brands", catalog.ListBrands)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/cart", carts.GetItems)
		authed.POST("/cart", carts.AddItem)
		authed.PUT("/cart/:id", carts.UpdateQuantity)
		authed.DELETE("/cart/:id", carts.RemoveItem)
		authed.DELETE("/cart", carts.Clear)

		authed.POST("/orders", orders.PlaceOrder)
		authed.GET("/orders", orders.List)
		authed.GET("/orders/:id", orders.GetDetail)
	}

	staff := authed.Group("")
	staff.Use(middleware.RequireRoles(string(user.RolePicker), string(user.RoleAdmin)))
	{
		staff.PATCH("/orders/:id/status", orders.UpdateStatus)
	}

	adminOnly := authed.Group("/admin")
	adminOnly.Use(middleware.RequireRoles(string(user.RoleAdmin)))
	{
		adminOnly.GET("/users", admin.ListUsers)
		adminOnly.PATCH("/users/:id/role", admin.UpdateRole)
	}

	return r
}

package main

import (
	"wholesale-be/internal/api"
	"wholesale-be/internal/brand"
	"wholesale-be/internal/cache"
	"wholesale-be/internal/cart"
	"wholesale-be/internal/category"
	"wholesale-be/internal/config"
	"wholesale-be/internal/db"
	"wholesale-be/internal/logger"
	"wholesale-be/internal/notify"
	"wholesale-be/internal/order"
	"wholesale-be/internal/product"
	"wholesale-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	redisCache := cache.New(cfg)
	defer redisCache.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, cfg.ImageBaseURL)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	brandRepo := brand.NewRepository(database)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartSvc, notify.NewSMTPMailer(cfg))

	router := api.NewRouter(api.Deps{
		Products:   productSvc,
		Categories: categorySvc,
		Brands:     brandRepo,
		Carts:      cartSvc,
		Orders:     orderSvc,
		Users:      userSvc,
		Cache:      redisCache,
	})

	logger.L().Info("🚀 server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

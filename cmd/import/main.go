package main

import (
	"context"
	"flag"
	"os"
	"time"

	"wholesale-be/internal/cache"
	"wholesale-be/internal/config"
	"wholesale-be/internal/db"
	"wholesale-be/internal/importer"
	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

func main() {
	source := flag.String("source", "csv", "catalog source: csv or odoo")
	file := flag.String("file", "", "path to the CSV file (source=csv)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	redisCache := cache.New(cfg)
	defer redisCache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var records []importer.Record
	var err error

	switch *source {
	case "csv":
		if *file == "" {
			log.Fatal("source=csv requires -file")
		}
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("failed to open csv", zap.Error(err))
		}
		defer f.Close()

		records, err = importer.ReadCSV(f)
		if err != nil {
			log.Fatal("failed to parse csv", zap.Error(err))
		}
	case "odoo":
		records, err = importer.NewOdooClient(cfg).FetchAll(ctx)
		if err != nil {
			log.Fatal("odoo fetch failed", zap.Error(err))
		}
	default:
		log.Fatal("unknown source, use csv or odoo", zap.String("source", *source))
	}

	n, err := importer.New(database, redisCache).Run(ctx, records)
	if err != nil {
		log.Fatal("import failed", zap.Error(err))
	}

	log.Info("✅ catalog import finished", zap.Int("products", n))
}

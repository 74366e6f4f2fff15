package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentradar/server/config"
	"rentradar/server/internal/api"
	"rentradar/server/internal/market"
	"rentradar/server/internal/mockdata"
	"rentradar/server/internal/molit"
	"rentradar/server/internal/region"
	"rentradar/server/internal/scheduler"
	"rentradar/server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.Registry.ServiceKey == "" {
		logger.Warn("MOLIT_SERVICE_KEY is not set; live registry fetches will fail and responses will fall back to mock data")
	}

	// The cache is an optimization; run without it if it cannot be opened.
	var cache molit.MonthCache
	if cfg.Cache.Path != "" {
		os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0755)
		monthCache, err := storage.Open(cfg.Cache.Path, cfg.Cache.TTL, logger)
		if err != nil {
			logger.WithError(err).Error("Failed to open month cache, continuing without caching")
		} else {
			logger.Infof("Using month cache at: %s", cfg.Cache.Path)
			cache = monthCache
		}
	}

	client := molit.NewClient(cfg.Registry.BaseURL, cfg.Registry.ServiceKey, cfg.Registry.FetchTimeout, cache, logger)
	service := market.NewService(client, mockdata.NewProvider(), logger)
	locator := region.NewLocator(config.SupportedRegions)
	handler := api.NewHandler(service, locator, logger)

	if cfg.Scheduler.Enabled && cache != nil {
		prewarm := scheduler.NewScheduler(client, config.SupportedRegions, cfg.Scheduler.Interval, logger)
		prewarm.Start()
		defer prewarm.Stop()
	}

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imadama/Bol-scrapper/api/handler"
	"github.com/imadama/Bol-scrapper/api/middleware"
	"github.com/imadama/Bol-scrapper/config"
	"github.com/imadama/Bol-scrapper/extract"
	"github.com/imadama/Bol-scrapper/scraper"
	"github.com/imadama/Bol-scrapper/sheet"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(
	sc *scraper.Scraper,
	ex *extract.Extractor,
	ps *PendingStore,
	store *sheet.Store,
	cfg *config.Config,
	startTime time.Time,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(sc, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Scrape a product page into a pending record.
	protected.POST("/scrape", handler.Scrape(sc, ex, ps))

	// Edit/confirm flow on the pending record.
	protected.GET("/records/:id", handler.GetRecord(ps))
	protected.PUT("/records/:id", handler.UpdateRecord(ps))
	protected.POST("/records/:id/confirm", handler.ConfirmRecord(ps, store))

	// Saved rows + workbook download.
	protected.GET("/rows", handler.Rows(store))
	protected.GET("/export", handler.Export(store))

	return r
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imadama/Bol-scrapper/extract"
	"github.com/imadama/Bol-scrapper/models"
	"github.com/imadama/Bol-scrapper/scraper"
)

// Stasher is the slice of the pending store the scrape handler needs.
type Stasher interface {
	Put(l models.Listing) string
}

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Scraper.Render → rendered snapshot     (records navigation_ms)
//  3. extract.Extract → ProductRecord        (records extraction_ms)
//  4. Stash the listing for the edit/confirm flow.
//  5. Return record id + listing; a low-confidence record is still
//     returned — the operator decides whether to keep it.
func Scrape(sc *scraper.Scraper, ex *extract.Extractor, ps Stasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		navStart := time.Now()
		rendered, err := sc.Render(c.Request.Context(), &req)
		navigationMs := time.Since(navStart).Milliseconds()

		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: navigationMs,
			})
			return
		}

		extractStart := time.Now()
		doc, err := extract.NewDocument(rendered.HTML, rendered.FinalURL, req.URL)
		var rec models.ProductRecord
		if err == nil {
			rec, err = ex.Extract(doc, extract.Options{
				DescriptionMarkdown: req.DescriptionFormat == "markdown",
			})
		}
		extractionMs := time.Since(extractStart).Milliseconds()

		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: navigationMs,
				ExtractionMs: extractionMs,
			})
			return
		}

		if rec.LowConfidence {
			slog.Warn("low-confidence extraction: no title and no images",
				"url", req.URL)
		}

		listing := models.NewListing(rec)
		id := ps.Put(listing)

		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success:     true,
			RecordID:    id,
			Listing:     &listing,
			StatusCode:  rendered.StatusCode,
			FinalURL:    rendered.FinalURL,
			FetchMethod: rendered.FetchMethod,
			Timing: models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: navigationMs,
				ExtractionMs: extractionMs,
			},
		})
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(scrapeErr), models.ScrapeResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeEmptyDocument:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}

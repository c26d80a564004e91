package models

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	// Success indicates whether the scrape completed without errors.
	Success bool `json:"success"`

	// RecordID identifies the pending listing for the edit/confirm flow.
	RecordID string `json:"record_id,omitempty"`

	// Listing is the extracted record plus operator defaults.
	Listing *Listing `json:"listing,omitempty"`

	// StatusCode is the HTTP status code from the scraped page.
	StatusCode int `json:"status_code,omitempty"`

	// FinalURL is the URL after following all redirects.
	FinalURL string `json:"final_url,omitempty"`

	// FetchMethod records how the page was fetched: "browser" or "http".
	FetchMethod string `json:"fetch_method,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// RecordResponse is the response for the record edit/confirm endpoints.
type RecordResponse struct {
	Success  bool         `json:"success"`
	RecordID string       `json:"record_id,omitempty"`
	Listing  *Listing     `json:"listing,omitempty"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// RowsResponse is the response for GET /api/v1/rows.
type RowsResponse struct {
	Success bool         `json:"success"`
	Columns []string     `json:"columns,omitempty"`
	Rows    [][]string   `json:"rows,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// NavigationMs is the time spent navigating and rendering the page.
	NavigationMs int64 `json:"navigation_ms"`

	// ExtractionMs is the time spent running the selector chains.
	ExtractionMs int64 `json:"extraction_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}

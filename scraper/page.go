package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/imadama/Bol-scrapper/models"
)

// Render fetches and renders a product page and returns the snapshot.
//
// FetchMode "http" tries the plain-HTTP path first and escalates to the
// browser only when the response looks like an unrendered JS shell.
// FetchMode "browser" (the default) goes straight to headless Chrome,
// since the interesting parts of a bol.com product page are JS-rendered.
func (s *Scraper) Render(ctx context.Context, req *models.ScrapeRequest) (*RenderResult, error) {
	if err := ValidateProductURL(req.URL); err != nil {
		return nil, err
	}

	if req.FetchMode == "http" {
		result, err := s.renderHTTP(ctx, req)
		if err == nil {
			return result, nil
		}
		slog.Warn("http fetch unusable, escalating to browser",
			"url", req.URL, "error", err)
	}

	return s.renderBrowser(ctx, req)
}

// renderHTTP fetches the page over plain HTTP with a Chrome TLS fingerprint.
func (s *Scraper) renderHTTP(ctx context.Context, req *models.ScrapeRequest) (*RenderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.effectiveTimeout(req.Timeout))
	defer cancel()

	body, err := s.httpFetcher.fetch(ctx, req.URL, req.ProxyURL)
	if err != nil {
		return nil, categorizeError(err, "http fetch failed")
	}
	if needsBrowser(body) {
		return nil, models.NewScrapeError(
			models.ErrCodeNavigation,
			"page appears to require JS rendering",
			nil,
		)
	}

	return &RenderResult{
		HTML:        string(body),
		Title:       extractTitle(body),
		StatusCode:  200,
		FinalURL:    req.URL,
		FetchMethod: "http",
	}, nil
}

// renderBrowser runs the full rod path.
//
// Lifecycle:
//
//  1. Timeout guard     – hard deadline on the entire operation
//  2. Acquire page      – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup    – about:blank + return to pool (leak prevention)
//  4. Stealth injection – must happen before navigation to take effect
//  5. Hijack mount      – block images/CSS/fonts/media, also pre-navigation
//  6. Context binding   – propagate timeout to all rod operations
//  7. Navigate + wait   – DOM-stable wait; the carousel populates late
//  8. Snapshot          – page.HTML() + document.title + final URL
func (s *Scraper) renderBrowser(ctx context.Context, req *models.ScrapeRequest) (*RenderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.effectiveTimeout(req.Timeout))
	defer cancel()

	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, acquireErr := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// Cleanup uses the ORIGINAL page reference (without request context),
	// so the pool return succeeds even after the request deadline expired.
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		s.pagePool.Put(page)
	}()

	if req.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr)
		}
	}

	// A Google referer noticeably lowers the consent-wall hit rate.
	if u, parseErr := url.Parse(req.URL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	// Blocking image/CSS/font requests speeds rendering up considerably;
	// the <img> src attributes the extractor reads stay in the markup.
	router := setupHijack(page, s.scraperCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	if navErr := p.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to product page failed")
	}

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr)
	}

	// Status code via the performance API; navigation-history CDP events
	// conflict with the hijack router on recent Chromium.
	statusCode := 0
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		statusCode = res.Value.Int()
	}

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	return &RenderResult{
		HTML:        rawHTML,
		Title:       title,
		StatusCode:  statusCode,
		FinalURL:    finalURL,
		FetchMethod: "browser",
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw errors into typed ScrapeErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}

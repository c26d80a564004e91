package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/imadama/Bol-scrapper/models"
)

// collectImages gathers product gallery image URLs in document order.
//
// The primary source is the image carousel; only when it yields nothing does
// the fallback scan every <img> in the document for URLs matching the media
// host pattern. Each candidate is resolved to an absolute URL against the
// page base, deduplicated by exact string equality with first-seen order
// preserved, and the list is cut to models.MaxImages — excess candidates are
// dropped in document order, not chosen by any heuristic.
func collectImages(d *Document, gallerySel string, hostPatterns []string) []string {
	var candidates []string

	gather := func(_ int, s *goquery.Selection) {
		src := imageSrc(s)
		if src == "" {
			return
		}
		abs := d.Resolve(src)
		if abs == "" || !matchesHost(abs, hostPatterns) {
			return
		}
		candidates = append(candidates, abs)
	}

	d.Find(gallerySel).Each(gather)
	if len(candidates) == 0 {
		d.Find("img").Each(gather)
	}

	seen := make(map[string]struct{}, len(candidates))
	images := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		images = append(images, u)
		if len(images) == models.MaxImages {
			break
		}
	}
	return images
}

// imageSrc reads the image URL, preferring src and falling back to the
// lazy-loading data-src attribute.
func imageSrc(s *goquery.Selection) string {
	if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, ok := s.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	return ""
}

// matchesHost reports whether the URL contains every host pattern substring.
func matchesHost(u string, patterns []string) bool {
	for _, p := range patterns {
		if !strings.Contains(u, p) {
			return false
		}
	}
	return true
}

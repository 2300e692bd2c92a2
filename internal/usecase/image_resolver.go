package usecase

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dupefinder/backend/internal/domain"
)

// Scoring constants for the fallback <img> scan
const (
	maxScannedImages    = 20  // only the first 20 <img> tags are considered
	productKeywordBonus = 500 // URL hints like "product" or "hero" outweigh raw dimensions
)

// skipImageSubstrings disqualifies chrome/branding assets in the fallback scan
var skipImageSubstrings = []string{
	"logo", "icon", "sprite", "avatar", "placeholder", "blank",
}

// productURLKeywords hint that an image URL points at the main product shot
var productURLKeywords = []string{
	"product", "main", "hero", "large", "full", "detail",
}

// imageStrategy is one independently fallible way of locating a product
// image on a parsed page. Returns "" when the strategy finds nothing.
type imageStrategy struct {
	name string
	fn   func(doc *goquery.Document, base *url.URL) string
}

// ImageResolverConfig holds configuration for the image resolver
type ImageResolverConfig struct {
	Timeout            time.Duration
	EnableDebugLogging bool
}

// ImageResolverService finds the best representative product image for a
// page by trying an ordered cascade of extraction strategies. Curated
// metadata (JSON-LD, Open Graph, Twitter cards) wins over heuristics;
// the scored <img> scan is the last resort for small uncontrolled sites.
type ImageResolverService struct {
	fetcher    domain.PageFetcher
	strategies []imageStrategy
	timeout    time.Duration
	debug      bool
}

// NewImageResolverService creates a new image resolver
func NewImageResolverService(fetcher domain.PageFetcher, config ImageResolverConfig) *ImageResolverService {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}

	return &ImageResolverService{
		fetcher: fetcher,
		strategies: []imageStrategy{
			{"json-ld", extractJSONLDImage},
			{"og:image", metaPropertyStrategy("og:image")},
			{"twitter:image", extractTwitterImage},
			{"product:image", metaPropertyStrategy("product:image")},
			{"itemprop", extractItempropImage},
			{"link-image-src", extractLinkImageSrc},
			{"og:image:secure_url", metaPropertyStrategy("og:image:secure_url")},
			{"css-heuristics", extractHeuristicImage},
			{"img-scan", extractBestScoredImage},
		},
		timeout: timeout,
		debug:   config.EnableDebugLogging,
	}
}

// ResolveProductImage fetches the page and runs the strategy cascade.
// Returns "" on any fetch failure, timeout, or when no strategy finds a
// usable image. Never returns an error: a missing image is a normal
// outcome for this pipeline.
func (s *ImageResolverService) ResolveProductImage(ctx context.Context, pageURL string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if s.debug {
			log.Printf("[RESOLVE] fetch failed for %s: %v", pageURL, err)
		}
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	for _, strat := range s.strategies {
		found := s.tryStrategy(strat, doc, base)
		if found == "" {
			continue
		}
		if s.debug {
			log.Printf("[RESOLVE] %s found image via %s: %s", pageURL, strat.name, found)
		}
		return found
	}

	if s.debug {
		log.Printf("[RESOLVE] no image found for %s", pageURL)
	}
	return ""
}

// tryStrategy runs one strategy, isolating any panic so a single broken
// page structure cannot abort the rest of the cascade.
func (s *ImageResolverService) tryStrategy(strat imageStrategy, doc *goquery.Document, base *url.URL) (result string) {
	defer func() {
		if r := recover(); r != nil {
			if s.debug {
				log.Printf("[RESOLVE] strategy %s panicked: %v", strat.name, r)
			}
			result = ""
		}
	}()

	raw := strat.fn(doc, base)
	if raw == "" {
		return ""
	}

	resolved := resolveImageURL(raw, base)
	if resolved == "" || strings.HasSuffix(strings.ToLower(resolved), ".svg") {
		return ""
	}
	return resolved
}

// extractJSONLDImage scans embedded JSON-LD blocks for an image or
// images field, accepting a single URL string or the first usable URL
// in a list.
func extractJSONLDImage(doc *goquery.Document, _ *url.URL) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true // malformed block, keep scanning
		}
		if img := findImageField(data, 0); img != "" {
			found = img
			return false
		}
		return true
	})
	return found
}

// findImageField walks a decoded JSON-LD value looking for an
// image/images key. Depth is capped so pathological nesting cannot
// recurse forever.
func findImageField(data interface{}, depth int) string {
	if depth > 6 {
		return ""
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, key := range []string{"image", "images"} {
			if raw, ok := v[key]; ok {
				if img := imageFieldValue(raw); img != "" {
					return img
				}
			}
		}
		for _, nested := range v {
			if img := findImageField(nested, depth+1); img != "" {
				return img
			}
		}
	case []interface{}:
		for _, item := range v {
			if img := findImageField(item, depth+1); img != "" {
				return img
			}
		}
	}
	return ""
}

// imageFieldValue extracts a URL from an image field value: either a
// plain string or the first usable string in a list.
func imageFieldValue(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// metaPropertyStrategy builds a strategy reading a <meta> tag's content
// by property or name attribute.
func metaPropertyStrategy(property string) func(*goquery.Document, *url.URL) string {
	return func(doc *goquery.Document, _ *url.URL) string {
		sel := doc.Find(`meta[property="` + property + `"], meta[name="` + property + `"]`).First()
		content, _ := sel.Attr("content")
		return strings.TrimSpace(content)
	}
}

// extractTwitterImage reads a Twitter-card image tag, covering both the
// modern and legacy attribute names.
func extractTwitterImage(doc *goquery.Document, _ *url.URL) string {
	for _, name := range []string{"twitter:image", "twitter:image:src"} {
		sel := doc.Find(`meta[name="` + name + `"], meta[property="` + name + `"]`).First()
		if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

// extractItempropImage reads the microdata image tag's src, falling back
// to its lazy-load attribute.
func extractItempropImage(doc *goquery.Document, _ *url.URL) string {
	sel := doc.Find(`[itemprop="image"]`).First()
	if src, ok := sel.Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, ok := sel.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if content, ok := sel.Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

// extractLinkImageSrc reads the legacy <link rel="image_src"> tag
func extractLinkImageSrc(doc *goquery.Document, _ *url.URL) string {
	href, _ := doc.Find(`link[rel="image_src"]`).First().Attr("href")
	return strings.TrimSpace(href)
}

// heuristicSelectors target the class/id naming conventions small shops
// use for their main product shot.
var heuristicSelectors = []string{
	"img.product-image", "img.product__image", "img#product-image",
	".product-image img", ".product-img img",
	"img.main-image", "img#main-image", ".main-image img",
	".gallery-main img", "img.gallery-main",
	".product-gallery img", "#main-product-image",
}

// extractHeuristicImage tries the fixed set of product-image CSS selectors
func extractHeuristicImage(doc *goquery.Document, _ *url.URL) string {
	for _, selector := range heuristicSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if src := imgSource(sel); src != "" {
			return src
		}
	}
	return ""
}

// extractBestScoredImage is the last-resort scan over the page's first
// <img> tags. Chrome assets are skipped; a responsive srcset shortcut
// wins immediately with its highest-resolution entry; otherwise
// candidates are scored by declared dimensions plus a product-keyword
// bonus on the URL.
func extractBestScoredImage(doc *goquery.Document, _ *url.URL) string {
	var best domain.ImageCandidate

	doc.Find("img").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxScannedImages {
			return false
		}

		src := imgSource(sel)
		if src == "" || shouldSkipImage(src) {
			return true
		}

		if srcset, ok := sel.Attr("srcset"); ok {
			if hiRes := highestResolutionFromSrcset(srcset); hiRes != "" && !shouldSkipImage(hiRes) {
				best = domain.ImageCandidate{URL: hiRes, Score: -1}
				return false
			}
		}

		score := attrInt(sel, "width") + attrInt(sel, "height")
		if containsAny(strings.ToLower(src), productURLKeywords) {
			score += productKeywordBonus
		}
		if best.URL == "" || score > best.Score {
			best = domain.ImageCandidate{URL: src, Score: score}
		}
		return true
	})

	return best.URL
}

// imgSource reads an <img> tag's source, preferring src over the common
// lazy-load attributes.
func imgSource(sel *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if val, ok := sel.Attr(attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// shouldSkipImage filters out logos, icons, and other non-product assets
func shouldSkipImage(src string) bool {
	lower := strings.ToLower(src)
	if strings.HasSuffix(lower, ".svg") {
		return true
	}
	return containsAny(lower, skipImageSubstrings)
}

// highestResolutionFromSrcset picks the entry with the largest width or
// density descriptor from a responsive srcset value.
func highestResolutionFromSrcset(srcset string) string {
	bestURL := ""
	bestRes := -1.0

	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) == 0 {
			continue
		}
		res := 0.0
		if len(fields) > 1 {
			desc := strings.ToLower(fields[1])
			numeric := strings.TrimRight(desc, "wx")
			if v, err := strconv.ParseFloat(numeric, 64); err == nil {
				res = v
			}
		}
		if res > bestRes {
			bestRes = res
			bestURL = fields[0]
		}
	}

	// A single-entry srcset with no descriptor still beats nothing
	return bestURL
}

// attrInt parses a numeric tag attribute, returning 0 for anything else.
// Values like "100%" or "auto" count as 0.
func attrInt(sel *goquery.Selection, name string) int {
	val, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// containsAny reports whether text contains any of the substrings
func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

package usecase

import (
	"net/url"
	"strings"
)

// ExtractSite returns the lower-cased host of a page URL, or "" if the
// URL cannot be parsed. A candidate with an unparseable URL keeps going
// with Site unset; it is never rejected solely for this.
func ExtractSite(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// IsAbsoluteImageURL reports whether a string is a well-formed http(s)
// URL usable as an image source without further resolution.
func IsAbsoluteImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// resolveImageURL turns a scraped image reference into an absolute URL
// against the page it came from. Protocol-relative references are
// upgraded to https. Returns "" for values that cannot be made absolute.
func resolveImageURL(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if base == nil || base.Host == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") {
		scheme := base.Scheme
		if scheme == "" {
			scheme = "https"
		}
		return scheme + "://" + base.Host + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

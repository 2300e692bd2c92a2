package usecase

import (
	"regexp"
	"strconv"
)

// Package-level compiled regex pattern for performance.
// Matches a dollar sign followed by digits and an optional 1-2 digit
// decimal part, e.g. "$39.99", "$120".
var priceRegex = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)`)

// ExtractPrice parses the first dollar amount out of free text.
// Returns nil when no price is present. First match only; a text
// mentioning several prices yields the earliest one.
func ExtractPrice(text string) *float64 {
	match := priceRegex.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

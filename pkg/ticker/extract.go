package ticker

import (
	"regexp"
	"strings"
)

// Ticker pattern: optional leading $, then 1-5 uppercase letters, word-boundary
// anchored on both sides. Lowercase runs never match, and a run of 6+ capitals
// is rejected whole rather than truncated.
var tickerPattern = regexp.MustCompile(`\b\$?([A-Z]{1,5})\b`)

// Extract returns the normalized symbols found in text, in left-to-right order
// of appearance, non-overlapping. Any string is valid input; unmatched text
// simply yields nothing.
func Extract(text string) []string {
	if text == "" {
		return nil
	}

	matches := tickerPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, Normalize(m[1]))
	}
	return symbols
}

// Normalize strips a leading $ from a candidate token. The pattern only ever
// captures uppercase ASCII letters, so the result is already uppercase.
func Normalize(token string) string {
	return strings.TrimPrefix(token, "$")
}

// Package format holds the display helpers used on statistics pages.
package format

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatNumber inserts thousands separators: 1000 -> "1,000".
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercentage renders value/total with one decimal place, rounding
// halves away from zero. A zero total yields "0%".
func FormatPercentage(value, total float64) string {
	if total == 0 {
		return "0%"
	}
	p := math.Round(value/total*1000) / 10
	return fmt.Sprintf("%.1f%%", p)
}

// specialSchemes need an authority; any other scheme may be followed by
// anything, including nothing.
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// IsValidURL reports whether candidate is an absolute URL, as in
// "https://example.com" or "mailto:someone@example.com". Leading and
// trailing spaces and control characters are ignored.
func IsValidURL(candidate string) bool {
	candidate = strings.TrimFunc(candidate, func(r rune) bool { return r <= ' ' })
	if candidate == "" {
		return false
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" {
		return false
	}
	if specialSchemes[u.Scheme] {
		return u.Host != "" || strings.TrimLeft(u.Opaque, "/") != ""
	}
	return true
}

package filter

import (
	"fmt"
	"regexp"
	"strings"

	"smartlink/pkg/analytics"
)

type FilterMode int

const (
	FilterModeNone FilterMode = iota
	FilterModeContains
	FilterModeRegex
	FilterModeFuzzy
)

// ParseFilterMode maps a flag value to a FilterMode. An empty value means
// contains.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(s) {
	case "", "contains":
		return FilterModeContains, nil
	case "regex":
		return FilterModeRegex, nil
	case "fuzzy":
		return FilterModeFuzzy, nil
	default:
		return FilterModeNone, fmt.Errorf("unknown filter mode %q (expected contains, regex or fuzzy)", s)
	}
}

// StringFilter matches names against a pattern.
type StringFilter struct {
	Pattern string
	Mode    FilterMode
	regex   *regexp.Regexp
}

func NewStringFilter(pattern string, mode FilterMode) (*StringFilter, error) {
	f := &StringFilter{
		Pattern: pattern,
		Mode:    mode,
	}
	if pattern == "" {
		f.Mode = FilterModeNone
		return f, nil
	}

	if mode == FilterModeRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
		}
		f.regex = re
	}
	return f, nil
}

func (f *StringFilter) Match(s string) bool {
	switch f.Mode {
	case FilterModeContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(f.Pattern))
	case FilterModeRegex:
		return f.regex != nil && f.regex.MatchString(s)
	case FilterModeFuzzy:
		return FuzzyMatch(f.Pattern, s)
	default:
		return true
	}
}

// FuzzyMatch reports whether every character of pattern appears in text in
// order, ignoring case.
func FuzzyMatch(pattern, text string) bool {
	if pattern == "" {
		return true
	}
	p := []rune(strings.ToLower(pattern))
	i := 0
	for _, r := range strings.ToLower(text) {
		if r == p[i] {
			i++
			if i == len(p) {
				return true
			}
		}
	}
	return false
}

// Links keeps the links whose name or URL matches f.
func (f *StringFilter) Links(links []analytics.LinkStats) []analytics.LinkStats {
	if f == nil || f.Mode == FilterModeNone {
		return links
	}
	out := make([]analytics.LinkStats, 0, len(links))
	for _, l := range links {
		if f.Match(l.Name) || f.Match(l.URL) {
			out = append(out, l)
		}
	}
	return out
}

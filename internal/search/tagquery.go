package search

import (
	"regexp"
	"strings"
)

var tagQueryRe = regexp.MustCompile(`(?i)^@tag:(\w+)$`)

// DetectTag recognizes the structured query form @tag:name and returns name.
// The whole trimmed input must be the query; surrounding text disables detection.
func DetectTag(raw string) (tag string, ok bool) {
	m := tagQueryRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TagPattern builds an anchored, case-insensitive equality match on the tag field.
func TagPattern(tag string) *Pattern {
	expr := "^" + regexp.QuoteMeta(tag) + "$"
	return &Pattern{
		re:     regexp.MustCompile("(?i)" + expr),
		source: expr,
		scope:  ScopeTag,
	}
}

package util

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a url-safe slug: lowercase, runs of anything
// but [a-z0-9] collapsed into single hyphens, no leading/trailing hyphen.
func Slugify(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

package book

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify makes a filesystem-friendly key from a title: lowercased, runs of
// non-alphanumeric characters collapsed to single hyphens, leading/trailing
// hyphens stripped. An input with no alphanumeric content maps to "section".
func Slugify(text string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(text), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "section"
	}
	return s
}

package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugSpaceRun  = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	slugNonWord   = regexp.MustCompile(`[^\w-]+`)
	slugHyphenRun = regexp.MustCompile(`-{2,}`)
)

// fallbackSlug is used when a title has no slug-safe characters at all.
const fallbackSlug = "movie"

// Slugify derives the URL key for a title: lowercase, trimmed, whitespace runs
// become a single hyphen, anything outside [A-Za-z0-9_-] is dropped and
// repeated hyphens collapse. Slugify(Slugify(x)) == Slugify(x).
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugSpaceRun.ReplaceAllString(s, "-")
	s = slugNonWord.ReplaceAllString(s, "")
	return slugHyphenRun.ReplaceAllString(s, "-")
}

// UniqueSlug returns base, or base with the smallest numeric suffix (-2, -3, ...)
// that taken reports as free. An empty base becomes "movie".
func UniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = fallbackSlug
	}
	if !taken(base) {
		return base
	}
	stem := strings.TrimRight(base, "-")
	if stem == "" {
		stem = fallbackSlug
	}
	for n := 2; ; n++ {
		candidate := stem + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

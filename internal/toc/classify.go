package toc

import (
	"sort"
	"strings"
)

// Classify returns the tags whose keyword appears in the title as a
// case-insensitive substring. Keywords are non-exclusive; several may map
// to the same tag and several tags may fire for one title. The result is
// sorted and duplicate-free, nil when nothing matches.
func Classify(title string, tagMap map[string]string) []string {
	if title == "" || len(tagMap) == 0 {
		return nil
	}
	lower := strings.ToLower(title)

	seen := make(map[string]struct{})
	for keyword, tag := range tagMap {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			seen[tag] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

package utils

import "strings"

// NormalizeTags lowercases, trims and deduplicates a tag list, keeping
// first-seen order. Tags behave as a set on the post document.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

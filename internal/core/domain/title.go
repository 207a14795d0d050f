package domain

import "strings"

// NormalizeTitle returns the canonical form of a page title.
// Titles are case-folded with simple Unicode lower-casing and nothing else;
// whitespace, underscores and fragments are left as they are.
// NormalizeTitle is idempotent.
func NormalizeTitle(title string) string {
	return strings.ToLower(title)
}

// NormalizeTitles normalizes every title in titles into a new slice.
func NormalizeTitles(titles []string) []string {
	if len(titles) == 0 {
		return nil
	}
	res := make([]string, len(titles))
	for i, t := range titles {
		res[i] = NormalizeTitle(t)
	}
	return res
}

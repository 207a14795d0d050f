package wikixml

import "regexp"

// linkPattern matches the target of a [[target]] or [[target|label]] link.
var linkPattern = regexp.MustCompile(`\[\[(.+?)[|\]]`)

// ExtractLinks returns the link targets found in a page body, in order of
// appearance and with duplicates kept.
func ExtractLinks(body string) []string {
	matches := linkPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]string, len(matches))
	for i, m := range matches {
		links[i] = m[1]
	}
	return links
}

package mailbox

import (
	"strings"

	"kindleshelf/internal/book"
)

const (
	productMarker = "My alt ("
	sellerPrefix  = "販売者"
	// titleOffset is the distance from the product image line to the title:
	// the marker, a blank line, then the title.
	titleOffset = 2
)

// ExtractTitles returns the book titles listed in an order body, in order of
// appearance, without caseless repeats.
func ExtractTitles(body string) []string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var titles []string
	seen := make(map[string]struct{})
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), productMarker) {
			continue
		}
		if i+titleOffset >= len(lines) {
			continue
		}
		title := strings.TrimSpace(lines[i+titleOffset])
		if title == "" || strings.HasPrefix(title, sellerPrefix) {
			continue
		}
		key := book.DedupeKey(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

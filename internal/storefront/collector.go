package storefront

import "kindleshelf/internal/book"

// Collector accumulates records across pages in the order they were added.
type Collector struct {
	records []book.Record
	pages   int
}

// Add appends the page's records and returns how many it contributed.
func (c *Collector) Add(page Page) int {
	c.records = append(c.records, page.Records...)
	c.pages++
	return len(page.Records)
}

// Records returns a copy of everything collected so far.
func (c *Collector) Records() []book.Record {
	out := make([]book.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	return len(c.records)
}

// Pages returns how many pages were added.
func (c *Collector) Pages() int {
	return c.pages
}

package storefront

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"kindleshelf/internal/book"
)

// DefaultRowClass is the stable prefix of the library table's row class.
const DefaultRowClass = "ListItem-module_row"

const pageIDPrefix = "page-"

// Page is the content of one saved library page.
type Page struct {
	Source      string
	Records     []book.Record
	CurrentPage int
	NextPage    int
}

// HasNext reports whether the pager links to a following page.
func (p Page) HasNext() bool {
	return p.NextPage > 0
}

// ParsePage parses a saved library page using DefaultRowClass. Every record
// gets the given format, or book.DefaultFormat when format is empty.
func ParsePage(r io.Reader, format string) (Page, error) {
	return parsePage(r, DefaultRowClass, format)
}

func parsePage(r io.Reader, rowClass, format string) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse HTML: %w", err)
	}
	if strings.TrimSpace(rowClass) == "" {
		rowClass = DefaultRowClass
	}

	page := Page{Records: []book.Record{}}
	rows := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "tr") && hasClassPrefix(n, rowClass)
	})
	for _, row := range rows {
		title := strings.TrimSpace(textContent(findFirst(row, isTitleNode)))
		if title == "" {
			continue
		}
		author := strings.TrimSpace(textContent(findFirst(row, isAuthorNode)))
		page.Records = append(page.Records, book.New(title, author, format))
	}

	page.CurrentPage, page.NextPage = readPager(doc)
	return page, nil
}

func isTitleNode(n *html.Node) bool {
	return isElement(n, "div") && getAttr(n, "role") == "heading" && getAttr(n, "aria-level") == "4"
}

func isAuthorNode(n *html.Node) bool {
	return isElement(n, "div") && strings.HasPrefix(getAttr(n, "id"), "content-author-")
}

// readPager returns the active page number and, when the pager contains an
// element for it, the number of the page after it.
func readPager(doc *html.Node) (current, next int) {
	active := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "") && hasClass(n, "page-item") && hasClass(n, "active")
	})
	if active == nil {
		return 0, 0
	}
	current = pageNumber(getAttr(active, "id"))
	if current <= 0 {
		return 0, 0
	}
	nextID := pageIDPrefix + strconv.Itoa(current+1)
	if findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "") && hasAttr(n, "id") && getAttr(n, "id") == nextID
	}) != nil {
		next = current + 1
	}
	return current, next
}

func pageNumber(id string) int {
	raw, ok := strings.CutPrefix(strings.TrimSpace(id), pageIDPrefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"kindleshelf/internal/book"
	"kindleshelf/internal/textutil"
)

// ErrNothingToExport is returned when there are no rows to write.
var ErrNothingToExport = errors.New("nothing to export")

// QuoteStyle selects how embedded double quotes are escaped.
type QuoteStyle string

const (
	// QuoteDouble doubles embedded quotes: "say ""hi""".
	QuoteDouble QuoteStyle = "double"
	// QuoteBackslash backslash-escapes embedded quotes: "say \"hi\"".
	QuoteBackslash QuoteStyle = "backslash"
)

// ParseQuoteStyle maps a configuration value onto a QuoteStyle.
func ParseQuoteStyle(value string) (QuoteStyle, error) {
	switch QuoteStyle(strings.ToLower(strings.TrimSpace(value))) {
	case "", QuoteDouble:
		return QuoteDouble, nil
	case QuoteBackslash:
		return QuoteBackslash, nil
	default:
		return "", fmt.Errorf("unknown quote style %q", value)
	}
}

// Options controls CSV output.
type Options struct {
	Style QuoteStyle
	// SanitizeCommas replaces ASCII commas inside cells with full-width ones.
	SanitizeCommas bool
}

// WriteCSV writes the header and rows. An empty row set returns
// ErrNothingToExport without writing anything.
func WriteCSV(w io.Writer, rows []Row, opts Options) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}
	style := opts.Style
	if style == "" {
		style = QuoteDouble
	}
	if style != QuoteDouble && style != QuoteBackslash {
		return fmt.Errorf("unknown quote style %q", style)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Header, ","))
	bw.WriteByte('\n')
	for _, row := range rows {
		for i, cell := range row.cells() {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quoteCell(cell, style, opts.SanitizeCommas))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Encode renders rows as a CSV string.
func Encode(rows []Row, opts Options) (string, error) {
	var b strings.Builder
	if err := WriteCSV(&b, rows, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func quoteCell(value string, style QuoteStyle, sanitize bool) string {
	if sanitize {
		value = textutil.SanitizeCommas(value)
	}
	escape := `""`
	if style == QuoteBackslash {
		escape = `\"`
	}
	return `"` + strings.ReplaceAll(value, `"`, escape) + `"`
}

// ReadCSV parses a file written with style back into records. The header
// row is optional; when present it maps columns by name, so Title,Author and
// Title,Format files are accepted too. Rows without a title are skipped.
func ReadCSV(r io.Reader, style QuoteStyle) ([]book.Record, error) {
	if style == "" {
		style = QuoteDouble
	}
	if style != QuoteDouble && style != QuoteBackslash {
		return nil, fmt.Errorf("unknown quote style %q", style)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	table, err := parseCSV(strings.TrimPrefix(string(data), "\ufeff"), style)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, nil
	}

	columns := map[string]int{"title": 0, "author": 1, "format": 2}
	if isHeader(table[0]) {
		columns = map[string]int{"title": -1, "author": -1, "format": -1}
		for i, name := range table[0] {
			key := strings.ToLower(strings.TrimSpace(name))
			if _, ok := columns[key]; ok {
				columns[key] = i
			}
		}
		table = table[1:]
	}

	var records []book.Record
	for i, fields := range table {
		rec := book.New(cell(fields, columns["title"]), cell(fields, columns["author"]), cell(fields, columns["format"]))
		if rec.Title == "" {
			continue
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "title")
}

func cell(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// parseCSV splits data into records. Inside quoted fields "" is a literal
// quote. In backslash style \" is one too, except directly before the end of
// a cell, where the backslash is kept and the quote closes the cell. In double
// style a backslash is an ordinary character.
func parseCSV(data string, style QuoteStyle) ([][]string, error) {
	var (
		table  [][]string
		fields []string
		field  strings.Builder
		quoted bool
		inCell bool
		line   = 1
	)
	runes := []rune(strings.ReplaceAll(data, "\r\n", "\n"))
	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
		inCell = false
	}
	endRecord := func() {
		endField()
		if !(len(fields) == 1 && fields[0] == "") {
			table = append(table, fields)
		}
		fields = nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quoted {
			switch {
			case style == QuoteBackslash && r == '\\' && i+1 < len(runes) && runes[i+1] == '"' && !closesCell(runes, i+2):
				field.WriteRune('"')
				i++
			case r == '"' && i+1 < len(runes) && runes[i+1] == '"':
				field.WriteRune('"')
				i++
			case r == '"':
				quoted = false
			default:
				if r == '\n' {
					line++
				}
				field.WriteRune(r)
			}
			continue
		}
		switch r {
		case '"':
			if inCell {
				return nil, fmt.Errorf("csv line %d: unexpected quote in unquoted field", line)
			}
			quoted = true
			inCell = true
		case ',':
			endField()
		case '\n':
			endRecord()
			line++
		default:
			inCell = true
			field.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("csv line %d: unterminated quoted field", line)
	}
	if inCell || len(fields) > 0 {
		endRecord()
	}
	return table, nil
}

// closesCell reports whether position i ends a cell: a comma, newline or EOF.
func closesCell(runes []rune, i int) bool {
	return i >= len(runes) || runes[i] == ',' || runes[i] == '\n'
}

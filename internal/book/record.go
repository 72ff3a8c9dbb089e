package book

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultFormat is the format literal recorded for every Kindle purchase.
const DefaultFormat = "Kindle"

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Record is a single catalog line item: title, author and format.
type Record struct {
	Title  string `json:"title" validate:"required,max=1024"`
	Author string `json:"author" validate:"max=512"`
	Format string `json:"format" validate:"max=64"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// New builds a cleaned record. An empty format falls back to DefaultFormat.
func New(title, author, format string) Record {
	return Record{Title: title, Author: author, Format: format}.Clean()
}

// Clean returns a copy with NFC-normalized, trimmed fields.
func (r Record) Clean() Record {
	out := Record{
		Title:  cleanText(r.Title),
		Author: cleanText(r.Author),
		Format: cleanText(r.Format),
	}
	if out.Format == "" {
		out.Format = DefaultFormat
	}
	return out
}

// Validate reports whether the record can be stored.
func (r Record) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidRecord, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is blank", ErrInvalidRecord)
	}
	return nil
}

// DedupeKey is the caseless title key used to drop repeated purchases.
func (r Record) DedupeKey() string {
	return DedupeKey(r.Title)
}

// DedupeKey folds case on a trimmed title. A Caser carries state, so each
// call builds its own.
func DedupeKey(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// Row returns the record as a Title,Author,Format triple.
func (r Record) Row() []string {
	return []string{r.Title, r.Author, r.Format}
}

func cleanText(value string) string {
	return strings.TrimSpace(norm.NFC.String(value))
}

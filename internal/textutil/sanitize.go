package textutil

import "strings"

// FullWidthComma replaces ASCII commas in sanitised cells.
const FullWidthComma = "，"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeCommas swaps ASCII commas for full-width ones so naive
// comma-splitting consumers keep a cell intact.
func SanitizeCommas(value string) string {
	return strings.ReplaceAll(value, ",", FullWidthComma)
}

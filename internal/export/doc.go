// Package export writes the collected or merged catalog as CSV and reads
// previously exported files back.
//
// Every cell is double-quoted. Embedded quotes are either doubled (RFC 4180)
// or backslash-escaped, matching the two styles the browser collector has
// produced over time. ReadCSV must be told which style wrote the file; in
// double style a backslash is an ordinary character.
package export

// Package textutil provides small text helpers shared by the exporters:
// comma sanitisation for spreadsheet cells and filename cleanup.
package textutil

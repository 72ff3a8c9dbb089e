// Package book defines the raw catalog record shared by the collectors, the
// library store, the sequel merger, and the exporters.
//
// A Record is one purchased line item as observed on the storefront listing
// or in an order mail. Records are treated as immutable once constructed;
// Clean returns a normalized copy instead of mutating in place.
package book

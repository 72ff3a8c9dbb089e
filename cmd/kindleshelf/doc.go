// Package main hosts the kindleshelf CLI entrypoint and command graph.
//
// The Cobra command tree collects Kindle purchases from saved storefront
// pages, order-confirmation mail and earlier CSV exports into the local
// library, runs the sequel merger over it, and exports the result as CSV.
// Configuration is resolved once per invocation and shared with every
// subcommand through commandContext.
//
// Keep this package thin: parsing, merging and storage live in internal
// packages and the commands only wire them together and render output.
package main

// Package config loads, normalizes, and validates kindleshelf configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LLM_API_KEY. The Config type gathers every knob the CLI needs so the
// library database, export directory, and mailbox filters are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

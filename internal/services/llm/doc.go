// Package llm provides an OpenRouter chat client used for author lookup.
//
// Mail order confirmations carry book titles but no author. When author
// fetching is enabled, AuthorLookup asks the configured model for the
// authors of each title and returns them as a comma separated list.
//
// # Configuration
//
// Requires api_key, model, and optionally base_url, referer, title, timeout.
// When unconfigured, callers fall back to the configured placeholder.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteText: send a prompt, receive free text.
// Client.Ping: verify the API key and model answer before a long mail run.
// AuthorLookup.ResolveAuthor: title to author list with placeholder fallback.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions and
// network timeouts with exponential backoff (base 1s, max 10s, up to 5
// attempts by default). Context cancellation aborts retries immediately.
package llm

// Package services defines shared helpers for external integrations such as
// the LLM author lookup.
//
// Errors returned by integrations are tagged with one of the sentinel markers
// through Wrap so callers can tell configuration problems from transient
// upstream failures with errors.Is, and Hint turns a marker into the next
// step recorded as error_hint in warning logs.
package services

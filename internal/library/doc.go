// Package library persists collected book records and merge history in
// SQLite.
//
// Records keep their insertion order (the merge engine depends on it) and are
// tagged with the source that produced them. Each merge run is recorded with
// a UUID and its summary counters. Collection commands take an advisory file
// lock so two sessions never interleave appends.
package library

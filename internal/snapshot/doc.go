// Package snapshot serializes a materialized scene to canonical JSON.
//
// Snapshots are byte-stable for a given scene: object keys are sorted by
// UTF-16 code units (RFC 8785), strings are NFC-normalized, HTML characters
// are not escaped, and floats are rounded to nine decimal places so that
// transform arithmetic noise (including negative zero) never reaches the
// output. They back the CLI's JSON output and golden-file tests.
package snapshot

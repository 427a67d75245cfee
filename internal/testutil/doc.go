// Package testutil provides deterministic fixtures for reconstruction tests.
//
// Fixtures address entities by short keys ("chassis", "wheel-1"); keys map
// to identifiers through entity.KeyID, so the same key always yields the
// same ID across tests and runs.
package testutil

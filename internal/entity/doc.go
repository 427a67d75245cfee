// Package entity provides the identifier service and the read-only entity
// model that reconstruction consumes.
//
// This package contains type definitions and the in-memory Document source.
// All other internal packages import entity; entity imports nothing internal.
//
// Key design constraints:
//   - Every entity is keyed by a UUID (ID). Two entities with equal IDs are
//     the same entity.
//   - Cross-entity links are IDs, never pointers. uuid.Nil means "no link".
//   - Sources are borrowed for one reconstruction pass and released by the
//     caller through Close.
package entity

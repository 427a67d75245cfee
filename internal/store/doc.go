// Package store provides SQLite-backed storage for packed entity documents.
//
// A packed store holds exactly one document. Each entity kind has its own
// table; rows keep document order through the seq column.
//
// # Deterministic Reads
//
//   - All reads ORDER BY seq ASC, so a loaded document enumerates entities in
//     the order they were saved and reconstruction stays deterministic.
//   - Identifiers are stored as canonical UUID text; NULL stands for "none".
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Schema changes are applied incrementally through PRAGMA user_version.
package store

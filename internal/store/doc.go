// Package store provides the SQLite-backed law catalog.
//
// The catalog is a single table, maths, holding one row per law:
//   - name: the natural identifier, stored with the caller's casing
//   - name_key: NormalizeName(name), UNIQUE
//   - formula, section: free-form text
//
// # Name matching
//
// Every lookup and every uniqueness check compares NormalizeName of the
// query against name_key. Two names that differ only in letter case can
// never both be stored, and a law is always addressed by any casing of its
// current name.
//
// # Outcomes
//
// Mutations run check-then-act inside one transaction. A missing target is
// ErrNotFound and a collision is ErrDuplicateName; in both cases nothing is
// written. Driver and filesystem failures are marked ErrStorage and are
// never reported as either catalog outcome.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - one pooled connection (single writer)
package store

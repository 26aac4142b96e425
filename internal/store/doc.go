// Package store provides a SQLite-backed log of compiled sentences.
//
// Every compile attempt is appended as a compilation row carrying the
// sentence, its derivation, the compile flags and either the resulting
// DRS fingerprint or the failure kind. Each distinct DRS is stored once in
// the drs table under its fingerprint (see drt.Fingerprint), so sentences
// with the same meaning share one row.
//
// # Ordering
//
// Rows are ordered by seq, a logical counter assigned in the writing
// transaction, never by timestamps. All multi-row queries use
// ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

// Package store provides SQLite-backed durable storage for tournaments.
//
// A tournament is stored as match headers plus point logs:
//   - ingestions: one row per save, identified by a UUIDv7 token
//   - matches: header, content digest and the ingestion that last wrote it
//   - points: the ordered point log of each match
//
// Loading never trusts derived state. Each point log is verified against its
// digest and replayed through scoring.Match.
//
// # Ordering
//
// Every row that needs an order carries a seq from the store's logical
// clock, never a timestamp. Reads use ORDER BY seq ASC, id ASC COLLATE BINARY
// so a loaded tournament lists matches in the order they were first saved.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

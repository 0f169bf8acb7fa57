// Package store keeps a SQLite history of query extractions.
//
// Every attempt to turn model output into a query is appended as one row:
// the prompt, the raw output, the recovered literal and its columns, and
// whether it succeeded. Successful rows carry a content-addressed ID
// (edn.Hash of the parsed query), so the same query produced by different
// prompts shares an ID.
//
// # Ordering
//
// Rows are ordered by seq, an autoincrement logical clock. There are no
// timestamp columns.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store

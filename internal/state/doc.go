// Package state owns the in-memory book list for one run of the dashboard.
//
// # Overview
//
// A Store is created by the composition root with a library.BookService and
// handed to the UI and, when auto refresh is enabled, to the poller. It starts
// empty. Nothing in this package is global.
//
//	UI command goroutines          Poller (optional)
//	┌───────────────────┐          ┌───────────────────┐
//	│ Create / Update   │          │ Refresh()         │
//	│ Delete / Refresh  │          │ sleep + backoff   │
//	└─────────┬─────────┘          └─────────┬─────────┘
//	          │        ┌─────────┐           │
//	          └───────→│  Store  │←──────────┘
//	                   └────┬────┘
//	                        │ Snapshot()
//	                        ↓
//	                  render list view
//
// # Operations
//
//   - Refresh: GET /books. Success replaces the list (a non-array payload
//     becomes an empty list). Failure keeps the last-known-good list and
//     records LastError and ConsecutiveFailures.
//   - Create: validates, POSTs and appends the returned record.
//   - Update: validates, PUTs and replaces the matching entry in place.
//   - Delete: DELETEs and removes the matching entry.
//
// Each operation issues at most one request. There is no retry and no
// deduplication; submitting the same create twice yields two records.
// Mutation failures are logged and returned with the list unchanged.
//
// # Ordering
//
// Every operation takes a sequence number before its request goes out. A
// refresh response is applied only when no newer list change has been
// applied in the meantime; otherwise it is dropped and logged at debug
// level. Mutation responses always apply their patch. The list therefore
// reflects the latest completed mutation even when a slow refresh that
// started earlier returns afterwards.
//
// # Concurrency Model
//
// Bubble Tea runs commands on their own goroutines, so the list is guarded
// by a sync.RWMutex. The lock is never held across network I/O. Snapshot
// returns defensive copies of the list and the last error.
package state

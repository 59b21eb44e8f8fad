// Package app is the composition root for the shelf dashboard.
//
// # Overview
//
// Run wires configuration, logging, the API client, the book store and the
// UI, then blocks until the user quits or the context is cancelled:
//
//  1. Load ~/.config/shelf/config.toml (or the -config path)
//  2. Apply command-line overrides (-api, -poll)
//  3. Open the slog text log at log_file
//  4. Build the library.Client and an empty state.Store
//  5. Start the auto-refresh poller when refresh_seconds > 0
//  6. Load preferences and run the Bubble Tea program
//
// # Components
//
//   - app.go: Run, flag overrides and log file setup
//   - poller.go: optional background refresh with exponential backoff
//
// # Data Flow
//
//	┌──────────────┐       ┌──────────────┐
//	│   Poller     │──────→│ state.Store  │←──── UI commands
//	│ (optional)   │Refresh│              │      (Refresh, Create,
//	└──────────────┘       └──────┬───────┘       Update, Delete)
//	                              │ Snapshot
//	                              ↓
//	                       ┌──────────────┐
//	                       │ ui.Model     │
//	                       └──────────────┘
//
// # Backoff
//
// After each failed refresh the poller doubles its wait, up to 30 seconds.
// A success resets the wait to the configured interval. The list view
// itself always refreshes once when the program starts, whether or not the
// poller runs.
//
// # Error Handling
//
// Config, log file and client errors are returned from Run and are fatal.
// Nothing after startup is fatal; failures surface in the UI and the log.
package app

// Package ui provides the terminal dashboard for the shelf book catalog.
//
// The interface is a Bubble Tea program. Model holds all view state and is
// driven by messages: key presses, window resizes, the periodic UI tick, and
// the results of asynchronous gateway calls.
//
// # Views
//
//   - List: the book table with selection, an error banner when the last
//     refresh failed, and a placeholder row when the catalog is empty.
//   - Detail: a single book fetched straight from the gateway. A 404 returns
//     to the list with a notice; other failures offer a retry.
//   - Logs: the tail of the log file, filterable by level.
//
// # Dialogs
//
// Dialogs implement Modal and receive every key and unrouted message while
// open. The create/edit form validates input locally and issues no request
// when validation fails. The delete confirmation runs the delete followed by
// a list refresh as one command so the two requests stay ordered.
//
// # Late results
//
// Every asynchronous request carries a token. Results whose token no longer
// matches the open dialog or the visible detail view are dropped.
//
// # Data flow
//
// The list reads from state.Store. The UI tick pulls a fresh snapshot; the
// store itself is refreshed by the background poller, by the r key, and
// after every successful dialog.
//
// # Themes
//
// Themes are defined in theme.go and cycled with T. The choice is persisted
// through the prefs package.
package ui

// Package gateway is a self-contained books API for local development and
// tests of the dashboard.
//
// It serves GET, POST, PUT, and DELETE on /books over an in-memory
// Repository, using the same JSON envelopes the production backend returns:
//
//	{"message": "books fetched", "data": [...]}
//	{"error": "data not found", "message": "failed to get book data"}
//
// Every response carries an X-Request-ID header, echoed from the request or
// generated. Requests are logged through slog.
package gateway

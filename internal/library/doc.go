// Package library provides an HTTP client and the shared record types for the
// books API.
//
// # Overview
//
// The dashboard never owns book data. Every record lives behind the gateway
// and this package is the only code that speaks its wire format:
//
//   - client.go: HTTP client and request/response handling
//   - types.go: Book and Draft plus envelope decoding
//   - errors.go: StatusError, ErrNotFound and ValidationError
//   - validate.go: the field rules shared by the forms and the store
//
// # API Endpoints
//
//   - GET    /books       → {"data": [Book, ...]}
//   - GET    /books/{id}  → {"data": Book}, 404 when absent
//   - POST   /books       → created Book (bare or enveloped)
//   - PUT    /books/{id}  → updated Book (bare or enveloped)
//   - DELETE /books/{id}  → any 2xx, body ignored
//
// A list response whose data member is not an array decodes to an empty
// collection. Create responses must carry a positive id; the client never
// invents one.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: shelf/0.1
//   - Carry a fresh X-Request-ID (UUIDv4) so gateway logs can be correlated
//   - Have a 5-second timeout unless configured otherwise
//
// # Error Handling
//
//   - Any non-2xx status returns *StatusError
//   - errors.Is(err, ErrNotFound) is true for a 404
//   - Transport failures are wrapped as "execute request: ..."
//   - Malformed JSON is wrapped as "decode response: ..."
//
// Validation happens before any call is made. Validate and ValidateInput
// return *ValidationError carrying the message the forms display:
//
//   - "All fields are required."
//   - "Please enter a valid publication year."
//
// # Thread Safety
//
// The Client is safe for concurrent use. The store issues mutations from
// Bubble Tea command goroutines without additional locking.
package library

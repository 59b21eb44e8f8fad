// Package config loads the dashboard's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelf/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, empty or not positive, use defaults
//
// # Default Values
//
//   - API URL: http://localhost:8080
//   - Request timeout: 5 seconds
//   - Auto refresh: disabled (0)
//   - Log file: ~/.local/state/shelf/shelf.log
//
// # TOML Format
//
//	api_url = "http://localhost:8080"
//	request_timeout_seconds = 5
//	refresh_seconds = 0
//	log_file = "~/.local/state/shelf/shelf.log"
//
// Paths beginning with ~ are expanded to the user's home directory and made
// absolute. String values are trimmed.
//
// # Error Handling
//
// A missing file is not an error. An unreadable file or invalid TOML is
// returned wrapped ("open config", "read config", "parse config") and is
// fatal at startup. Command-line flags applied by the app package override
// whatever Load returns.
package config

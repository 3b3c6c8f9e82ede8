// Package server holds configuration for the HTTP server started by the
// start command.
package server

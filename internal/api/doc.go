// Package api defines the JSON payloads served on the bridge HTTP endpoints
// and a small client for querying a running daemon.
package api

// Package daemon wires the articulation bridge together: the websocket
// server, the track-name resolver, and the MIDI ports. It enforces
// single-instance execution with a lock file and exposes a small HTTP API
// on the bridge listener.
package daemon

// Package bridge implements the websocket protocol linking the track
// detector, display clients, and the MIDI output.
//
// Every frame is one JSON object with a mandatory type field. Sessions start
// in the display role; a detector announces itself with an identify message
// and the role transitions exactly once. Track-change and set-change
// broadcasts go only to display-role sessions. Undecodable frames are logged
// and ignored without closing the connection; reconnection is always the
// client's responsibility.
package bridge

// Package midi translates articulation triggers into wire-level MIDI bytes
// and moves them through system MIDI ports.
//
// The Dispatcher applies the global channel policy to channel-voice messages
// and forwards the resulting 3 bytes to whichever output is bound; sends
// without a bound output fail with ErrNoOutput and are expected to be logged
// and dropped, never retried. Classify renders inbound bytes as a human
// string for diagnostic logging only.
//
// Port access goes through gomidi with the rtmidi driver; ports are selected
// by case-insensitive substring so "IAC" finds "IAC Driver Bus 1".
package midi

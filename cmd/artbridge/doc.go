// Package main hosts the artbridge CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the bridge daemon, inspects the
// articulation-set library, exercises MIDI ports, and talks to a running
// daemon over its HTTP and websocket endpoints. It centralizes configuration
// resolution and daemon address discovery so subcommands can focus on user
// experience instead of wiring.
package main

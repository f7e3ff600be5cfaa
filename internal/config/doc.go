// Package config loads, normalizes, and validates artbridge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ARTBRIDGE_LIBRARY_DIR
// environment fallback. The Config type centralizes every knob the daemon and
// CLI need: bridge network settings, MIDI port bindings, the articulation-set
// library location, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a zero-based MIDI channel, and clear validation errors.
package config

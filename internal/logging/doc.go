// Package logging constructs the slog loggers used across artbridge.
//
// It provides a human-oriented console handler for interactive use, a JSON
// handler for log files and machine consumption, and small attribute helpers
// so call sites stay terse. Components obtain a scoped logger through
// NewComponentLogger so every record carries a component attribute.
package logging

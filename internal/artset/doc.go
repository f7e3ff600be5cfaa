// Package artset models articulation knowledge and parses the two on-disk
// articulation-set dialects into one canonical form.
//
// A Set holds an ordered list of Articulations. Each articulation carries the
// MIDI messages it produces inside the DAW (Output) and, optionally, the
// remote trigger a controller uses to activate it. Parsing is pure: identical
// bytes yield identical sets except for the generated articulation IDs, which
// identify display-session instances and are never reused.
//
// AutoAssign completes a parsed set by giving every articulation without a
// remote trigger the next free MIDI note. It returns a new Set value so
// callers keep the pre-assignment version.
package artset

package artset

import (
	"fmt"
	"sync/atomic"
)

// MIDI status bytes for channel-voice messages, channel nibble zero.
const (
	StatusNoteOff         byte = 0x80
	StatusNoteOn          byte = 0x90
	StatusPolyPressure    byte = 0xA0
	StatusControlChange   byte = 0xB0
	StatusProgramChange   byte = 0xC0
	StatusChannelPressure byte = 0xD0
	StatusPitchBend       byte = 0xE0
)

// PaletteSize is the number of display colors articulations cycle through.
const PaletteSize = 16

// Trigger is one raw 3-byte MIDI event. The high nibble of Status encodes
// the message type, the low nibble the channel; the channel is overridden at
// dispatch time.
type Trigger struct {
	Status byte `json:"status"`
	Data1  byte `json:"data1"`
	Data2  byte `json:"data2"`
}

// RemoteTrigger is the note or controller that activates an articulation from
// the performer's device, distinct from the output the articulation produces
// in the DAW project.
type RemoteTrigger struct {
	Status       byte `json:"status"`
	Data1        byte `json:"data1"`
	AutoAssigned bool `json:"autoAssigned"`
}

// Type distinguishes articulations that color single notes from those that
// stay in effect until changed.
type Type int

const (
	TypeAttribute Type = iota
	TypeDirection
)

func (t Type) String() string {
	if t == TypeDirection {
		return "direction"
	}
	return "attribute"
}

// Articulation is one selectable performance technique.
type Articulation struct {
	// ID is unique per parsed set instance. It identifies a button during a
	// display session and is never reused across reparses of the same file.
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	ShortName   string         `json:"shortName"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Group       int            `json:"group"`
	Output      []Trigger      `json:"output"`
	Remote      *RemoteTrigger `json:"remote,omitempty"`
	Type        Type           `json:"type"`
}

// Set is a named, ordered collection of articulations bound to one
// instrument. Immutable once parsed; AutoAssign returns a fresh value.
type Set struct {
	Name          string         `json:"name"`
	SourceFile    string         `json:"sourceFile"`
	Articulations []Articulation `json:"articulations"`
}

// Clone deep-copies the set, including output triggers and remote triggers.
// Articulation IDs are retained: the clone is the same display-session
// instance.
func (s *Set) Clone() *Set {
	out := &Set{Name: s.Name, SourceFile: s.SourceFile}
	out.Articulations = make([]Articulation, len(s.Articulations))
	for i, a := range s.Articulations {
		copied := a
		copied.Output = append([]Trigger(nil), a.Output...)
		if a.Remote != nil {
			remote := *a.Remote
			copied.Remote = &remote
		}
		out.Articulations[i] = copied
	}
	return out
}

// ParseError reports a document whose root structure could not be decoded.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse articulation set %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var idCounter atomic.Int64

func nextArticulationID() int64 {
	return idCounter.Add(1)
}

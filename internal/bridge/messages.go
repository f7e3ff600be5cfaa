package bridge

import (
	"encoding/json"
	"errors"
)

// Message types carried in the envelope's type field.
const (
	TypeIdentify  = "identify"
	TypeTrack     = "trackChange"
	TypeSetChange = "articulationSetChange"
	TypeMIDI      = "midi"
	TypePing      = "ping"
	TypePong      = "pong"
	TypeConnected = "connected"
)

// ClientTypeDetector is the identify payload announcing the track monitor.
const ClientTypeDetector = "track-monitor"

// Connection status values reported in the connected snapshot.
const (
	StatusReady  = "ready"
	StatusNoMIDI = "no-midi"
)

// Inbound is the superset envelope decoded from received frames. Which
// fields are meaningful depends on Type. Status is raw because midi frames
// carry it as a number while connected frames carry it as a string; pointer
// data fields distinguish absent from zero so malformed midi frames can be
// dropped.
type Inbound struct {
	Type              string          `json:"type"`
	ClientType        string          `json:"clientType,omitempty"`
	TrackName         string          `json:"trackName,omitempty"`
	ArticulationSetID int             `json:"articulationSetId,omitempty"`
	Port              string          `json:"port,omitempty"`
	Status            json.RawMessage `json:"status,omitempty"`
	Data1             *int            `json:"data1,omitempty"`
	Data2             *int            `json:"data2,omitempty"`
}

// Decode parses one frame. A nil message with nil error never happens; any
// failure is returned for the caller to log and ignore.
func Decode(data []byte) (*Inbound, error) {
	var msg Inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, errors.New("frame has no type")
	}
	return &msg, nil
}

// MIDIBytes validates a midi frame's payload. ok is false when any field is
// missing or out of range; such frames are dropped silently per protocol.
func (m *Inbound) MIDIBytes() (status, data1, data2 byte, ok bool) {
	if len(m.Status) == 0 || m.Data1 == nil || m.Data2 == nil {
		return 0, 0, 0, false
	}
	var raw int
	if err := json.Unmarshal(m.Status, &raw); err != nil {
		return 0, 0, 0, false
	}
	if raw < 0 || raw > 255 || !dataByteOK(*m.Data1) || !dataByteOK(*m.Data2) {
		return 0, 0, 0, false
	}
	return byte(raw), byte(*m.Data1), byte(*m.Data2), true
}

// StatusText returns the string form of the status field, used on connected
// and pong frames. Empty for numeric or absent status.
func (m *Inbound) StatusText() string {
	var s string
	if json.Unmarshal(m.Status, &s) == nil {
		return s
	}
	return ""
}

func dataByteOK(v int) bool { return v >= 0 && v <= 127 }

// Connected is the initial state snapshot, sent on accept before any other
// message.
type Connected struct {
	Type   string `json:"type"`
	Port   string `json:"port"`
	Status string `json:"status"`
	WSPort int    `json:"wsPort"`
}

// Pong answers a ping with the current output port name and bound network
// port.
type Pong struct {
	Type   string `json:"type"`
	Port   string `json:"port"`
	WSPort int    `json:"wsPort"`
}

// TrackChange carries an observed track name, rebroadcast verbatim to
// display sessions.
type TrackChange struct {
	Type      string `json:"type"`
	TrackName string `json:"trackName"`
}

// SetChange is informational; the id space is opaque and sourced from an
// external hardware signal.
type SetChange struct {
	Type              string `json:"type"`
	ArticulationSetID int    `json:"articulationSetId"`
}

// Identify marks the sending session as the detector.
type Identify struct {
	Type       string `json:"type"`
	ClientType string `json:"clientType"`
}

// MIDI requests the server dispatch one raw message.
type MIDI struct {
	Type   string `json:"type"`
	Status int    `json:"status"`
	Data1  int    `json:"data1"`
	Data2  int    `json:"data2"`
}

package midi_test

import (
	"errors"
	"strings"
	"testing"

	"artbridge/internal/artset"
	"artbridge/internal/midi"
)

type captureSender struct {
	sent [][]byte
	err  error
}

func (c *captureSender) Send(msg []byte) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, append([]byte(nil), msg...))
	return nil
}

func TestDispatchAppliesGlobalChannel(t *testing.T) {
	sender := &captureSender{}
	d := midi.NewDispatcher(nil)
	d.Bind(sender)

	trigger := artset.Trigger{Status: 0x90, Data1: 60, Data2: 100}
	if err := d.Dispatch(trigger, 5, true); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}
	want := []byte{0x95, 60, 100}
	if got := sender.sent[0]; got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("unexpected bytes: %v want %v", got, want)
	}
}

func TestDispatchLeavesSystemMessagesAlone(t *testing.T) {
	sender := &captureSender{}
	d := midi.NewDispatcher(nil)
	d.Bind(sender)

	trigger := artset.Trigger{Status: 0xF0, Data1: 1, Data2: 2}
	if err := d.Dispatch(trigger, 5, true); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if sender.sent[0][0] != 0xF0 {
		t.Fatalf("system status must pass through, got 0x%02X", sender.sent[0][0])
	}
}

func TestDispatchWithoutApplyKeepsChannel(t *testing.T) {
	sender := &captureSender{}
	d := midi.NewDispatcher(nil)
	d.Bind(sender)

	trigger := artset.Trigger{Status: 0x93, Data1: 60, Data2: 100}
	if err := d.Dispatch(trigger, 5, false); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if sender.sent[0][0] != 0x93 {
		t.Fatalf("channel must be kept, got 0x%02X", sender.sent[0][0])
	}
}

func TestDispatchTrimsTwoByteMessages(t *testing.T) {
	sender := &captureSender{}
	d := midi.NewDispatcher(nil)
	d.Bind(sender)

	if err := d.Dispatch(artset.Trigger{Status: 0xC0, Data1: 7}, 0, false); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if got := len(sender.sent[0]); got != 2 {
		t.Fatalf("program change payload length = %d, want 2", got)
	}
}

func TestDispatchUnboundFailsWithErrNoOutput(t *testing.T) {
	d := midi.NewDispatcher(nil)
	err := d.Dispatch(artset.Trigger{Status: 0x90, Data1: 60, Data2: 100}, 0, true)
	if !errors.Is(err, midi.ErrNoOutput) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
	if d.Bound() {
		t.Fatal("expected no bound output")
	}
}

func TestApplyTable(t *testing.T) {
	cases := []struct {
		name    string
		in      artset.Trigger
		channel byte
		apply   bool
		want    byte
	}{
		{"note on", artset.Trigger{Status: 0x90}, 5, true, 0x95},
		{"note off", artset.Trigger{Status: 0x81}, 2, true, 0x82},
		{"pitch bend", artset.Trigger{Status: 0xE0}, 15, true, 0xEF},
		{"sysex", artset.Trigger{Status: 0xF0}, 5, true, 0xF0},
		{"clock", artset.Trigger{Status: 0xF8}, 5, true, 0xF8},
		{"no apply", artset.Trigger{Status: 0x90}, 5, false, 0x90},
	}
	for _, tc := range cases {
		if got := midi.Apply(tc.in, tc.channel, tc.apply); got.Status != tc.want {
			t.Fatalf("%s: got 0x%02X want 0x%02X", tc.name, got.Status, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		bytes [3]byte
		want  string
	}{
		{[3]byte{0x90, 60, 100}, "Note On"},
		{[3]byte{0x90, 60, 0}, "Note Off"},
		{[3]byte{0x85, 60, 0}, "Note Off"},
		{[3]byte{0xA0, 60, 10}, "Poly Pressure"},
		{[3]byte{0xB0, 32, 2}, "Control Change"},
		{[3]byte{0xC0, 7, 0}, "Program Change"},
		{[3]byte{0xD0, 64, 0}, "Channel Pressure"},
		{[3]byte{0xE0, 0, 64}, "Pitch Bend"},
		{[3]byte{0xF0, 0, 0}, "System"},
	}
	for _, tc := range cases {
		got := midi.Classify(tc.bytes[0], tc.bytes[1], tc.bytes[2])
		if !strings.HasPrefix(got, tc.want) {
			t.Fatalf("Classify(% X) = %q, want prefix %q", tc.bytes, got, tc.want)
		}
	}
}

func TestClassifyChannelIsOneBased(t *testing.T) {
	got := midi.Classify(0x95, 60, 100)
	if !strings.Contains(got, "ch6") {
		t.Fatalf("expected one-based channel in %q", got)
	}
}

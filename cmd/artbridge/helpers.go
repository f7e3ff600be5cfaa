package main

import (
	"fmt"
	"strconv"
	"strings"

	"artbridge/internal/artset"
)

// parseByteArg parses a MIDI byte argument in decimal or 0x-prefixed hex.
func parseByteArg(arg string, max uint64) (byte, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(arg), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", arg)
	}
	if value > max {
		return 0, fmt.Errorf("value %d out of range (max %d)", value, max)
	}
	return byte(value), nil
}

// formatTrigger renders one output event for table display.
func formatTrigger(t artset.Trigger) string {
	switch t.Status & 0xF0 {
	case artset.StatusNoteOn:
		return fmt.Sprintf("note %d vel %d", t.Data1, t.Data2)
	case artset.StatusControlChange:
		return fmt.Sprintf("cc %d=%d", t.Data1, t.Data2)
	case artset.StatusPolyPressure:
		return fmt.Sprintf("poly %d=%d", t.Data1, t.Data2)
	case artset.StatusProgramChange:
		return fmt.Sprintf("program %d", t.Data1)
	default:
		return fmt.Sprintf("0x%02X %d %d", t.Status, t.Data1, t.Data2)
	}
}

// formatRemote renders an articulation's keyswitch for table display.
func formatRemote(r *artset.RemoteTrigger) string {
	if r == nil {
		return "-"
	}
	var desc string
	switch r.Status & 0xF0 {
	case artset.StatusNoteOn:
		desc = fmt.Sprintf("note %d", r.Data1)
	case artset.StatusControlChange:
		desc = fmt.Sprintf("cc %d", r.Data1)
	default:
		desc = fmt.Sprintf("0x%02X %d", r.Status, r.Data1)
	}
	if r.AutoAssigned {
		desc += " (auto)"
	}
	return desc
}

func formatOutput(triggers []artset.Trigger) string {
	if len(triggers) == 0 {
		return "-"
	}
	parts := make([]string, len(triggers))
	for i, t := range triggers {
		parts[i] = formatTrigger(t)
	}
	return strings.Join(parts, ", ")
}

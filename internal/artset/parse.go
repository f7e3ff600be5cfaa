package artset

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"

	"howett.net/plist"
)

// Two dialects share the entry point. The older one lists output messages as
// Note/Velocity and CC pairs under each articulation's Output tree. The newer
// one keys a Switches table by numeric ID and stores the note number in MB1
// with a textual Status; the same MB1/Status pair on the articulation's own
// Output tree supplies the DAW-side output.

// Parse decodes an articulation-set document. fileHint names the source file
// and supplies the set name when the document carries none.
func Parse(data []byte, fileHint string) (*Set, error) {
	var root any
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{File: fileHint, Err: err}
	}
	dict, ok := asDict(root)
	if !ok {
		return nil, &ParseError{File: fileHint, Err: errors.New("root is not a dictionary")}
	}

	set := &Set{
		Name:       resolveSetName(dict, fileHint),
		SourceFile: filepath.Base(fileHint),
	}

	switches := parseSwitches(dict)
	entries, _ := dictArray(dict, "Articulations")
	for i, raw := range entries {
		entry, ok := asDict(raw)
		if !ok {
			continue
		}
		set.Articulations = append(set.Articulations, parseArticulation(entry, i, switches))
	}
	return set, nil
}

func resolveSetName(dict map[string]any, fileHint string) string {
	name, ok := dictString(dict, "Name", "name")
	if !ok || strings.TrimSpace(name) == "" {
		base := filepath.Base(fileHint)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return stripVendorTag(strings.TrimSpace(name))
}

// stripVendorTag drops a leading all-caps word so vendor-prefixed names sort
// and match by instrument ("VSL Solo Violin" reads as "Solo Violin").
func stripVendorTag(name string) string {
	word, rest, found := strings.Cut(name, " ")
	if !found || len(word) < 2 {
		return name
	}
	hasLetter := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return name
		}
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return name
			}
			hasLetter = true
		}
	}
	if !hasLetter {
		return name
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name
	}
	return rest
}

type switchEntry struct {
	status byte
	note   byte
}

func parseSwitches(dict map[string]any) map[int]switchEntry {
	raw, ok := dictArray(dict, "Switches")
	if !ok {
		return nil
	}
	table := make(map[int]switchEntry, len(raw))
	for _, item := range raw {
		entry, ok := asDict(item)
		if !ok {
			continue
		}
		id, ok := dictInt(entry, "ID")
		if !ok {
			continue
		}
		note, ok := dictInt(entry, "MB1")
		if !ok {
			continue
		}
		table[id] = switchEntry{
			status: statusFrom(entry),
			note:   byte(note & 0x7F),
		}
	}
	return table
}

// statusFrom maps the textual Status enum onto a status byte. Unrecognized
// values fall back to Note On. Integer statuses are taken verbatim.
func statusFrom(d map[string]any) byte {
	if n, ok := dictInt(d, "Status"); ok {
		return byte(n)
	}
	switch s, _ := dictString(d, "Status"); s {
	case "Control Change":
		return StatusControlChange
	case "Poly Pressure":
		return StatusPolyPressure
	default:
		return StatusNoteOn
	}
}

func parseArticulation(entry map[string]any, index int, switches map[int]switchEntry) Articulation {
	art := Articulation{
		ID:    nextArticulationID(),
		Group: 0,
		Color: defaultColor(index),
	}

	if name, ok := dictString(entry, "Name", "name"); ok && strings.TrimSpace(name) != "" {
		art.Name = strings.TrimSpace(name)
	} else {
		art.Name = defaultName(index)
	}
	if short, ok := dictString(entry, "ShortName"); ok && strings.TrimSpace(short) != "" {
		art.ShortName = strings.TrimSpace(short)
	} else {
		art.ShortName = defaultShortName(art.Name)
	}
	if desc, ok := dictString(entry, "Description"); ok {
		art.Description = strings.TrimSpace(desc)
	}
	if color, ok := dictInt(entry, "Color"); ok {
		art.Color = ((color % PaletteSize) + PaletteSize) % PaletteSize
	}
	if group, ok := dictInt(entry, "Group"); ok && group >= 0 {
		art.Group = group
	}
	if kind, ok := dictString(entry, "Type"); ok && strings.EqualFold(kind, "direction") {
		art.Type = TypeDirection
	}

	output, keyswitch := parseOutput(entry)
	art.Output = output

	if id, ok := dictInt(entry, "ID"); ok {
		if sw, found := switches[id]; found {
			art.Remote = &RemoteTrigger{Status: sw.status, Data1: sw.note}
			return art
		}
	}
	// No switch-table match: reuse the output keyswitch so the set stays
	// usable, flagged for the auto-assignment pass.
	if keyswitch != nil {
		art.Remote = &RemoteTrigger{Status: keyswitch.Status, Data1: keyswitch.Data1, AutoAssigned: true}
	}
	return art
}

// parseOutput extracts the DAW-side triggers from an articulation entry. The
// second result is the note-bearing trigger, if any, used as the fallback
// remote keyswitch. Output appears both as a single tree and, in some
// documents, as an array of trees; both are accepted.
func parseOutput(entry map[string]any) ([]Trigger, *Trigger) {
	var trees []map[string]any
	if tree, ok := dictDict(entry, "Output"); ok {
		trees = append(trees, tree)
	} else if items, ok := dictArray(entry, "Output"); ok {
		for _, item := range items {
			if tree, ok := asDict(item); ok {
				trees = append(trees, tree)
			}
		}
	}

	var triggers []Trigger
	var keyswitch *Trigger
	for _, tree := range trees {
		if note, ok := dictInt(tree, "Note"); ok {
			velocity := 127
			if v, ok := dictInt(tree, "Velocity"); ok {
				velocity = v
			}
			t := Trigger{Status: StatusNoteOn, Data1: byte(note & 0x7F), Data2: byte(velocity & 0x7F)}
			triggers = append(triggers, t)
			if keyswitch == nil {
				keyswitch = &t
			}
		}
		if note, ok := dictInt(tree, "MB1"); ok {
			value := 127
			if v, ok := dictInt(tree, "Value"); ok {
				value = v
			}
			t := Trigger{Status: statusFrom(tree), Data1: byte(note & 0x7F), Data2: byte(value & 0x7F)}
			triggers = append(triggers, t)
			if keyswitch == nil {
				keyswitch = &t
			}
		}
		if ccs, ok := dictArray(tree, "CC"); ok {
			for _, raw := range ccs {
				cc, ok := asDict(raw)
				if !ok {
					continue
				}
				number, ok := dictInt(cc, "Number")
				if !ok {
					continue
				}
				value, _ := dictInt(cc, "Value")
				triggers = append(triggers, Trigger{
					Status: StatusControlChange,
					Data1:  byte(number & 0x7F),
					Data2:  byte(value & 0x7F),
				})
			}
		}
	}
	return triggers, keyswitch
}

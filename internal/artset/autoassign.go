package artset

import "errors"

// ErrNotesExhausted reports that every MIDI note 0-127 is already taken while
// articulations still lack a remote trigger.
var ErrNotesExhausted = errors.New("auto-assign: no unused MIDI notes remain")

// AutoAssign gives every articulation without a remote trigger the next free
// MIDI note, scanning ascending from startNote in the set's original order.
// Notes already claimed by explicit (non-auto) remote triggers are never
// reused. The input set is left untouched; reapplying AutoAssign to its own
// output changes nothing.
func AutoAssign(set *Set, startNote int) (*Set, error) {
	used := make(map[byte]struct{})
	for _, a := range set.Articulations {
		if a.Remote != nil && !a.Remote.AutoAssigned {
			used[a.Remote.Data1] = struct{}{}
		}
	}

	out := set.Clone()
	next := startNote
	if next < 0 {
		next = 0
	}
	for i := range out.Articulations {
		a := &out.Articulations[i]
		if a.Remote != nil {
			continue
		}
		for next <= 127 {
			if _, taken := used[byte(next)]; !taken {
				break
			}
			next++
		}
		if next > 127 {
			return nil, ErrNotesExhausted
		}
		a.Remote = &RemoteTrigger{Status: StatusNoteOn, Data1: byte(next), AutoAssigned: true}
		used[byte(next)] = struct{}{}
		next++
	}
	return out, nil
}

// HasUnassignedRemotes reports whether any articulation still lacks a remote
// trigger.
func HasUnassignedRemotes(set *Set) bool {
	for _, a := range set.Articulations {
		if a.Remote == nil {
			return true
		}
	}
	return false
}

// CountAutoAssigned returns the number of articulations whose remote trigger
// was synthesized rather than authored.
func CountAutoAssigned(set *Set) int {
	count := 0
	for _, a := range set.Articulations {
		if a.Remote != nil && a.Remote.AutoAssigned {
			count++
		}
	}
	return count
}

package artset_test

import (
	"errors"
	"testing"

	"artbridge/internal/artset"
)

func buildSet(arts ...artset.Articulation) *artset.Set {
	return &artset.Set{Name: "Test", Articulations: arts}
}

func explicitRemote(note byte) *artset.RemoteTrigger {
	return &artset.RemoteTrigger{Status: artset.StatusNoteOn, Data1: note}
}

func TestAutoAssignSkipsUsedNotes(t *testing.T) {
	set := buildSet(
		artset.Articulation{Name: "A", Remote: explicitRemote(0)},
		artset.Articulation{Name: "B"},
		artset.Articulation{Name: "C", Remote: explicitRemote(1)},
		artset.Articulation{Name: "D"},
	)

	assigned, err := artset.AutoAssign(set, 0)
	if err != nil {
		t.Fatalf("AutoAssign failed: %v", err)
	}
	if got := assigned.Articulations[1].Remote; got == nil || got.Data1 != 2 || !got.AutoAssigned {
		t.Fatalf("expected B assigned note 2, got %+v", got)
	}
	if got := assigned.Articulations[3].Remote; got == nil || got.Data1 != 3 || !got.AutoAssigned {
		t.Fatalf("expected D assigned note 3, got %+v", got)
	}
	// Explicit remotes are untouched.
	if assigned.Articulations[0].Remote.Data1 != 0 || assigned.Articulations[2].Remote.Data1 != 1 {
		t.Fatal("explicit remotes must not change")
	}
	// Functional update: the input set keeps its gaps.
	if set.Articulations[1].Remote != nil {
		t.Fatal("input set must not be mutated")
	}
}

func TestAutoAssignStartNote(t *testing.T) {
	set := buildSet(artset.Articulation{Name: "A"})
	assigned, err := artset.AutoAssign(set, 36)
	if err != nil {
		t.Fatalf("AutoAssign failed: %v", err)
	}
	if got := assigned.Articulations[0].Remote; got == nil || got.Data1 != 36 {
		t.Fatalf("expected assignment to start at 36, got %+v", got)
	}
}

func TestAutoAssignIdempotent(t *testing.T) {
	set := buildSet(
		artset.Articulation{Name: "A", Remote: explicitRemote(10)},
		artset.Articulation{Name: "B"},
		artset.Articulation{Name: "C"},
	)
	once, err := artset.AutoAssign(set, 0)
	if err != nil {
		t.Fatalf("first AutoAssign failed: %v", err)
	}
	twice, err := artset.AutoAssign(once, 0)
	if err != nil {
		t.Fatalf("second AutoAssign failed: %v", err)
	}
	if artset.CountAutoAssigned(once) != artset.CountAutoAssigned(twice) {
		t.Fatal("auto-assigned count changed on reapplication")
	}
	for i := range once.Articulations {
		if *once.Articulations[i].Remote != *twice.Articulations[i].Remote {
			t.Fatalf("note reassigned at %d: %+v vs %+v",
				i, *once.Articulations[i].Remote, *twice.Articulations[i].Remote)
		}
	}
}

func TestAutoAssignExhaustion(t *testing.T) {
	arts := make([]artset.Articulation, 0, 129)
	for note := 0; note < 128; note++ {
		arts = append(arts, artset.Articulation{Remote: explicitRemote(byte(note))})
	}
	arts = append(arts, artset.Articulation{Name: "Overflow"})

	_, err := artset.AutoAssign(buildSet(arts...), 0)
	if !errors.Is(err, artset.ErrNotesExhausted) {
		t.Fatalf("expected ErrNotesExhausted, got %v", err)
	}
}

func TestQueryHelpers(t *testing.T) {
	set := buildSet(
		artset.Articulation{Name: "A", Remote: explicitRemote(5)},
		artset.Articulation{Name: "B"},
	)
	if !artset.HasUnassignedRemotes(set) {
		t.Fatal("expected unassigned remotes before auto-assignment")
	}
	if artset.CountAutoAssigned(set) != 0 {
		t.Fatal("expected zero auto-assigned before auto-assignment")
	}

	assigned, err := artset.AutoAssign(set, 0)
	if err != nil {
		t.Fatalf("AutoAssign failed: %v", err)
	}
	if artset.HasUnassignedRemotes(assigned) {
		t.Fatal("expected no unassigned remotes after auto-assignment")
	}
	if artset.CountAutoAssigned(assigned) != 1 {
		t.Fatalf("expected one auto-assigned, got %d", artset.CountAutoAssigned(assigned))
	}
}

package api

import "artbridge/internal/artset"

// FromSet converts a loaded articulation set to its API view.
func FromSet(set *artset.Set) *SetView {
	if set == nil {
		return nil
	}
	view := &SetView{
		Name:          set.Name,
		SourceFile:    set.SourceFile,
		Articulations: make([]ArticulationView, len(set.Articulations)),
	}
	for i, a := range set.Articulations {
		out := make([]TriggerView, len(a.Output))
		for j, t := range a.Output {
			out[j] = TriggerView{Status: int(t.Status), Data1: int(t.Data1), Data2: int(t.Data2)}
		}
		av := ArticulationView{
			Name:      a.Name,
			ShortName: a.ShortName,
			Color:     a.Color,
			Type:      a.Type.String(),
			Output:    out,
		}
		if a.Remote != nil {
			av.Remote = &RemoteView{
				Status:       int(a.Remote.Status),
				Data1:        int(a.Remote.Data1),
				AutoAssigned: a.Remote.AutoAssigned,
			}
		}
		view.Articulations[i] = av
	}
	return view
}

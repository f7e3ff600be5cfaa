package api

// DaemonStatus describes a running daemon in a transport-friendly format.
type DaemonStatus struct {
	Running       bool   `json:"running"`
	Port          int    `json:"port"`
	Sessions      int    `json:"sessions"`
	OutputPort    string `json:"outputPort,omitempty"`
	InputPort     string `json:"inputPort,omitempty"`
	Track         string `json:"track,omitempty"`
	SetName       string `json:"setName,omitempty"`
	Articulations int    `json:"articulations"`
	LibraryDir    string `json:"libraryDir"`
	LockFilePath  string `json:"lockFilePath"`
}

// TriggerView is one MIDI event of an articulation.
type TriggerView struct {
	Status int `json:"status"`
	Data1  int `json:"data1"`
	Data2  int `json:"data2,omitempty"`
}

// RemoteView is the keyswitch assigned to an articulation.
type RemoteView struct {
	Status       int  `json:"status"`
	Data1        int  `json:"data1"`
	AutoAssigned bool `json:"autoAssigned"`
}

// ArticulationView describes one articulation of a set.
type ArticulationView struct {
	Name      string        `json:"name"`
	ShortName string        `json:"shortName"`
	Color     int           `json:"color"`
	Type      string        `json:"type"`
	Remote    *RemoteView   `json:"remote,omitempty"`
	Output    []TriggerView `json:"output"`
}

// SetView is a loaded articulation set.
type SetView struct {
	Name          string             `json:"name"`
	SourceFile    string             `json:"sourceFile"`
	Articulations []ArticulationView `json:"articulations"`
}

// CurrentResponse reports the last resolved track and its set. Set is null
// when the track had no match.
type CurrentResponse struct {
	Track string   `json:"track"`
	Set   *SetView `json:"set"`
}

// SetEntry is one library file in a listing.
type SetEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SetListResponse is the payload of the set listing endpoint.
type SetListResponse struct {
	Sets []SetEntry `json:"sets"`
}

package daemon

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"artbridge/internal/api"
	"artbridge/internal/logging"
)

// apiServer serves the read-only HTTP endpoints on the bridge listener.
type apiServer struct {
	daemon *Daemon
	logger *slog.Logger
}

func newAPIServer(d *Daemon, logger *slog.Logger) *apiServer {
	return &apiServer{
		daemon: d,
		logger: logging.NewComponentLogger(logger, "api-server"),
	}
}

func (s *apiServer) register(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/current", s.handleCurrent)
	mux.HandleFunc("/api/sets", s.handleSets)
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status()
	payload := api.DaemonStatus{
		Running:       status.Running,
		Port:          status.Port,
		Sessions:      status.Sessions,
		OutputPort:    status.OutputPort,
		InputPort:     status.InputPort,
		Track:         status.Track,
		SetName:       status.SetName,
		Articulations: status.Articulations,
		LibraryDir:    status.LibraryDir,
		LockFilePath:  status.LockFilePath,
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	track, set := s.daemon.resolver.Current()
	s.writeJSON(w, http.StatusOK, api.CurrentResponse{Track: track, Set: api.FromSet(set)})
}

func (s *apiServer) handleSets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	entries := s.daemon.catalogue.Search(query)
	sets := make([]api.SetEntry, len(entries))
	for i, e := range entries {
		sets[i] = api.SetEntry{Name: e.Name, Path: e.Path}
	}
	s.writeJSON(w, http.StatusOK, api.SetListResponse{Sets: sets})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"artbridge/internal/logging"
)

// Role classifies a session for broadcast scoping.
type Role int

const (
	// RoleDisplay renders buttons; every session starts here.
	RoleDisplay Role = iota
	// RoleDetector observes the DAW and feeds track changes.
	RoleDetector
)

func (r Role) String() string {
	if r == RoleDetector {
		return "detector"
	}
	return "display"
}

const sendTimeout = 5 * time.Second

// Session is one connected client.
type Session struct {
	ID string

	mu         sync.Mutex
	role       Role
	identified bool

	writeMu sync.Mutex
	write   func(ctx context.Context, data []byte) error
}

// NewSession wraps a transport write function. Sessions default to the
// display role.
func NewSession(write func(ctx context.Context, data []byte) error) *Session {
	return &Session{ID: uuid.NewString(), write: write}
}

// Role returns the session's current role.
func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Identify transitions the role exactly once. Later identify messages are
// ignored; the first one wins.
func (s *Session) Identify(role Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identified {
		return false
	}
	s.identified = true
	s.role = role
	return true
}

// Send marshals and writes one message. Writes are serialized per session.
func (s *Session) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write(ctx, data)
}

// Registry is the broadcast membership. Add and Remove are its only
// mutators; no ambient global state.
type Registry struct {
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logging.NewComponentLogger(logger, "bridge"),
		sessions: make(map[string]*Session),
	}
}

// Add registers a session on connection accept.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	count := len(r.sessions)
	r.mu.Unlock()
	r.logger.Debug("session added", logging.String(logging.FieldSession, s.ID), logging.Int("sessions", count))
}

// Remove drops a session on socket close.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	delete(r.sessions, s.ID)
	count := len(r.sessions)
	r.mu.Unlock()
	r.logger.Debug("session removed", logging.String(logging.FieldSession, s.ID), logging.Int("sessions", count))
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Broadcast sends msg to every display-role session. Detector sessions,
// including a message's originator, never receive broadcasts. Send failures
// are logged; the failing session is left for its read loop to reap.
func (r *Registry) Broadcast(msg any) int {
	r.mu.Lock()
	targets := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Role() == RoleDisplay {
			targets = append(targets, s)
		}
	}
	r.mu.Unlock()

	delivered := 0
	for _, s := range targets {
		if err := s.Send(msg); err != nil {
			r.logger.Warn("broadcast send failed",
				logging.String(logging.FieldSession, s.ID),
				logging.Error(err))
			continue
		}
		delivered++
	}
	return delivered
}

package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"artbridge/internal/logging"
)

// Snapshot is the server state reported in connected and pong messages.
type Snapshot struct {
	// OutputPort is the bound MIDI output port name, empty when none.
	OutputPort string
	// Ready is false while no MIDI output is bound.
	Ready bool
}

// Handler receives the protocol messages that carry side effects.
type Handler interface {
	// HandleTrackChange runs after a trackChange was rebroadcast verbatim.
	HandleTrackChange(trackName string)
	// HandleMIDI dispatches one validated raw message.
	HandleMIDI(status, data1, data2 byte)
}

// Server accepts websocket sessions and routes protocol messages.
type Server struct {
	registry *Registry
	handler  Handler
	snapshot func() Snapshot
	logger   *slog.Logger

	httpServer *http.Server
	listener   net.Listener
	port       int
	stopOnce   sync.Once
}

// NewServer registers the websocket endpoint on mux. Additional HTTP routes
// on the same mux share the listener.
func NewServer(mux *http.ServeMux, handler Handler, snapshot func() Snapshot, logger *slog.Logger) *Server {
	s := &Server{
		registry: NewRegistry(logger),
		handler:  handler,
		snapshot: snapshot,
		logger:   logging.NewComponentLogger(logger, "bridge"),
	}
	mux.HandleFunc("/ws", s.handleWS)
	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start binds the listener and serves until ctx is canceled. A zero port
// auto-selects per Listen.
func (s *Server) Start(ctx context.Context, bind string, port int) error {
	listener, bound, err := Listen(bind, port)
	if err != nil {
		return err
	}
	s.listener = listener
	s.port = bound

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("bridge server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("bridge listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down and drops all sessions. It is safe to call
// concurrently with the context-cancel watcher started by Start.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.httpServer.Shutdown(shutdownCtx)
		}
		if s.listener != nil {
			_ = s.listener.Close()
			s.listener = nil
		}
	})
}

// Port returns the bound network port, valid after Start.
func (s *Server) Port() int { return s.port }

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int { return s.registry.Count() }

// BroadcastTrackChange relays an observed track name to display sessions.
func (s *Server) BroadcastTrackChange(trackName string) int {
	return s.registry.Broadcast(TrackChange{Type: TypeTrack, TrackName: trackName})
}

// BroadcastSetChange relays an opaque articulation-set id to display
// sessions.
func (s *Server) BroadcastSetChange(id int) int {
	return s.registry.Broadcast(SetChange{Type: TypeSetChange, ArticulationSetID: id})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", logging.Error(err))
		return
	}

	sess := NewSession(func(ctx context.Context, data []byte) error {
		return conn.Write(ctx, websocket.MessageText, data)
	})
	s.registry.Add(sess)
	defer func() {
		s.registry.Remove(sess)
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}()

	// State snapshot goes out before anything else.
	if err := sess.Send(s.connectedMessage()); err != nil {
		s.logger.Warn("initial snapshot send failed",
			logging.String(logging.FieldSession, sess.ID),
			logging.Error(err))
		return
	}

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.logger.Debug("session closed",
				logging.String(logging.FieldSession, sess.ID),
				logging.String("role", sess.Role().String()))
			return
		}
		s.handleFrame(sess, data)
	}
}

func (s *Server) connectedMessage() Connected {
	snap := s.snapshot()
	status := StatusNoMIDI
	if snap.Ready {
		status = StatusReady
	}
	return Connected{Type: TypeConnected, Port: snap.OutputPort, Status: status, WSPort: s.port}
}

func (s *Server) handleFrame(sess *Session, data []byte) {
	msg, err := Decode(data)
	if err != nil {
		s.logger.Warn("undecodable frame ignored",
			logging.String(logging.FieldSession, sess.ID),
			logging.Error(err))
		return
	}

	switch msg.Type {
	case TypeIdentify:
		role := RoleDisplay
		if msg.ClientType == ClientTypeDetector {
			role = RoleDetector
		}
		if sess.Identify(role) {
			s.logger.Info("session identified",
				logging.String(logging.FieldSession, sess.ID),
				logging.String("role", role.String()))
		}
	case TypeTrack:
		s.registry.Broadcast(TrackChange{Type: TypeTrack, TrackName: msg.TrackName})
		if s.handler != nil {
			s.handler.HandleTrackChange(msg.TrackName)
		}
	case TypeMIDI:
		status, data1, data2, ok := msg.MIDIBytes()
		if !ok {
			// Malformed midi frames are dropped without an error reply.
			return
		}
		if s.handler != nil {
			s.handler.HandleMIDI(status, data1, data2)
		}
	case TypePing:
		snap := s.snapshot()
		if err := sess.Send(Pong{Type: TypePong, Port: snap.OutputPort, WSPort: s.port}); err != nil {
			s.logger.Warn("pong send failed",
				logging.String(logging.FieldSession, sess.ID),
				logging.Error(err))
		}
	default:
		s.logger.Debug("unknown message type ignored",
			logging.String(logging.FieldSession, sess.ID),
			logging.String("type", msg.Type))
	}
}

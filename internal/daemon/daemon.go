package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"artbridge/internal/artset"
	"artbridge/internal/bridge"
	"artbridge/internal/catalogue"
	"artbridge/internal/config"
	"artbridge/internal/logging"
	"artbridge/internal/midi"
	"artbridge/internal/resolve"
)

// Daemon coordinates the bridge server, resolver, and MIDI ports, and
// enforces single-instance execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalogue  *catalogue.Catalogue
	resolver   *resolve.Resolver
	dispatcher *midi.Dispatcher
	server     *bridge.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	output *midi.OutputPort
	input  *midi.InputPort
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	Port          int
	Sessions      int
	OutputPort    string
	InputPort     string
	Track         string
	SetName       string
	Articulations int
	LibraryDir    string
	LockFilePath  string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	cat := catalogue.New(cfg.Library.Dir, cfg.Library.SearchLimit, logger)
	lockPath := filepath.Join(cfg.Logging.LogDir, "artbridge.lock")
	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		catalogue:  cat,
		resolver:   resolve.New(cat, cfg.Assign.StartNote, logger),
		dispatcher: midi.NewDispatcher(logger),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}

	mux := http.NewServeMux()
	newAPIServer(d, logger).register(mux)
	d.server = bridge.NewServer(mux, d, d.snapshot, logger)
	return d, nil
}

// Start acquires the daemon lock, binds MIDI ports, and launches the bridge
// server. A missing MIDI output is not fatal; the daemon runs degraded and
// reports no-midi to clients.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(d.cfg.Logging.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another artbridge daemon instance is already running")
	}

	d.bindMIDI()

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.server.Start(d.ctx, d.cfg.Server.Bind, d.cfg.Server.Port); err != nil {
		d.releaseMIDI()
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start bridge server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("artbridge daemon started",
		logging.Int("port", d.server.Port()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop stops the bridge server, releases MIDI ports, and drops the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	d.releaseMIDI()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("artbridge daemon stopped")
}

// Close releases resources held by the daemon, including the MIDI driver.
func (d *Daemon) Close() error {
	d.Stop()
	midi.CloseDriver()
	return nil
}

// Port returns the bound bridge port, valid after Start.
func (d *Daemon) Port() int {
	return d.server.Port()
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	track, set := d.resolver.Current()
	status := Status{
		Running:      d.running.Load(),
		Port:         d.server.Port(),
		Sessions:     d.server.Sessions(),
		Track:        track,
		LibraryDir:   d.catalogue.Root(),
		LockFilePath: d.lockPath,
	}
	if set != nil {
		status.SetName = set.Name
		status.Articulations = len(set.Articulations)
	}
	d.mu.Lock()
	if d.output != nil {
		status.OutputPort = d.output.Name()
	}
	if d.input != nil {
		status.InputPort = d.input.Name()
	}
	d.mu.Unlock()
	return status
}

// HandleTrackChange resolves the new track against the set library. The
// resolution runs off the session read loop; a stale result is discarded
// when a newer track change wins the race.
func (d *Daemon) HandleTrackChange(trackName string) {
	go func() {
		set, err := d.resolver.Resolve(trackName)
		switch {
		case errors.Is(err, resolve.ErrSuperseded):
			d.logger.Debug("resolution superseded", logging.String(logging.FieldTrack, trackName))
		case err != nil:
			d.logger.Warn("track resolution failed",
				logging.String(logging.FieldTrack, trackName),
				logging.Error(err))
		case set == nil:
			d.logger.Info("no articulation set for track",
				logging.String(logging.FieldTrack, trackName))
		}
	}()
}

// HandleMIDI dispatches one raw message from a session to the bound output.
func (d *Daemon) HandleMIDI(status, data1, data2 byte) {
	t := artset.Trigger{Status: status, Data1: data1, Data2: data2}
	err := d.dispatcher.Dispatch(t, d.cfg.GlobalChannel(), d.cfg.MIDI.ApplyChannel)
	if errors.Is(err, midi.ErrNoOutput) {
		d.logger.Debug("midi dropped, no output bound")
		return
	}
	if err != nil {
		d.logger.Warn("midi dispatch failed", logging.Error(err))
	}
}

func (d *Daemon) snapshot() bridge.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := bridge.Snapshot{Ready: d.dispatcher.Bound()}
	if d.output != nil {
		snap.OutputPort = d.output.Name()
	}
	return snap
}

func (d *Daemon) bindMIDI() {
	out, err := midi.OpenOutput(d.cfg.MIDI.OutputPort)
	if err != nil {
		d.logger.Warn("no MIDI output bound", logging.Error(err))
	} else {
		d.dispatcher.Bind(out)
		d.mu.Lock()
		d.output = out
		d.mu.Unlock()
		d.logger.Info("MIDI output bound", logging.String("port", out.Name()))
	}

	if d.cfg.MIDI.InputPort == "" {
		return
	}
	in, err := midi.OpenInput(d.cfg.MIDI.InputPort, d.handleInputMessage)
	if err != nil {
		d.logger.Warn("MIDI input unavailable", logging.Error(err))
		return
	}
	d.mu.Lock()
	d.input = in
	d.mu.Unlock()
	d.logger.Info("MIDI input bound", logging.String("port", in.Name()))
}

func (d *Daemon) releaseMIDI() {
	d.mu.Lock()
	output, input := d.output, d.input
	d.output, d.input = nil, nil
	d.mu.Unlock()

	d.dispatcher.Bind(nil)
	if input != nil {
		input.Close()
	}
	if output != nil {
		if err := output.Close(); err != nil {
			d.logger.Warn("close MIDI output", logging.Error(err))
		}
	}
}

// handleInputMessage observes hardware controller traffic. Program changes
// select articulation sets by program number; everything else is logged.
func (d *Daemon) handleInputMessage(msg []byte) {
	if len(msg) == 0 {
		return
	}
	var data1, data2 byte
	if len(msg) > 1 {
		data1 = msg[1]
	}
	if len(msg) > 2 {
		data2 = msg[2]
	}
	d.logger.Debug("midi input", logging.String("message", midi.Classify(msg[0], data1, data2)))

	if msg[0]&0xF0 == 0xC0 && len(msg) > 1 {
		d.server.BroadcastSetChange(int(data1))
	}
}

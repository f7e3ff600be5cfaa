package daemon

import (
	"path/filepath"
	"testing"

	"artbridge/internal/config"
	"artbridge/internal/logging"
)

type nopSender struct{}

func (nopSender) Send([]byte) error { return nil }

func TestReleaseMIDIUnbindsDispatcher(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		Server:  config.Server{Bind: "127.0.0.1", Port: 0},
		MIDI:    config.MIDI{Channel: 1},
		Library: config.Library{Dir: root, SearchLimit: 50},
		Assign:  config.Assign{StartNote: 12},
		Logging: config.Logging{Format: "json", Level: "info", LogDir: filepath.Join(root, "logs")},
	}
	d, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d.dispatcher.Bind(nopSender{})
	if !d.dispatcher.Bound() {
		t.Fatal("expected dispatcher bound after Bind")
	}

	d.releaseMIDI()
	if d.dispatcher.Bound() {
		t.Fatal("dispatcher still bound after releaseMIDI")
	}
	if snap := d.snapshot(); snap.Ready {
		t.Fatalf("snapshot still ready after releaseMIDI: %+v", snap)
	}
}

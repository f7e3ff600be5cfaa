package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artbridge/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ARTBRIDGE_LIBRARY_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLibrary := filepath.Join(tempHome, "Music", "Audio Music Apps", "Articulation Settings")
	if cfg.Library.Dir != wantLibrary {
		t.Fatalf("unexpected library dir: got %q want %q", cfg.Library.Dir, wantLibrary)
	}
	if cfg.Server.Bind != "127.0.0.1" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.Server.Port != 0 {
		t.Fatalf("expected automatic port selection by default, got %d", cfg.Server.Port)
	}
	if cfg.MIDI.Channel != 1 || !cfg.MIDI.ApplyChannel {
		t.Fatalf("unexpected MIDI defaults: %+v", cfg.MIDI)
	}
	if cfg.GlobalChannel() != 0 {
		t.Fatalf("expected zero-based channel 0, got %d", cfg.GlobalChannel())
	}
	if cfg.Library.SearchLimit != 100 {
		t.Fatalf("unexpected search limit: %d", cfg.Library.SearchLimit)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Logging.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "artbridge.toml")

	content := strings.Join([]string{
		"[server]",
		"port = 7200",
		"[midi]",
		`output_port = "IAC Driver"`,
		"channel = 5",
		"[library]",
		"dir = " + tomlString(tempDir),
		"[logging]",
		`format = "json"`,
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q to load, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Server.Port != 7200 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.MIDI.OutputPort != "IAC Driver" {
		t.Fatalf("unexpected output port: %q", cfg.MIDI.OutputPort)
	}
	if cfg.GlobalChannel() != 4 {
		t.Fatalf("expected zero-based channel 4, got %d", cfg.GlobalChannel())
	}
	if cfg.Library.Dir != tempDir {
		t.Fatalf("unexpected library dir: %q", cfg.Library.Dir)
	}
}

func tomlString(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

func TestLibraryDirEnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("ARTBRIDGE_LIBRARY_DIR", tempDir)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Library.Dir != tempDir {
		t.Fatalf("expected env override %q, got %q", tempDir, cfg.Library.Dir)
	}
}

func TestValidateRejectsReservedPort(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 5000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected reserved port to fail validation")
	}
}

func TestValidateRejectsBadChannel(t *testing.T) {
	cfg := config.Default()
	cfg.MIDI.Channel = 17
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected channel 17 to fail validation")
	}
}

func TestValidateRejectsBadStartNote(t *testing.T) {
	cfg := config.Default()
	cfg.Assign.StartNote = 128
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected start note 128 to fail validation")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected second WriteSample to fail")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[server]") {
		t.Fatal("expected sample to contain server section")
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeServer()
	c.normalizeMIDI()
	return nil
}

func (c *Config) normalizeLibrary() error {
	if env := strings.TrimSpace(os.Getenv("ARTBRIDGE_LIBRARY_DIR")); env != "" {
		c.Library.Dir = env
	}
	if strings.TrimSpace(c.Library.Dir) == "" {
		c.Library.Dir = defaultLibraryDir
	}
	var err error
	if c.Library.Dir, err = expandPath(c.Library.Dir); err != nil {
		return fmt.Errorf("library.dir: %w", err)
	}
	if c.Library.SearchLimit <= 0 {
		c.Library.SearchLimit = defaultSearchLimit
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.LogDir) == "" {
		c.Logging.LogDir = defaultLogDir
	}
	var err error
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
}

func (c *Config) normalizeMIDI() {
	c.MIDI.OutputPort = strings.TrimSpace(c.MIDI.OutputPort)
	c.MIDI.InputPort = strings.TrimSpace(c.MIDI.InputPort)
	if c.MIDI.Channel == 0 {
		c.MIDI.Channel = defaultChannel
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}

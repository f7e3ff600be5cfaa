package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains bridge network settings.
type Server struct {
	// Bind is the interface the bridge listens on.
	Bind string `toml:"bind"`
	// Port is the websocket port. 0 selects one automatically, scanning
	// upward from 7101 and skipping ports reserved by the host OS.
	Port int `toml:"port"`
}

// MIDI contains MIDI port bindings and channel policy.
type MIDI struct {
	// OutputPort selects the output by case-insensitive substring.
	// Empty binds the first available output.
	OutputPort string `toml:"output_port"`
	// InputPort selects an optional input for diagnostics and hardware
	// set-change signals. Empty disables input listening.
	InputPort string `toml:"input_port"`
	// Channel is the global MIDI channel, 1-16 as musicians count it.
	Channel int `toml:"channel"`
	// ApplyChannel rewrites the channel nibble of outgoing channel-voice
	// messages to Channel.
	ApplyChannel bool `toml:"apply_channel"`
}

// Library contains the articulation-set library settings.
type Library struct {
	// Dir is the root directory scanned for articulation-set files.
	Dir string `toml:"dir"`
	// SearchLimit caps the number of catalogue search results.
	SearchLimit int `toml:"search_limit"`
}

// Assign contains auto-assignment settings.
type Assign struct {
	// StartNote is the first MIDI note considered for auto-assigned
	// remote triggers.
	StartNote int `toml:"start_note"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`
}

// Config encapsulates all configuration values for artbridge.
type Config struct {
	Server  Server  `toml:"server"`
	MIDI    MIDI    `toml:"midi"`
	Library Library `toml:"library"`
	Assign  Assign  `toml:"assign"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/artbridge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// Sample returns the embedded sample configuration text.
func Sample() string {
	return sampleConfig
}

// EnsureDirectories creates the directories artbridge writes to.
func (c *Config) EnsureDirectories() error {
	if c.Logging.LogDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Logging.LogDir, 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}
	return nil
}

// GlobalChannel returns the configured channel as the zero-based value used
// in status bytes.
func (c *Config) GlobalChannel() byte {
	return byte(c.MIDI.Channel - 1)
}

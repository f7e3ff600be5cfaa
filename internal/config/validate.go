package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateMIDI(); err != nil {
		return err
	}
	if err := c.validateAssign(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d outside 0-65535", c.Server.Port)
	}
	if _, reserved := ReservedPorts[c.Server.Port]; reserved {
		return fmt.Errorf("server.port: %d is reserved by the host OS", c.Server.Port)
	}
	return nil
}

func (c *Config) validateMIDI() error {
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		return fmt.Errorf("midi.channel: %d outside 1-16", c.MIDI.Channel)
	}
	return nil
}

func (c *Config) validateAssign() error {
	if c.Assign.StartNote < 0 || c.Assign.StartNote > 127 {
		return fmt.Errorf("assign.start_note: %d outside 0-127", c.Assign.StartNote)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

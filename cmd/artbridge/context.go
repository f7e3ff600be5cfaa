package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"artbridge/internal/api"
	"artbridge/internal/config"
)

type commandContext struct {
	configFlag *string
	portFlag   *int

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, portFlag *int) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		portFlag:   portFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// daemonAddress resolves the host and port a client command should target.
// The --port flag wins, then the configured port; a port of 0 falls back to
// the first port of the automatic scan range.
func (c *commandContext) daemonAddress() (string, int, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", 0, err
	}
	host := cfg.Server.Bind
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	port := cfg.Server.Port
	if c.portFlag != nil && *c.portFlag != 0 {
		port = *c.portFlag
	}
	if port == 0 {
		port = config.BasePort
	}
	return host, port, nil
}

func (c *commandContext) apiClient() (*api.Client, error) {
	host, port, err := c.daemonAddress()
	if err != nil {
		return nil, err
	}
	return api.NewClient(host, port), nil
}

func (c *commandContext) bridgeURL() (string, error) {
	host, port, err := c.daemonAddress()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ws://%s:%d/ws", host, port), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

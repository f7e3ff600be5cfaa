package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"artbridge/internal/daemon"
	"artbridge/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var foreground bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bridge daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			outputs := []string{filepath.Join(cfg.Logging.LogDir, "artbridge.log")}
			if foreground {
				outputs = append(outputs, "stderr")
			}
			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: outputs,
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			d, err := daemon.New(cfg, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := d.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "artbridge listening on port %d\n", d.Port())

			<-runCtx.Done()
			d.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&foreground, "foreground", true, "Log to stderr in addition to the log file")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artbridge/internal/bridge"
	"artbridge/internal/logging"
	"artbridge/internal/midi"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Follow bridge traffic as a display client",
		Long:  "Connect as a display client and print every broadcast until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := ctx.bridgeURL()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			client := bridge.NewClient(url, "", func(msg *bridge.Inbound) {
				printBridgeMessage(out, msg)
			}, logging.NewNop())

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "Monitoring %s (Ctrl-C to stop)\n", url)
			if err := client.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func printBridgeMessage(out io.Writer, msg *bridge.Inbound) {
	switch msg.Type {
	case bridge.TypeConnected:
		fmt.Fprintln(out, "connected")
	case bridge.TypeTrack:
		fmt.Fprintf(out, "track: %s\n", msg.TrackName)
	case bridge.TypeSetChange:
		fmt.Fprintf(out, "set change: %d\n", msg.ArticulationSetID)
	case bridge.TypeMIDI:
		if status, data1, data2, ok := msg.MIDIBytes(); ok {
			fmt.Fprintf(out, "midi: %s\n", midi.Classify(status, data1, data2))
		}
	default:
		fmt.Fprintf(out, "%s\n", msg.Type)
	}
}

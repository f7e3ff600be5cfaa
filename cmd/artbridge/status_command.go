package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of a running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("daemon unreachable: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, status)
			}

			rows := [][]string{
				{"Running", yesNo(status.Running)},
				{"Port", fmt.Sprintf("%d", status.Port)},
				{"Sessions", fmt.Sprintf("%d", status.Sessions)},
				{"MIDI output", orDash(status.OutputPort)},
				{"MIDI input", orDash(status.InputPort)},
				{"Track", orDash(status.Track)},
				{"Articulation set", orDash(status.SetName)},
				{"Articulations", fmt.Sprintf("%d", status.Articulations)},
				{"Library", status.LibraryDir},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

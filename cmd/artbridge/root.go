package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var portFlag int

	ctx := newCommandContext(&configFlag, &portFlag)

	rootCmd := &cobra.Command{
		Use:           "artbridge",
		Short:         "Articulation keyswitch bridge for DAW tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Bridge port of the target daemon")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSetsCommand(ctx))
	rootCmd.AddCommand(newMIDICommand(ctx))
	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newTrackCommand(ctx))
	rootCmd.AddCommand(newMonitorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

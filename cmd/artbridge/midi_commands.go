package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"artbridge/internal/artset"
	"artbridge/internal/midi"
)

func newMIDICommand(ctx *commandContext) *cobra.Command {
	midiCmd := &cobra.Command{
		Use:   "midi",
		Short: "MIDI port utilities",
	}

	midiCmd.AddCommand(newMIDIPortsCommand())
	midiCmd.AddCommand(newMIDISendCommand(ctx))
	midiCmd.AddCommand(newMIDIClassifyCommand())

	return midiCmd
}

func newMIDIPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "ports",
		Short:       "List system MIDI ports",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer midi.CloseDriver()

			var rows [][]string
			for _, name := range midi.OutputPortNames() {
				rows = append(rows, []string{"output", name})
			}
			for _, name := range midi.InputPortNames() {
				rows = append(rows, []string{"input", name})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No MIDI ports available.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Direction", "Port"}, rows))
			return nil
		},
	}
}

func newMIDISendCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <status> <data1> [data2]",
		Short: "Send one raw MIDI message to the configured output",
		Long:  "Send one raw MIDI message. Values accept decimal or 0x-prefixed hex.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			t, err := parseTriggerArgs(args)
			if err != nil {
				return err
			}

			defer midi.CloseDriver()
			out, err := midi.OpenOutput(cfg.MIDI.OutputPort)
			if err != nil {
				return err
			}
			defer out.Close()

			applied := midi.Apply(t, cfg.GlobalChannel(), cfg.MIDI.ApplyChannel)
			msg := []byte{applied.Status, applied.Data1, applied.Data2}
			if err := out.Send(msg); err != nil {
				return fmt.Errorf("send to %s: %w", out.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s.\n",
				midi.Classify(applied.Status, applied.Data1, applied.Data2), out.Name())
			return nil
		},
	}
	return cmd
}

func newMIDIClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "classify <status> <data1> [data2]",
		Short:       "Describe a raw MIDI message",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTriggerArgs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), midi.Classify(t.Status, t.Data1, t.Data2))
			return nil
		},
	}
}

func parseTriggerArgs(args []string) (artset.Trigger, error) {
	status, err := parseByteArg(args[0], 255)
	if err != nil {
		return artset.Trigger{}, fmt.Errorf("status: %w", err)
	}
	data1, err := parseByteArg(args[1], 127)
	if err != nil {
		return artset.Trigger{}, fmt.Errorf("data1: %w", err)
	}
	var data2 byte
	if len(args) > 2 {
		data2, err = parseByteArg(args[2], 127)
		if err != nil {
			return artset.Trigger{}, fmt.Errorf("data2: %w", err)
		}
	}
	return artset.Trigger{Status: status, Data1: data1, Data2: data2}, nil
}

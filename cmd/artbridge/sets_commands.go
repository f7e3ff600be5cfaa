package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"artbridge/internal/api"
	"artbridge/internal/artset"
	"artbridge/internal/catalogue"
	"artbridge/internal/logging"
	"artbridge/internal/resolve"
)

func newSetsCommand(ctx *commandContext) *cobra.Command {
	setsCmd := &cobra.Command{
		Use:   "sets",
		Short: "Inspect the articulation-set library",
	}

	setsCmd.AddCommand(newSetsListCommand(ctx))
	setsCmd.AddCommand(newSetsShowCommand(ctx))
	setsCmd.AddCommand(newSetsResolveCommand(ctx))

	return setsCmd
}

func (c *commandContext) catalogue() (*catalogue.Catalogue, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalogue.New(cfg.Library.Dir, cfg.Library.SearchLimit, logging.NewNop()), nil
}

func newSetsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List articulation-set files in the library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.catalogue()
			if err != nil {
				return err
			}
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			entries := cat.Search(query)

			if jsonOut {
				sets := make([]api.SetEntry, len(entries))
				for i, e := range entries {
					sets[i] = api.SetEntry{Name: e.Name, Path: e.Path}
				}
				return writeJSON(cmd, api.SetListResponse{Sets: sets})
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No articulation sets found.")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Name, e.Path}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "File"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newSetsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the articulations of one set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			set, err := loadSetByName(ctx, args[0])
			if err != nil {
				return err
			}
			// Show the set as the daemon would serve it, keyswitches filled in.
			set, err = artset.AutoAssign(set, cfg.Assign.StartNote)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, api.FromSet(set))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", set.Name, set.SourceFile)
			rows := make([][]string, len(set.Articulations))
			for i, a := range set.Articulations {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					a.Name,
					a.ShortName,
					a.Type.String(),
					formatRemote(a.Remote),
					formatOutput(a.Output),
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Name", "Short", "Type", "Keyswitch", "Output"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newSetsResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "resolve <track-name>",
		Short: "Resolve a track name against the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.catalogue()
			if err != nil {
				return err
			}
			resolver := resolve.New(cat, cfg.Assign.StartNote, logging.NewNop())
			set, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, api.CurrentResponse{Track: args[0], Set: api.FromSet(set)})
			}

			out := cmd.OutOrStdout()
			if set == nil {
				fmt.Fprintf(out, "No articulation set matches track %q.\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "Track %q resolves to %s (%d articulations, %d auto-assigned).\n",
				args[0], set.Name, len(set.Articulations), artset.CountAutoAssigned(set))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

// loadSetByName loads and parses the library set whose name matches,
// preferring an exact caseless match over a substring match.
func loadSetByName(ctx *commandContext, name string) (*artset.Set, error) {
	cat, err := ctx.catalogue()
	if err != nil {
		return nil, err
	}
	entries := cat.Search(name)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no articulation set matches %q", name)
	}
	chosen := entries[0]
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			chosen = e
			break
		}
	}

	data, err := cat.Load(chosen.Path)
	if err != nil {
		return nil, err
	}
	return artset.Parse(data, chosen.Path)
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

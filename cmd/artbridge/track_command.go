package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"nhooyr.io/websocket"

	"artbridge/internal/bridge"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "track <name>",
		Short: "Report a track selection to the daemon",
		Long:  "Connect as a track monitor, send one track change, and disconnect.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := ctx.bridgeURL()
			if err != nil {
				return err
			}

			dialCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			conn, _, err := websocket.Dial(dialCtx, url, nil)
			if err != nil {
				return fmt.Errorf("connect to daemon at %s: %w", url, err)
			}
			defer conn.Close(websocket.StatusNormalClosure, "")

			// The server's first frame is the state snapshot.
			if _, _, err := conn.Read(dialCtx); err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			for _, msg := range []any{
				bridge.Identify{Type: bridge.TypeIdentify, ClientType: bridge.ClientTypeDetector},
				bridge.TrackChange{Type: bridge.TypeTrack, TrackName: args[0]},
			} {
				data, err := json.Marshal(msg)
				if err != nil {
					return err
				}
				if err := conn.Write(dialCtx, websocket.MessageText, data); err != nil {
					return fmt.Errorf("send: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reported track %q.\n", args[0])
			return nil
		},
	}
}

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

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Round-trip a protocol ping through the bridge",
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

			snapshot, err := readBridgeFrame(dialCtx, conn)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			start := time.Now()
			data, err := json.Marshal(map[string]string{"type": bridge.TypePing})
			if err != nil {
				return err
			}
			if err := conn.Write(dialCtx, websocket.MessageText, data); err != nil {
				return fmt.Errorf("send ping: %w", err)
			}
			pong, err := readBridgeFrame(dialCtx, conn)
			if err != nil {
				return fmt.Errorf("read pong: %w", err)
			}
			if pong.Type != bridge.TypePong {
				return fmt.Errorf("unexpected reply type %q", pong.Type)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pong from %s in %s\n", url, time.Since(start).Round(time.Microsecond))
			fmt.Fprintf(out, "midi: %s (%s)\n", orDash(pong.Port), snapshot.StatusText())
			return nil
		},
	}
}

func readBridgeFrame(ctx context.Context, conn *websocket.Conn) (*bridge.Inbound, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	return bridge.Decode(data)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/cwrules/internal/api/live"
)

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Stream a game's events as they are recorded",
		Long: `Connect to the game's live socket and print each event as it is
recorded. With --count the command exits after that many events.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchGame(cmd, args[0], count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}

func watchGame(cmd *cobra.Command, id string, count int) error {
	wsURL, err := client.WebsocketURL(gamePath(id, "live"))
	if err != nil {
		return err
	}

	// Set up cancellation
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			defer func() { _ = resp.Body.Close() }()
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock the read loop on interrupt
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	if cfg.Output != outputJSON {
		out.PrintMessage(fmt.Sprintf("Watching game %s", id))
	}

	seen := 0
	for count == 0 || seen < count {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var msg live.Outbound
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("malformed message: %w", err)
		}
		if msg.Type != live.TypeEvent {
			continue
		}

		out.Print(msg)
		seen++
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

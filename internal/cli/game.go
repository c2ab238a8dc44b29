package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/cwrules/internal/api/request"
	"github.com/mcoot/cwrules/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game record commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGamePassCmd())
	cmd.AddCommand(newGameExchangeCmd())
	cmd.AddCommand(newGameChallengeCmd())
	cmd.AddCommand(newGameChallengeOffCmd())
	cmd.AddCommand(newGameChallengeBonusCmd())
	cmd.AddCommand(newGameEventsCmd())
	cmd.AddCommand(newGameTurnsCmd())
	cmd.AddCommand(newGameSummariesCmd())
	cmd.AddCommand(newGameReplayCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	path := "/api/v1/games/" + url.PathEscape(id)
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

// postEvent posts an action and prints the appended event
func postEvent(cmd *cobra.Command, path string, body any) error {
	var result response.EventResponse

	if err := client.Post(path, body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var req request.CreateGameRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&req.Players, "players", nil, "Player IDs in turn order, comma separated")
	cmd.Flags().StringVar(&req.Alphabet, "alphabet", "", "Alphabet name (default english)")
	cmd.Flags().StringVar(&req.Layout, "layout", "", "Board layout: standard, super")
	_ = cmd.MarkFlagRequired("players")
	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game and its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	var req request.PlayRequest
	var tiles []string

	cmd := &cobra.Command{
		Use:   "play <id> [<coords> <word>]",
		Short: "Record a play, in notation or as tiles",
		Long: `Record a play, either in notation or as tiles:

  cwrules game play GAME01 --player alice 8E RETAINS
  cwrules game play GAME01 --player bob --tile 5,7,G --tile 6,7,O --tile 8,7,T

In notation '.' marks a board letter the play runs through.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("want a game ID, optionally followed by coordinates and word")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 3 {
				req.Coords, req.Word = args[1], args[2]
			}
			if len(tiles) > 0 {
				parsed, err := parseTiles(tiles)
				if err != nil {
					return err
				}
				req.Tiles = parsed
			}
			if req.Coords == "" && len(req.Tiles) == 0 {
				return fmt.Errorf("give coordinates and word, or --tile")
			}

			return postEvent(cmd, gamePath(args[0], "play"), req)
		},
	}

	cmd.Flags().StringVar(&req.PlayerID, "player", "", "Player making the play")
	cmd.Flags().StringVar(&req.Rack, "rack", "", "Rack before the play, checked against the tiles")
	cmd.Flags().StringArrayVar(&tiles, "tile", nil, "Tile as row,col,LETTER (repeatable)")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newGamePassCmd() *cobra.Command {
	var req request.PassRequest

	cmd := &cobra.Command{
		Use:   "pass <id>",
		Short: "Record a pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postEvent(cmd, gamePath(args[0], "pass"), req)
		},
	}

	cmd.Flags().StringVar(&req.PlayerID, "player", "", "Player passing")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newGameExchangeCmd() *cobra.Command {
	var req request.ExchangeRequest

	cmd := &cobra.Command{
		Use:   "exchange <id> <tiles>",
		Short: "Record an exchange",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Tiles = args[1]
			return postEvent(cmd, gamePath(args[0], "exchange"), req)
		},
	}

	cmd.Flags().StringVar(&req.PlayerID, "player", "", "Player exchanging")
	cmd.Flags().StringVar(&req.Rack, "rack", "", "Rack before the exchange, checked against the tiles")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newGameChallengeCmd() *cobra.Command {
	var req request.ChallengeRequest

	cmd := &cobra.Command{
		Use:   "challenge <id>",
		Short: "Record an unsuccessful challenge, costing the challenger a turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postEvent(cmd, gamePath(args[0], "challenge"), req)
		},
	}

	cmd.Flags().StringVar(&req.Challenger, "player", "", "Challenging player")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newGameChallengeOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge-off <id>",
		Short: "Take the last play off the board after a successful challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postEvent(cmd, gamePath(args[0], "challenge-off"), nil)
		},
	}
}

func newGameChallengeBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge-bonus <id> <points>",
		Short: "Award the last play's author a challenge bonus",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bonus, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid bonus: %w", err)
			}
			return postEvent(cmd, gamePath(args[0], "challenge-bonus"), request.ChallengeBonusRequest{Bonus: bonus})
		},
	}
}

func newGameEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <id>",
		Short: "List a game's events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.EventsResponse

			if err := client.Get(gamePath(args[0], "events"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameTurnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turns <id>",
		Short: "List a game's events grouped into turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TurnsResponse

			if err := client.Get(gamePath(args[0], "turns"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameSummariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summaries <id>",
		Short: "Describe each event in a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SummariesResponse

			if err := client.Get(gamePath(args[0], "summaries"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <id>",
		Short: "Rebuild the board, scores and unseen tiles from the events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ReplayResponse

			if err := client.Get(gamePath(args[0], "replay"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game with its board and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game deleted")
			return nil
		},
	}
}

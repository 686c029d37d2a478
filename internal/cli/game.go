package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	var gameID, playerID string
	var move int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Submit a move (-1, 0 or 1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"game_id":   gameID,
				"player_id": playerID,
				"move":      move,
			}
			var result Game

			if err := client.Post("/api/v1/games/moves", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (required)")
	cmd.Flags().StringVar(&playerID, "player", "", "Player id (required)")
	cmd.Flags().IntVar(&move, "move", 0, "Move: -1, 0 or 1 (required)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("move")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

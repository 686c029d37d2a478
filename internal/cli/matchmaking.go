package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

func newMatchmakingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "matchmaking",
		Aliases: []string{"mm"},
		Short:   "Matchmaking commands",
	}

	cmd.AddCommand(newMatchmakingEnterCmd())
	cmd.AddCommand(newMatchmakingLeaveCmd())
	cmd.AddCommand(newMatchmakingStatusCmd())

	return cmd
}

func newMatchmakingEnterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enter <player-id>",
		Short: "Enter the matchmaking pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/matchmaking", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchmakingLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <player-id>",
		Short: "Leave the matchmaking pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/players/" + args[0] + "/matchmaking"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the matchmaking pool")
			return nil
		},
	}
}

func newMatchmakingStatusCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "status <player-id>",
		Short: "Poll matchmaking for the player's game",
		Long: `Polls the matchmaking endpoint. If the player has no active game
they are entered into the pool and reported as searching. With --wait
the command polls until a game has been formed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matchmaking?player_id=" + url.QueryEscape(args[0])
			out := NewOutput(cfg.Output)

			for {
				var result MatchmakingStatus
				if err := client.Get(path, &result); err != nil {
					return err
				}

				if !result.Searching || !wait {
					out.Print(result)
					return nil
				}

				if cfg.Verbose {
					fmt.Println("Still searching...")
				}
				time.Sleep(2 * time.Second)
			}
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Keep polling until a game is found")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameFinishCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"difficulty": difficulty}
			var result StartResult

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty tier: easy, medium, hard, expert, master, extreme, impossible (required)")
	_ = cmd.MarkFlagRequired("difficulty")

	return cmd
}

func newGameFinishCmd() *cobra.Command {
	var (
		currentMove int
		incorrects  int
		timeSeconds int
		riskMode    bool
		walkedAway  bool
		lost        bool
	)

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Finish the active game session and collect rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields the user actually set; unset fields fall
			// back to the server-held session state
			req := map[string]any{}
			if cmd.Flags().Changed("moves") {
				req["currentMove"] = currentMove
			}
			if cmd.Flags().Changed("incorrects") {
				req["incorrects"] = incorrects
			}
			if cmd.Flags().Changed("time") {
				req["timeSeconds"] = timeSeconds
			}
			if cmd.Flags().Changed("risk") {
				req["riskMode"] = riskMode
			}
			if cmd.Flags().Changed("walked-away") {
				req["walkedAway"] = walkedAway
			}
			if cmd.Flags().Changed("lost") {
				req["lost"] = lost
			}

			var result FinishResult
			if err := client.Post("/api/v1/games/finish", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&currentMove, "moves", 0, "Total moves made")
	cmd.Flags().IntVar(&incorrects, "incorrects", 0, "Incorrect moves made")
	cmd.Flags().IntVar(&timeSeconds, "time", 0, "Elapsed time in seconds")
	cmd.Flags().BoolVar(&riskMode, "risk", false, "The run continued past the base pattern")
	cmd.Flags().BoolVar(&walkedAway, "walked-away", false, "The player stopped voluntarily")
	cmd.Flags().BoolVar(&lost, "lost", false, "The run ended in a loss")

	return cmd
}

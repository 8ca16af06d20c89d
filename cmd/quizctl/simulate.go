package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/questcycle/backend/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play sessions with random answers and print the grades",
	Long:  "Plays full sessions through the session controller. Answers are recorded in the configured history; use --backend memory to leave it untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rounds, _ := cmd.Flags().GetInt("rounds")
		seed, _ := cmd.Flags().GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		_, err = simulation.Run(cmd.Context(), a.Sessions, filterFromFlags(cmd), rounds, rand.New(rand.NewSource(seed)), cmd.OutOrStdout())
		return err
	},
}

func init() {
	addFilterFlags(simulateCmd)
	simulateCmd.Flags().Int("rounds", 1, "Number of sessions to play")
	simulateCmd.Flags().Int64("seed", 0, "Random seed for answers (0 uses the clock)")
}

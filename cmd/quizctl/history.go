package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or reset the answer history",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List answered questions, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		entries := a.History.Entries()
		fmt.Fprintf(out, "%d/%d questions answered\n", len(entries), a.History.Limit())
		for _, e := range entries {
			fmt.Fprintf(out, "%-8s %s\n", e.QuestionID, e.AnsweredAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

var historyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every answered question",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n := a.History.Len()
		if err := a.History.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d entries\n", n)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyResetCmd)
}

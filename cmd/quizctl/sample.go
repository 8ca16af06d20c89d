package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/questcycle/backend/internal/service"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw a session for a filter without grading it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.Sessions.ApplyFilter(cmd.Context(), filterFromFlags(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pool: %d available, %d answered, %d eligible\n",
			view.Stats.Available, view.Stats.Answered, view.Stats.Eligible)
		if view.Status != service.StatusReady {
			fmt.Fprintf(out, "%s: %s\n", view.Status, view.Message)
			return nil
		}
		if view.CycleReset {
			fmt.Fprintln(out, "every question was answered; history cleared")
		}
		for i, q := range view.Questions {
			fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, q.ID, summarize(q.Statement, 70))
		}
		return nil
	},
}

func init() {
	addFilterFlags(sampleCmd)
}

func summarize(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

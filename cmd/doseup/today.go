package main

import (
	"fmt"
	"io"
	"time"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/schedule"

	"github.com/spf13/cobra"
)

func todayCmd() *cobra.Command {
	var (
		ref parents.Ref
		at  string
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's dose schedule for a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ref.Valid() {
				return fmt.Errorf("--admin and --parent are required")
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.close()

			a, err := rt.app()
			if err != nil {
				return err
			}

			loc := a.Parents.LocationOf(cmd.Context(), ref, a.Location)
			now := time.Now().In(loc)
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC3339: %w", err)
				}
				now = t.In(loc)
			}

			s, err := schedule.Today(cmd.Context(), schedule.Deps{
				Medicines: a.Medicines,
				DoseLogs:  a.DoseLogs,
				Parents:   a.Parents,
				Fallback:  a.Location,
			}, ref, now)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref.AdminID, "admin", "", "admin (caregiver) id")
	cmd.Flags().StringVar(&ref.ParentID, "parent", "", "parent id")
	cmd.Flags().StringVar(&at, "at", "", "reference instant (RFC3339), defaults to now")
	return cmd
}

func printSchedule(w io.Writer, s schedule.Schedule) {
	fmt.Fprintf(w, "%s  %d/%d taken (%.0f%%)\n", s.Date, s.Progress.Taken, s.Progress.Total, s.Progress.Percentage)
	for _, e := range s.Entries {
		mark := " "
		if e.Taken {
			mark = "x"
		}
		state := "passed"
		if e.Upcoming {
			state = "upcoming"
		}
		fmt.Fprintf(w, "[%s] %-9s %-24s %s\n", mark, e.Display, e.MedicineName, state)
	}
	if s.Next != nil {
		fmt.Fprintf(w, "next: %s %s\n", s.Next.Display, s.Next.MedicineName)
	}
}

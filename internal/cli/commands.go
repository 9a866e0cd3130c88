package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/jobdash/animate"
	"github.com/adamwoolhether/jobdash/dashboard"
	"github.com/adamwoolhether/jobdash/shortcut"
)

const countUpDuration = 600 * time.Millisecond

func newStatsCmd(s *state) *cobra.Command {
	var countUp bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show application counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := s.app.Dashboard.Stats(cmd.Context())
			if err != nil {
				return err
			}

			total := 0
			for _, n := range st.StatusCounts {
				total += n
			}

			if countUp {
				out := cmd.OutOrStdout()
				err := animate.Value(cmd.Context(), 0, total, countUpDuration, func(v int) {
					fmt.Fprintf(out, "\rApplications: %d", v)
				})
				fmt.Fprintln(out)
				if err != nil {
					return err
				}
			}

			renderStats(cmd.OutOrStdout(), st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&countUp, "animate", false, "count the total up before printing the table")

	return cmd
}

func newFollowupsCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "followups",
		Short: "List applications due for a follow-up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := s.app.Dashboard.Followups(cmd.Context())
			if err != nil {
				return err
			}

			if len(fs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No follow-ups due.")
				return nil
			}
			renderFollowups(cmd.OutOrStdout(), fs)
			return nil
		},
	}
}

func newTimelineCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <job_id>",
		Short: "Show the status history of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := s.app.Dashboard.Timeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderTimeline(cmd.OutOrStdout(), tl)
			return nil
		},
	}
}

func newInterviewsCmd(s *state) *cobra.Command {
	var (
		all  bool
		days int
	)

	cmd := &cobra.Command{
		Use:   "interviews",
		Short: "List scheduled interviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ivs, err := s.app.Dashboard.Interviews(cmd.Context(), !all, days)
			if err != nil {
				return err
			}

			renderInterviews(cmd.OutOrStdout(), ivs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include past interviews")
	cmd.Flags().IntVar(&days, "days", dashboard.DefaultUpcomingDays, "how many days ahead to look")

	return cmd
}

func newShortcutsCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "List the dashboard keyboard shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := shortcut.Defaults(nil, s.app.Notifier.Clear)
			renderShortcuts(cmd.OutOrStdout(), r.Bindings())
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/jobdash/csvexport"
	"github.com/adamwoolhether/jobdash/dashboard"
	"github.com/adamwoolhether/jobdash/notify"
)

func newAppsCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List, export and update applications",
	}

	cmd.AddCommand(
		newAppsListCmd(s),
		newAppsExportCmd(s),
		newAppsUpdateCmd(s),
		newAppsBulkUpdateCmd(s),
		newAppsCopyURLCmd(s),
	)

	return cmd
}

type filterFlags struct {
	status string
	search string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "", "only applications in this status")
	cmd.Flags().StringVar(&f.search, "search", "", "only applications whose company or role contains this text")
}

// query applies the flags to the app's filter and returns the result.
func (f *filterFlags) query(s *state) dashboard.Query {
	filter := s.app.Filter
	filter.SetStatus(dashboard.Status(strings.ToUpper(f.status)))
	filter.SetSearch(f.search)

	return filter.Query()
}

func newAppsListCmd(s *state) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := s.app.Dashboard.Applications(cmd.Context(), ff.query(s))
			if err != nil {
				return err
			}

			renderApplications(cmd.OutOrStdout(), apps)
			return nil
		},
	}
	ff.register(cmd)

	return cmd
}

func newAppsExportCmd(s *state) *cobra.Command {
	var (
		ff  filterFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export applications as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := s.app.Dashboard.ExportApplicationsFile(cmd.Context(), out, ff.query(s))
			if err != nil {
				s.app.Notifier.Show(err.Error(), notify.Danger, 0)
				return err
			}

			s.app.Notifier.Show(fmt.Sprintf("Exported %d applications to %s", n, out), notify.Success, -1)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", csvexport.DefaultFilename, "destination file")

	return cmd
}

func newAppsUpdateCmd(s *state) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "update <job_id> <status>",
		Short: "Move an application to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := s.app.Dashboard.UpdateStatus(cmd.Context(), dashboard.StatusUpdate{
				JobID:  args[0],
				Status: dashboard.Status(strings.ToUpper(args[1])),
				Notes:  notes,
			})
			if err != nil {
				return err
			}

			msg := change.Message
			if msg == "" {
				msg = fmt.Sprintf("%s is now %s", change.JobID, change.Status)
			}
			s.app.Notifier.Show(msg, notify.Success, -1)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "note recorded with the change")

	return cmd
}

func newAppsBulkUpdateCmd(s *state) *cobra.Command {
	var (
		status string
		notes  string
	)

	cmd := &cobra.Command{
		Use:   "bulk-update <job_id>...",
		Short: "Move several applications to one status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := make([]dashboard.StatusUpdate, len(args))
			for i, id := range args {
				updates[i] = dashboard.StatusUpdate{
					JobID:  id,
					Status: dashboard.Status(strings.ToUpper(status)),
					Notes:  notes,
				}
			}

			outcomes, err := s.app.Dashboard.BulkUpdateStatus(cmd.Context(), updates)
			done := renderBulkOutcomes(cmd.OutOrStdout(), outcomes)
			s.app.Notifier.Show(fmt.Sprintf("Updated %d of %d applications", done, len(args)), notify.Info, -1)

			return err
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&notes, "notes", "", "note recorded with each change")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func newAppsCopyURLCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-url <job_id>",
		Short: "Copy an application's posting URL to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := s.app.Dashboard.Applications(cmd.Context(), dashboard.Query{})
			if err != nil {
				return err
			}

			for _, a := range apps {
				if a.JobID != args[0] {
					continue
				}
				if a.ApplyURL == "" {
					return fmt.Errorf("application %s has no apply url", a.JobID)
				}
				return s.app.Clipboard.Copy(cmd.Context(), a.ApplyURL)
			}

			return fmt.Errorf("application %s: %w", args[0], errNotFound)
		},
	}
}

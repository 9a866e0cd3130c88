package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/adamwoolhether/jobdash/batch"
	"github.com/adamwoolhether/jobdash/dashboard"
	"github.com/adamwoolhether/jobdash/format"
	"github.com/adamwoolhether/jobdash/shortcut"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

func renderStats(out io.Writer, st dashboard.Stats) {
	statuses := make([]string, 0, len(st.StatusCounts))
	total := 0
	for s, n := range st.StatusCounts {
		statuses = append(statuses, string(s))
		total += n
	}
	slices.Sort(statuses)

	t := newTable(out)
	t.AppendHeader(table.Row{"Status", "Applications"})
	for _, s := range statuses {
		t.AppendRow(table.Row{format.StatusLabel(s), st.StatusCounts[dashboard.Status(s)]})
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()

	fmt.Fprintf(out, "Companies: %d\n", st.CompanyCount)
}

func renderApplications(out io.Writer, apps []dashboard.Application) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Job ID", "Company", "Role", "Status", "Submitted", "Follow-up", "Overdue"})
	for _, a := range apps {
		overdue := "-"
		if a.DaysOverdue > 0 {
			overdue = strconv.Itoa(a.DaysOverdue) + "d"
		}
		t.AppendRow(table.Row{
			a.JobID,
			a.Company,
			a.Role,
			format.StatusLabel(string(a.Status)),
			format.Date(a.SubmittedAt),
			format.Date(a.NextFollowupAt),
			overdue,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Count", len(apps)})
	t.Render()
}

// renderBulkOutcomes prints one row per update and returns how many succeeded.
func renderBulkOutcomes(out io.Writer, outcomes []dashboard.BulkOutcome) int {
	done := 0

	t := newTable(out)
	t.AppendHeader(table.Row{"Job ID", "Status", "Result"})
	for _, o := range outcomes {
		result := "updated"
		switch {
		case errors.Is(o.Err, batch.ErrShutdown):
			result = "skipped"
		case o.Err != nil:
			result = o.Err.Error()
		default:
			done++
		}
		t.AppendRow(table.Row{o.Update.JobID, format.StatusLabel(string(o.Update.Status)), result})
	}
	t.Render()

	return done
}

func renderFollowups(out io.Writer, fs []dashboard.Followup) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Job ID", "Company", "Role", "Status", "Due"})
	for _, f := range fs {
		t.AppendRow(table.Row{f.JobID, f.Company, f.Role, format.StatusLabel(string(f.Status)), format.Date(f.NextFollowupAt)})
	}
	t.Render()
}

func renderTimeline(out io.Writer, tl dashboard.Timeline) {
	fmt.Fprintf(out, "%s - %s (%s)\n", tl.Company, tl.Role, format.StatusLabel(string(tl.CurrentStatus)))

	t := newTable(out)
	t.AppendHeader(table.Row{"When", "Status", "Notes"})
	for _, e := range tl.Entries {
		t.AppendRow(table.Row{format.DateTime(e.Timestamp), format.StatusLabel(string(e.Status)), e.Notes})
	}
	t.AppendFooter(table.Row{"", "Changes", tl.TotalChanges})
	t.Render()
}

func renderInterviews(out io.Writer, ivs []dashboard.Interview) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Company", "Role", "Type", "When", "Status"})
	for _, iv := range ivs {
		t.AppendRow(table.Row{iv.ID, iv.Company, iv.Role, iv.InterviewType, format.DateTime(iv.ScheduledAt), iv.Status})
	}
	t.Render()
}

func renderShortcuts(out io.Writer, bs []shortcut.Binding) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Keys", "Action"})
	for _, b := range bs {
		t.AppendRow(table.Row{b.Chord.String(), b.Description})
	}
	t.Render()
}

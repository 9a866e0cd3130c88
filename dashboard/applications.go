package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/jobdash/batch"
	"github.com/adamwoolhether/jobdash/client"
	"github.com/adamwoolhether/jobdash/csvexport"
)

// Stats fetches the dashboard summary.
func (d *Dashboard) Stats(ctx context.Context) (Stats, error) {
	type response struct {
		envelope
		Stats
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("stats"), nil, nil)
	if err != nil {
		return Stats{}, err
	}

	return resp.Stats, nil
}

// Applications lists applications matching q, newest submission first.
func (d *Dashboard) Applications(ctx context.Context, q Query) ([]Application, error) {
	type response struct {
		envelope
		Applications []Application `json:"applications"`
		Count        int           `json:"count"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("applications"), q.params(), nil)
	if err != nil {
		return nil, err
	}

	return resp.Applications, nil
}

// UpdateStatus moves one application to a new status. The backend rejects
// transitions it does not allow.
func (d *Dashboard) UpdateStatus(ctx context.Context, u StatusUpdate) (StatusChange, error) {
	if err := checkInput("status update", u); err != nil {
		return StatusChange{}, err
	}

	type response struct {
		envelope
		App StatusChange `json:"app"`
	}

	resp, err := call[response](ctx, d, http.MethodPost, api("update-status"), nil, u)
	if err != nil {
		return StatusChange{}, err
	}

	resp.App.Message = resp.Message

	return resp.App, nil
}

// BulkUpdateStatus applies updates concurrently. Outcomes line up with
// updates and every failure is also joined into the returned error.
// An authentication failure or the end of ctx stops updates that have not
// started; they report [batch.ErrShutdown] or the context error.
func (d *Dashboard) BulkUpdateStatus(ctx context.Context, updates []StatusUpdate) ([]BulkOutcome, error) {
	out := make([]BulkOutcome, len(updates))
	results := make([]*batch.Result, len(updates))
	q := batch.NewQueue(d.concurrency)

	stop := context.AfterFunc(ctx, q.Shutdown)
	defer stop()

	for i, u := range updates {
		out[i].Update = u
		results[i] = q.Go(ctx, func(ctx context.Context) error {
			change, err := d.UpdateStatus(ctx, u)
			if err != nil {
				if errors.Is(err, client.ErrAuthFailure) {
					q.Shutdown()
				}
				return fmt.Errorf("updating %s: %w", u.JobID, err)
			}
			out[i].Change = change
			return nil
		})
	}

	for i, r := range results {
		out[i].Err = r.Err()
		if !errors.Is(out[i].Err, client.ErrAuthFailure) {
			continue
		}
		for _, pending := range results[i+1:] {
			select {
			case <-pending.Done():
			default:
				pending.Cancel()
			}
		}
	}

	err := q.Wait()
	d.logger.Info("bulk status update", "count", len(updates), "failed", err != nil)

	return out, err
}

// Followups lists applications due for a follow-up.
func (d *Dashboard) Followups(ctx context.Context) ([]Followup, error) {
	type response struct {
		envelope
		Followups []Followup `json:"followups"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("followups"), nil, nil)
	if err != nil {
		return nil, err
	}

	return resp.Followups, nil
}

// Timeline fetches the status history of one application.
func (d *Dashboard) Timeline(ctx context.Context, jobID string) (Timeline, error) {
	type response struct {
		envelope
		Timeline
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("timeline", jobID), nil, nil)
	if err != nil {
		return Timeline{}, err
	}

	return resp.Timeline, nil
}

// ValidTransitions lists the statuses an application may move to from current.
func (d *Dashboard) ValidTransitions(ctx context.Context, current Status) ([]Status, error) {
	type response struct {
		envelope
		Valid []Status `json:"valid_transitions"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("valid-transitions", string(current)), nil, nil)
	if err != nil {
		return nil, err
	}

	return resp.Valid, nil
}

// ExportApplications writes the applications matching q to w as CSV and
// returns how many rows were written.
func (d *Dashboard) ExportApplications(ctx context.Context, w io.Writer, q Query) (int, error) {
	header, rows, err := d.exportRows(ctx, q)
	if err != nil {
		return 0, err
	}

	if err := csvexport.Write(w, header, rows); err != nil {
		return 0, fmt.Errorf("exporting applications: %w", err)
	}

	return len(rows), nil
}

// ExportApplicationsFile is like [Dashboard.ExportApplications] but
// writes atomically to path, [csvexport.DefaultFilename] when empty.
func (d *Dashboard) ExportApplicationsFile(ctx context.Context, path string, q Query) (int, error) {
	header, rows, err := d.exportRows(ctx, q)
	if err != nil {
		return 0, err
	}

	if err := csvexport.WriteFile(path, header, rows, d.logger.With(slog.String("export", "applications"))); err != nil {
		return 0, fmt.Errorf("exporting applications: %w", err)
	}

	return len(rows), nil
}

func (d *Dashboard) exportRows(ctx context.Context, q Query) ([]string, []map[string]any, error) {
	apps, err := d.Applications(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	header, rows, err := csvexport.Records(apps)
	if err != nil {
		return nil, nil, fmt.Errorf("flattening applications: %w", err)
	}

	return header, rows, nil
}

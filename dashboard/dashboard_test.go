package dashboard_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/jobdash/batch"
	"github.com/adamwoolhether/jobdash/client"
	"github.com/adamwoolhether/jobdash/dashboard"
	"github.com/adamwoolhether/jobdash/ratelimit"
	"github.com/adamwoolhether/jobdash/validate"
)

// backend is a minimal stand-in for the dashboard server.
type backend struct {
	mu      sync.Mutex
	apps    map[string]dashboard.Application
	queries []string
	updated []string
	hits    int
}

func newBackend() *backend {
	return &backend{
		apps: map[string]dashboard.Application{
			"job-1": {JobID: "job-1", Company: "Acme, Inc.", Role: "Backend Engineer", Status: dashboard.StatusSubmitted, SubmittedAt: "2024-03-01T10:00:00"},
			"job-2": {JobID: "job-2", Company: "Globex", Role: "SRE", Status: dashboard.StatusInterview, SubmittedAt: "2024-02-20T09:00:00", DaysOverdue: 2},
		},
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"summary":       map[string]any{"total": 2},
			"status_counts": map[string]int{"SUBMITTED": 1, "INTERVIEW": 1},
			"company_count": 2,
			"timestamp":     "2024-03-10T12:00:00",
		})
	})

	mux.HandleFunc("GET /api/applications", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.RawQuery)
		var out []dashboard.Application
		for _, id := range []string{"job-1", "job-2"} {
			a := b.apps[id]
			if s := r.URL.Query().Get("status"); s != "" && string(a.Status) != s {
				continue
			}
			if s := strings.ToLower(r.URL.Query().Get("search")); s != "" &&
				!strings.Contains(strings.ToLower(a.Company), s) && !strings.Contains(strings.ToLower(a.Role), s) {
				continue
			}
			out = append(out, a)
		}
		b.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "applications": out, "count": len(out)})
	})

	mux.HandleFunc("POST /api/update-status", func(w http.ResponseWriter, r *http.Request) {
		var in dashboard.StatusUpdate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": err.Error()})
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		b.updated = append(b.updated, in.JobID)
		if in.JobID == "job-revoked" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Session expired"})
			return
		}

		a, ok := b.apps[in.JobID]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Application not found"})
			return
		}
		if a.Status == dashboard.StatusSubmitted && in.Status == dashboard.StatusAccepted {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid transition: SUBMITTED → ACCEPTED"})
			return
		}

		a.Status = in.Status
		a.Notes = in.Notes
		b.apps[in.JobID] = a

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Status updated to " + string(in.Status),
			"app":     map[string]any{"job_id": in.JobID, "status": in.Status, "notes": in.Notes, "next_followup_at": "2024-03-17T10:00:00"},
		})
	})

	mux.HandleFunc("GET /api/timeline/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "job-2" {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Application not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"job_id":         "job-2",
			"company":        "Globex",
			"role":           "SRE",
			"current_status": "INTERVIEW",
			"timeline": []map[string]any{
				{"status": "SUBMITTED", "timestamp": "2024-02-20T09:00:00", "date": "Feb 20, 09:00", "notes": ""},
				{"status": "INTERVIEW", "timestamp": "2024-03-01T15:30:00", "date": "Mar 01, 15:30", "notes": "onsite"},
			},
			"total_changes": 2,
		})
	})

	mux.HandleFunc("GET /api/valid-transitions/{status}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":           true,
			"current_status":    r.PathValue("status"),
			"valid_transitions": []string{"VIEWED", "INTERVIEW", "REJECTED"},
		})
	})

	mux.HandleFunc("GET /api/followups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "tracker unavailable"})
	})

	mux.HandleFunc("GET /api/interviews", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.RawQuery)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"count":      1,
			"interviews": []map[string]any{{"id": "int_job-2_0", "job_id": "job-2", "company": "Globex", "status": "scheduled", "feedback": nil}},
		})
	})

	mux.HandleFunc("POST /api/interviews", func(w http.ResponseWriter, r *http.Request) {
		var in dashboard.NewInterview
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "interview_id": "int_" + in.JobID + "_1"})
	})

	mux.HandleFunc("GET /api/interviews/email-template", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.RawQuery)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"template": map[string]any{"subject": "Thank you - " + r.URL.Query().Get("role"), "body": "Hi", "template_name": "thank_you"},
		})
	})

	mux.HandleFunc("GET /api/interviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "int_job-2_0" {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Interview not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"interview": map[string]any{"id": "int_job-2_0", "job_id": "job-2", "company": "Globex", "interview_type": "technical", "status": "confirmed"},
		})
	})

	mux.HandleFunc("POST /api/interviews/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var in dashboard.InterviewStatusUpdate
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"interview": map[string]any{"id": r.PathValue("id"), "status": in.Status, "feedback": in.Feedback},
		})
	})

	mux.HandleFunc("GET /api/interviews/{id}/prep-materials", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"materials": map[string]any{
				"interview_type":   r.URL.Query().Get("interview_type"),
				"questions_to_ask": []string{"What does on-call look like for " + r.URL.Query().Get("role_family") + "?"},
			},
		})
	})

	mux.HandleFunc("GET /api/interviews/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"statistics": map[string]any{"total_interviews": 3, "by_type": map[string]int{"technical": 2, "hr": 1}, "upcoming_count": 1},
		})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits++
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func setup(t *testing.T, clientOpts ...client.Option) (*dashboard.Dashboard, *backend) {
	t.Helper()

	b := newBackend()
	ts := httptest.NewServer(b.handler())
	t.Cleanup(ts.Close)

	c, err := client.Build(clientOpts...)
	if err != nil {
		t.Fatalf("building client: %v", err)
	}

	d, err := dashboard.New(c, ts.URL)
	if err != nil {
		t.Fatalf("building dashboard: %v", err)
	}

	return d, b
}

func TestDashboard_RequestPaths(t *testing.T) {
	c, err := client.Build()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("errorNamesAbsolutePath", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		base := ts.URL
		ts.Close()

		d, err := dashboard.New(c, base)
		if err != nil {
			t.Fatal(err)
		}

		_, err = d.Stats(t.Context())
		if err == nil || !strings.Contains(err.Error(), "GET /api/stats") {
			t.Errorf("expected error to name GET /api/stats, got %v", err)
		}
		if got := d.BaseURL().Path; got != "/" {
			t.Errorf("base path = %q, want /", got)
		}
	})

	t.Run("basePathPrefix", func(t *testing.T) {
		paths := make(chan string, 1)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.Path
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		}))
		defer ts.Close()

		d, err := dashboard.New(c, ts.URL+"/tracker")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := d.Timeline(t.Context(), "job-2"); err != nil {
			t.Fatal(err)
		}
		if got := <-paths; got != "/tracker/api/timeline/job-2" {
			t.Errorf("path = %q", got)
		}
	})
}

func TestNew_Invalid(t *testing.T) {
	c, err := client.Build()
	if err != nil {
		t.Fatal(err)
	}

	testCases := map[string]struct {
		c    *client.Client
		base string
		opts []dashboard.Option
	}{
		"nilClient":   {base: "http://localhost:5000"},
		"relative":    {c: c, base: "/api"},
		"badURL":      {c: c, base: "http://[::1"},
		"zeroWorkers": {c: c, base: "http://localhost:5000", opts: []dashboard.Option{dashboard.WithConcurrency(0)}},
		"nilLogger":   {c: c, base: "http://localhost:5000", opts: []dashboard.Option{dashboard.WithLogger(nil)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := dashboard.New(tc.c, tc.base, tc.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDashboard_Stats(t *testing.T) {
	d, _ := setup(t)

	got, err := d.Stats(t.Context())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	exp := dashboard.Stats{
		Summary:      map[string]any{"total": float64(2)},
		StatusCounts: map[dashboard.Status]int{dashboard.StatusSubmitted: 1, dashboard.StatusInterview: 1},
		CompanyCount: 2,
		Timestamp:    "2024-03-10T12:00:00",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_Applications(t *testing.T) {
	d, b := setup(t)

	testCases := map[string]struct {
		q     dashboard.Query
		exp   []string
		query string
	}{
		"all":      {exp: []string{"job-1", "job-2"}, query: ""},
		"byStatus": {q: dashboard.Query{Status: dashboard.StatusInterview}, exp: []string{"job-2"}, query: "status=INTERVIEW"},
		"bySearch": {q: dashboard.Query{Search: "acme"}, exp: []string{"job-1"}, query: "search=acme"},
		"none":     {q: dashboard.Query{Status: dashboard.StatusOffer, Search: "x"}, exp: nil, query: "search=x&status=OFFER"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			apps, err := d.Applications(t.Context(), tc.q)
			if err != nil {
				t.Fatal(err)
			}

			var ids []string
			for _, a := range apps {
				ids = append(ids, a.JobID)
			}
			if diff := cmp.Diff(tc.exp, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}

			b.mu.Lock()
			last := b.queries[len(b.queries)-1]
			b.mu.Unlock()
			if last != tc.query {
				t.Errorf("query = %q, want %q", last, tc.query)
			}
		})
	}
}

func TestDashboard_UpdateStatus(t *testing.T) {
	d, _ := setup(t)

	got, err := d.UpdateStatus(t.Context(), dashboard.StatusUpdate{JobID: "job-1", Status: dashboard.StatusViewed, Notes: "recruiter opened"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	exp := dashboard.StatusChange{
		JobID:          "job-1",
		Status:         dashboard.StatusViewed,
		NextFollowupAt: "2024-03-17T10:00:00",
		Notes:          "recruiter opened",
		Message:        "Status updated to VIEWED",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("change mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_Errors(t *testing.T) {
	d, b := setup(t)

	t.Run("invalidTransition", func(t *testing.T) {
		_, err := d.UpdateStatus(t.Context(), dashboard.StatusUpdate{JobID: "job-1", Status: dashboard.StatusAccepted})

		var apiErr *dashboard.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", apiErr.StatusCode)
		}
		if apiErr.Message != "Invalid transition: SUBMITTED → ACCEPTED" {
			t.Errorf("message = %q", apiErr.Message)
		}
		if !errors.Is(err, dashboard.ErrInvalidRequest) || !errors.Is(err, client.ErrUnexpectedStatusCode) {
			t.Errorf("expected invalid request chain, got %v", err)
		}
	})

	t.Run("notFound", func(t *testing.T) {
		_, err := d.Timeline(t.Context(), "job-404")
		if !errors.Is(err, dashboard.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("successFalse", func(t *testing.T) {
		_, err := d.Followups(t.Context())

		var apiErr *dashboard.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.Message != "tracker unavailable" || !errors.Is(err, dashboard.ErrRequestFailed) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		b.mu.Lock()
		before := b.hits
		b.mu.Unlock()

		_, err := d.UpdateStatus(t.Context(), dashboard.StatusUpdate{Status: dashboard.StatusViewed})

		var fe validate.FieldErrors
		if !errors.As(err, &fe) {
			t.Fatalf("expected FieldErrors, got %T: %v", err, err)
		}
		if _, ok := fe.Fields()["job_id"]; !ok {
			t.Errorf("expected job_id error, got %v", fe.Fields())
		}

		b.mu.Lock()
		after := b.hits
		b.mu.Unlock()
		if after != before {
			t.Error("invalid input must not reach the backend")
		}
	})
}

func TestDashboard_Timeline(t *testing.T) {
	d, _ := setup(t)

	tl, err := d.Timeline(t.Context(), "job-2")
	if err != nil {
		t.Fatal(err)
	}

	if tl.CurrentStatus != dashboard.StatusInterview || tl.TotalChanges != 2 || len(tl.Entries) != 2 {
		t.Fatalf("unexpected timeline: %+v", tl)
	}
	if tl.Entries[1].Notes != "onsite" {
		t.Errorf("notes = %q", tl.Entries[1].Notes)
	}

	next, err := d.ValidTransitions(t.Context(), tl.CurrentStatus)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dashboard.Status{"VIEWED", "INTERVIEW", "REJECTED"}, next); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_BulkUpdateStatus(t *testing.T) {
	d, _ := setup(t)

	updates := []dashboard.StatusUpdate{
		{JobID: "job-1", Status: dashboard.StatusViewed},
		{JobID: "job-missing", Status: dashboard.StatusViewed},
		{JobID: "job-2", Status: dashboard.StatusOffer},
	}

	got, err := d.BulkUpdateStatus(t.Context(), updates)
	if !errors.Is(err, dashboard.ErrNotFound) {
		t.Fatalf("expected joined ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "job-missing") {
		t.Errorf("error should name the failed job: %v", err)
	}

	if got[0].Change.Status != dashboard.StatusViewed || got[2].Change.Status != dashboard.StatusOffer {
		t.Errorf("successful updates missing: %+v", got)
	}
	if got[0].Err != nil || got[2].Err != nil {
		t.Errorf("successful updates should carry no error: %v, %v", got[0].Err, got[2].Err)
	}
	if !errors.Is(got[1].Err, dashboard.ErrNotFound) || got[1].Change != (dashboard.StatusChange{}) {
		t.Errorf("failed slot should carry its error and no change, got %+v", got[1])
	}
	if got[1].Update.JobID != "job-missing" {
		t.Errorf("outcome should echo its update, got %+v", got[1].Update)
	}
}

func TestDashboard_BulkUpdateStatusStopsOnAuthFailure(t *testing.T) {
	b := newBackend()
	ts := httptest.NewServer(b.handler())
	defer ts.Close()

	c, err := client.Build()
	if err != nil {
		t.Fatal(err)
	}
	d, err := dashboard.New(c, ts.URL, dashboard.WithConcurrency(1))
	if err != nil {
		t.Fatal(err)
	}

	updates := []dashboard.StatusUpdate{
		{JobID: "job-1", Status: dashboard.StatusViewed},
		{JobID: "job-revoked", Status: dashboard.StatusViewed},
		{JobID: "job-2", Status: dashboard.StatusOffer},
		{JobID: "job-1", Status: dashboard.StatusInterview},
	}

	got, err := d.BulkUpdateStatus(t.Context(), updates)
	if !errors.Is(err, client.ErrAuthFailure) {
		t.Fatalf("expected joined auth failure, got %v", err)
	}

	b.mu.Lock()
	sent := slices.Clone(b.updated)
	b.mu.Unlock()

	if len(sent) == 0 || sent[len(sent)-1] != "job-revoked" {
		t.Fatalf("no update may reach the backend after the auth failure, sent %v", sent)
	}

	for i, o := range got {
		switch {
		case o.Update.JobID == "job-revoked":
			if !errors.Is(o.Err, client.ErrAuthFailure) {
				t.Errorf("outcome %d: expected auth failure, got %v", i, o.Err)
			}
		case o.Err == nil:
			if !slices.Contains(sent, o.Update.JobID) {
				t.Errorf("outcome %d succeeded without reaching the backend", i)
			}
		default:
			if !errors.Is(o.Err, batch.ErrShutdown) && !errors.Is(o.Err, context.Canceled) {
				t.Errorf("outcome %d: expected the update to be skipped, got %v", i, o.Err)
			}
		}
	}
}

func TestDashboard_BulkUpdateStatusCancelled(t *testing.T) {
	d, b := setup(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	got, err := d.BulkUpdateStatus(ctx, []dashboard.StatusUpdate{
		{JobID: "job-1", Status: dashboard.StatusViewed},
		{JobID: "job-2", Status: dashboard.StatusOffer},
	})
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}

	for i, o := range got {
		if !errors.Is(o.Err, batch.ErrShutdown) && !errors.Is(o.Err, context.Canceled) {
			t.Errorf("outcome %d: expected the update to be skipped, got %v", i, o.Err)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.updated) != 0 {
		t.Errorf("expected no updates to reach the backend, got %v", b.updated)
	}
}

func TestDashboard_RateLimited(t *testing.T) {
	const window = 150 * time.Millisecond

	lim, err := ratelimit.New(2, window)
	if err != nil {
		t.Fatal(err)
	}

	d, b := setup(t, client.WithLimiter(lim))

	start := time.Now()
	for range 3 {
		if _, err := d.Stats(t.Context()); err != nil {
			t.Fatal(err)
		}
	}

	if elapsed := time.Since(start); elapsed < window {
		t.Errorf("third call should wait for the window, took %v", elapsed)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hits != 3 {
		t.Errorf("expected 3 backend hits, got %d", b.hits)
	}
}

func TestDashboard_ExportApplications(t *testing.T) {
	d, _ := setup(t)

	var buf bytes.Buffer
	n, err := d.ExportApplications(t.Context(), &buf, dashboard.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}

	if records[0][0] != "job_id" || records[0][1] != "company" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Acme, Inc." {
		t.Errorf("company with comma not preserved: %q", records[1][1])
	}
	if records[2][3] != "INTERVIEW" {
		t.Errorf("status column = %q", records[2][3])
	}
}

func TestDashboard_ExportApplications_Empty(t *testing.T) {
	d, _ := setup(t)

	var buf bytes.Buffer
	_, err := d.ExportApplications(t.Context(), &buf, dashboard.Query{Status: dashboard.StatusAccepted})
	if err == nil || !strings.Contains(err.Error(), "no data to export") {
		t.Errorf("expected no data error, got %v", err)
	}
}

func TestDashboard_Interviews(t *testing.T) {
	d, b := setup(t)

	list, err := d.Interviews(t.Context(), true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Status != dashboard.InterviewScheduled || list[0].Feedback != "" {
		t.Errorf("unexpected interviews: %+v", list)
	}

	id, err := d.ScheduleInterview(t.Context(), dashboard.NewInterview{
		JobID:         "job-2",
		Company:       "Globex",
		Role:          "SRE",
		InterviewType: "technical",
		ScheduledAt:   "2024-03-20T15:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "int_job-2_1" {
		t.Errorf("id = %q", id)
	}

	if _, err := d.ScheduleInterview(t.Context(), dashboard.NewInterview{Company: "Globex"}); err == nil {
		t.Error("expected validation error for incomplete interview")
	}

	tmpl, err := d.EmailTemplate(t.Context(), dashboard.TemplateRequest{Kind: dashboard.TemplateThankYou, Role: "SRE"})
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Subject != "Thank you - SRE" {
		t.Errorf("subject = %q", tmpl.Subject)
	}

	stats, err := d.InterviewStats(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalInterviews != 3 || stats.ByType["technical"] != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	want := []string{"days=7&upcoming=true", "role=SRE&type=thank_you"}
	if diff := cmp.Diff(want, b.queries); diff != "" {
		t.Errorf("queries mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_InterviewDetail(t *testing.T) {
	d, _ := setup(t)

	iv, err := d.Interview(t.Context(), "int_job-2_0")
	if err != nil {
		t.Fatal(err)
	}
	if iv.Status != dashboard.InterviewConfirmed || iv.InterviewType != "technical" {
		t.Errorf("unexpected interview: %+v", iv)
	}

	if _, err := d.Interview(t.Context(), "int_missing"); !errors.Is(err, dashboard.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	updated, err := d.UpdateInterviewStatus(t.Context(), "int_job-2_0", dashboard.InterviewStatusUpdate{
		Status:   dashboard.InterviewCompleted,
		Feedback: "went well",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != dashboard.InterviewCompleted || updated.Feedback != "went well" {
		t.Errorf("unexpected update: %+v", updated)
	}

	if _, err := d.UpdateInterviewStatus(t.Context(), "int_job-2_0", dashboard.InterviewStatusUpdate{}); err == nil {
		t.Error("expected validation error for missing status")
	}

	prep, err := d.PrepMaterials(t.Context(), "int_job-2_0", "sre", "technical")
	if err != nil {
		t.Fatal(err)
	}
	want := dashboard.PrepMaterials{
		InterviewType:  "technical",
		QuestionsToAsk: []string{"What does on-call look like for sre?"},
	}
	if diff := cmp.Diff(want, prep); diff != "" {
		t.Errorf("prep materials mismatch (-want +got):\n%s", diff)
	}
}

package dashboard

import (
	"context"
	"net/http"
	"strconv"
)

// DefaultUpcomingDays is the look-ahead used by the backend for upcoming interviews.
const DefaultUpcomingDays = 7

// Interviews lists interviews. With upcoming set only those in the next
// days are returned; days <= 0 means [DefaultUpcomingDays].
func (d *Dashboard) Interviews(ctx context.Context, upcoming bool, days int) ([]Interview, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}

	type response struct {
		envelope
		Interviews []Interview `json:"interviews"`
	}

	query := map[string]string{
		"upcoming": strconv.FormatBool(upcoming),
		"days":     strconv.Itoa(days),
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("interviews"), query, nil)
	if err != nil {
		return nil, err
	}

	return resp.Interviews, nil
}

// Interview fetches one interview.
func (d *Dashboard) Interview(ctx context.Context, id string) (Interview, error) {
	type response struct {
		envelope
		Interview Interview `json:"interview"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("interviews", id), nil, nil)
	if err != nil {
		return Interview{}, err
	}

	return resp.Interview, nil
}

// ScheduleInterview books an interview and returns its id.
func (d *Dashboard) ScheduleInterview(ctx context.Context, in NewInterview) (string, error) {
	if err := checkInput("interview", in); err != nil {
		return "", err
	}

	type response struct {
		envelope
		InterviewID string `json:"interview_id"`
	}

	resp, err := call[response](ctx, d, http.MethodPost, api("interviews"), nil, in)
	if err != nil {
		return "", err
	}

	return resp.InterviewID, nil
}

// UpdateInterviewStatus moves an interview to a new status.
func (d *Dashboard) UpdateInterviewStatus(ctx context.Context, id string, u InterviewStatusUpdate) (Interview, error) {
	if err := checkInput("interview status update", u); err != nil {
		return Interview{}, err
	}

	type response struct {
		envelope
		Interview Interview `json:"interview"`
	}

	resp, err := call[response](ctx, d, http.MethodPost, api("interviews", id, "status"), nil, u)
	if err != nil {
		return Interview{}, err
	}

	return resp.Interview, nil
}

// PrepMaterials fetches coaching content for an interview. Empty
// roleFamily or interviewType take the backend defaults.
func (d *Dashboard) PrepMaterials(ctx context.Context, id, roleFamily, interviewType string) (PrepMaterials, error) {
	query := map[string]string{}
	if roleFamily != "" {
		query["role_family"] = roleFamily
	}
	if interviewType != "" {
		query["interview_type"] = interviewType
	}

	type response struct {
		envelope
		Materials PrepMaterials `json:"materials"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("interviews", id, "prep-materials"), query, nil)
	if err != nil {
		return PrepMaterials{}, err
	}

	return resp.Materials, nil
}

// EmailTemplate renders an interview email.
func (d *Dashboard) EmailTemplate(ctx context.Context, t TemplateRequest) (EmailTemplate, error) {
	type response struct {
		envelope
		Template EmailTemplate `json:"template"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("interviews", "email-template"), t.query(), nil)
	if err != nil {
		return EmailTemplate{}, err
	}

	return resp.Template, nil
}

// InterviewStats summarises all interviews.
func (d *Dashboard) InterviewStats(ctx context.Context) (InterviewStats, error) {
	type response struct {
		envelope
		Statistics InterviewStats `json:"statistics"`
	}

	resp, err := call[response](ctx, d, http.MethodGet, api("interviews", "stats"), nil, nil)
	if err != nil {
		return InterviewStats{}, err
	}

	return resp.Statistics, nil
}

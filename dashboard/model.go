package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/adamwoolhether/jobdash/client"
)

var (
	// ErrRequestFailed is wrapped by every [APIError].
	ErrRequestFailed = errors.New("dashboard request failed")
	// ErrNotFound is joined with ErrRequestFailed on a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is joined with ErrRequestFailed on a 400 response.
	ErrInvalidRequest = errors.New("invalid request")
)

// Status is the stage of a job application.
type Status string

const (
	StatusSaved            Status = "SAVED"
	StatusSubmitted        Status = "SUBMITTED"
	StatusPendingUserInput Status = "PENDING_USER_INPUT"
	StatusViewed           Status = "VIEWED"
	StatusInterview        Status = "INTERVIEW"
	StatusOffer            Status = "OFFER"
	StatusAccepted         Status = "ACCEPTED"
	StatusRejected         Status = "REJECTED"
)

func (s Status) String() string { return string(s) }

// envelope carries the outcome flag present on every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) result() envelope { return e }

func (e envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type enveloped interface {
	result() envelope
}

// APIError is returned when the backend rejects a request, either with a
// non-200 status or with success set to false.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("dashboard api [%d]: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// fromStatusError reads the backend's message out of an unexpected
// response body.
func fromStatusError(se *client.UnexpectedStatusError) *APIError {
	var env envelope
	msg := strings.TrimSpace(se.Body)
	if err := json.Unmarshal([]byte(se.Body), &env); err == nil && env.text() != "" {
		msg = env.text()
	}

	sentinel := ErrRequestFailed
	switch se.StatusCode {
	case http.StatusNotFound:
		sentinel = fmt.Errorf("%w: %w", ErrRequestFailed, ErrNotFound)
	case http.StatusBadRequest:
		sentinel = fmt.Errorf("%w: %w", ErrRequestFailed, ErrInvalidRequest)
	}

	return &APIError{
		StatusCode: se.StatusCode,
		Message:    msg,
		Err:        fmt.Errorf("%w: %w", sentinel, se),
	}
}

// Stats summarises the tracked applications.
type Stats struct {
	Summary      map[string]any `json:"summary"`
	StatusCounts map[Status]int `json:"status_counts"`
	CompanyCount int            `json:"company_count"`
	Timestamp    string         `json:"timestamp"`
}

// Application is one tracked job application.
type Application struct {
	JobID              string `json:"job_id"`
	Company            string `json:"company"`
	Role               string `json:"role"`
	Status             Status `json:"status"`
	ApplyURL           string `json:"apply_url"`
	SubmittedAt        string `json:"submitted_at"`
	NextFollowupAt     string `json:"next_followup_at"`
	Notes              string `json:"notes"`
	StatusHistoryCount int    `json:"status_history_count"`
	DaysOverdue        int    `json:"days_overdue"`
}

// StatusUpdate moves an application to a new status.
type StatusUpdate struct {
	JobID  string `json:"job_id" validate:"required"`
	Status Status `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// StatusChange is the backend's view of an application after an update.
type StatusChange struct {
	JobID          string `json:"job_id"`
	Status         Status `json:"status"`
	NextFollowupAt string `json:"next_followup_at"`
	Notes          string `json:"notes"`
	Message        string `json:"-"`
}

// BulkOutcome is the result of one update in [Dashboard.BulkUpdateStatus].
type BulkOutcome struct {
	Update StatusUpdate
	Change StatusChange
	Err    error
}

// Followup is an application due for a follow-up message.
type Followup struct {
	JobID          string `json:"job_id"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	Status         Status `json:"status"`
	SubmittedAt    string `json:"submitted_at"`
	NextFollowupAt string `json:"next_followup_at"`
	DaysOverdue    int    `json:"days_overdue"`
	Template       string `json:"template"`
}

// TimelineEntry is one recorded status change.
type TimelineEntry struct {
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// Timeline is the status history of one application.
type Timeline struct {
	JobID         string          `json:"job_id"`
	Company       string          `json:"company"`
	Role          string          `json:"role"`
	CurrentStatus Status          `json:"current_status"`
	Entries       []TimelineEntry `json:"timeline"`
	TotalChanges  int             `json:"total_changes"`
}

// InterviewStatus is the stage of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled    InterviewStatus = "scheduled"
	InterviewConfirmed    InterviewStatus = "confirmed"
	InterviewReminderSent InterviewStatus = "reminder_sent"
	InterviewInProgress   InterviewStatus = "in_progress"
	InterviewCompleted    InterviewStatus = "completed"
	InterviewCancelled    InterviewStatus = "cancelled"
	InterviewRescheduled  InterviewStatus = "rescheduled"
)

// Interview is a scheduled interview.
type Interview struct {
	ID                  string          `json:"id"`
	JobID               string          `json:"job_id"`
	Company             string          `json:"company"`
	Role                string          `json:"role"`
	InterviewType       string          `json:"interview_type"`
	ScheduledAt         string          `json:"scheduled_at"`
	Interviewer         string          `json:"interviewer"`
	Location            string          `json:"location"`
	Status              InterviewStatus `json:"status"`
	Notes               string          `json:"notes"`
	Feedback            string          `json:"feedback"`
	CreatedAt           string          `json:"created_at"`
	PreparationComplete bool            `json:"preparation_complete"`
}

// NewInterview schedules an interview.
type NewInterview struct {
	JobID         string `json:"job_id,omitempty"`
	Company       string `json:"company" validate:"required"`
	Role          string `json:"role" validate:"required"`
	InterviewType string `json:"interview_type" validate:"required"`
	ScheduledAt   string `json:"scheduled_at" validate:"required"`
	Interviewer   string `json:"interviewer,omitempty"`
	Location      string `json:"location,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// InterviewStatusUpdate moves an interview to a new status.
type InterviewStatusUpdate struct {
	Status   InterviewStatus `json:"status" validate:"required"`
	Feedback string          `json:"feedback,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// PrepMaterials is the coaching content for an interview.
type PrepMaterials struct {
	StarMethod         map[string]any   `json:"star_method"`
	CommonQuestions    []map[string]any `json:"common_questions"`
	StrengthWeaknesses map[string]any   `json:"strength_weaknesses"`
	QuestionsToAsk     []string         `json:"questions_to_ask"`
	InterviewType      string           `json:"interview_type"`
}

// TemplateKind selects an interview email template.
type TemplateKind string

const (
	TemplateReminder TemplateKind = "reminder"
	TemplateThankYou TemplateKind = "thank_you"
	TemplateFollowUp TemplateKind = "follow_up"
)

// TemplateRequest holds the fields merged into an email template.
// Empty fields take the backend's defaults.
type TemplateRequest struct {
	Kind          TemplateKind
	Company       string
	Role          string
	Interviewer   string
	Date          string
	TalkingPoints string
	Status        string
	ScheduledAt   string
	Location      string
}

func (t TemplateRequest) query() map[string]string {
	q := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			q[k] = v
		}
	}

	set("type", string(t.Kind))
	set("company", t.Company)
	set("role", t.Role)
	set("interviewer", t.Interviewer)
	set("date", t.Date)
	set("talking_points", t.TalkingPoints)
	set("status", t.Status)
	set("scheduled_at", t.ScheduledAt)
	set("location", t.Location)

	return q
}

// EmailTemplate is a rendered email.
type EmailTemplate struct {
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	TemplateName string `json:"template_name"`
	GeneratedAt  string `json:"generated_at"`
}

// InterviewStats summarises scheduled interviews.
type InterviewStats struct {
	TotalInterviews     int            `json:"total_interviews"`
	ByType              map[string]int `json:"by_type"`
	ByStatus            map[string]int `json:"by_status"`
	ByCompany           map[string]int `json:"by_company"`
	UpcomingCount       int            `json:"upcoming_count"`
	Completed           int            `json:"completed"`
	Cancelled           int            `json:"cancelled"`
	PreparationComplete int            `json:"preparation_complete"`
}

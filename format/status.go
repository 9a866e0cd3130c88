package format

import (
	"html/template"
	"strings"
)

// DefaultStatusColor is used for statuses without a palette entry.
const DefaultStatusColor = "#95a5a6"

var statusColors = map[string]string{
	"SUBMITTED":          "#667eea",
	"PENDING_USER_INPUT": "#f39c12",
	"VIEWED":             "#16a085",
	"INTERVIEW":          "#3498db",
	"OFFER":              "#2ecc71",
	"ACCEPTED":           "#27ae60",
	"REJECTED":           "#e74c3c",
	"SAVED":              "#95a5a6",
}

var (
	badgeTmpl   = template.Must(template.New("badge").Parse(`<span class="badge badge-status {{.Class}}">{{.Label}}</span>`))
	errorTmpl   = template.Must(template.New("error").Parse(`<div class="alert alert-danger" role="alert"><i class="fas fa-exclamation-circle"></i> {{.}}</div>`))
	loadingHTML = template.HTML(`<div class="text-center py-4"><i class="fas fa-spinner fa-spin"></i> Loading...</div>`)
)

// StatusColor returns the badge color for an application status.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}

	return DefaultStatusColor
}

// StatusClass returns the CSS class for an application status.
func StatusClass(status string) string {
	return "status-" + strings.ToLower(status)
}

// StatusLabel turns "PENDING_USER_INPUT" into "PENDING USER INPUT".
func StatusLabel(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

// StatusBadge renders the badge fragment for status.
func StatusBadge(status string) template.HTML {
	data := struct{ Class, Label string }{
		Class: StatusClass(status),
		Label: StatusLabel(status),
	}

	return render(badgeTmpl, data)
}

// LoadingHTML is the placeholder shown while a panel loads.
func LoadingHTML() template.HTML {
	return loadingHTML
}

// ErrorHTML renders message as an alert fragment. The message is escaped.
func ErrorHTML(message string) template.HTML {
	return render(errorTmpl, message)
}

func render(t *template.Template, data any) template.HTML {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}

	return template.HTML(b.String())
}

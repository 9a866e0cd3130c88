// Package notify keeps the stack of transient toast notifications shown
// to the user.
package notify

import (
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a toast stays up unless told otherwise.
const DefaultDuration = 3 * time.Second

// Level is the alert style of a toast.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Danger  Level = "danger"
)

var toastTmpl = template.Must(template.New("toast").Parse(
	`<div class="alert alert-{{.Level}} alert-dismissible fade show" role="alert">{{.Message}}<button type="button" class="btn-close" data-bs-dismiss="alert"></button></div>`))

// Toast is a single notification.
type Toast struct {
	ID        string
	Message   string
	Level     Level
	CreatedAt time.Time
	Duration  time.Duration
}

// HTML renders the toast as a dismissible alert. The message is escaped.
func (t Toast) HTML() template.HTML {
	var b strings.Builder
	if err := toastTmpl.Execute(&b, t); err != nil {
		return template.HTML(template.HTMLEscapeString(t.Message))
	}

	return template.HTML(b.String())
}

// Center holds the active toasts, newest first.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[string]*time.Timer

	logger *slog.Logger
	sink   func(Toast)
}

// Option configures a [Center].
type Option func(*Center)

// WithLogger reports shown and dismissed toasts at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Center) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSink calls fn with every toast as it is shown.
func WithSink(fn func(Toast)) Option {
	return func(c *Center) {
		c.sink = fn
	}
}

// NewCenter returns an empty notification center.
func NewCenter(optFns ...Option) *Center {
	c := &Center{
		timers: make(map[string]*time.Timer),
		logger: slog.Default(),
	}

	for _, opt := range optFns {
		opt(c)
	}

	return c
}

// Show adds a toast to the top of the stack. An empty level means [Info].
// A positive duration removes the toast after it elapses; zero keeps it
// until [Center.Dismiss]; a negative duration means [DefaultDuration].
func (c *Center) Show(message string, level Level, duration time.Duration) Toast {
	if level == "" {
		level = Info
	}
	if duration < 0 {
		duration = DefaultDuration
	}

	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Level:     level,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	c.mu.Lock()
	c.toasts = append([]Toast{t}, c.toasts...)
	if duration > 0 {
		c.timers[t.ID] = time.AfterFunc(duration, func() { c.Dismiss(t.ID) })
	}
	c.mu.Unlock()

	c.logger.Debug("toast shown", "id", t.ID, "level", string(level), "duration", duration.String())

	if c.sink != nil {
		c.sink(t)
	}

	return t
}

// Notify shows an info toast for [DefaultDuration].
func (c *Center) Notify(message string) Toast {
	return c.Show(message, Info, DefaultDuration)
}

// Dismiss removes the toast with the given id. It reports whether the
// toast was still active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tm, ok := c.timers[id]; ok {
		tm.Stop()
		delete(c.timers, id)
	}

	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.logger.Debug("toast dismissed", "id", id)
			return true
		}
	}

	return false
}

// Active returns a snapshot of the visible toasts, newest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)

	return out
}

// Clear dismisses every toast.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, tm := range c.timers {
		tm.Stop()
		delete(c.timers, id)
	}
	c.toasts = nil
}

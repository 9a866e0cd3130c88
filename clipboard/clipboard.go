// Package clipboard copies text to the system clipboard, falling back
// to an OSC 52 terminal escape when the system clipboard is unavailable.
package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	sysclip "github.com/atotto/clipboard"

	"github.com/adamwoolhether/jobdash/notify"
)

// CopiedMessage is the toast shown after a successful copy.
const CopiedMessage = "Copied to clipboard!"

// ErrUnavailable is returned when no clipboard is reachable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Copier writes through a primary Writer and silently retries through
// a fallback when the primary fails.
type Copier struct {
	primary  Writer
	fallback Writer
	center   *notify.Center
	logger   *slog.Logger
}

// Option configures a [Copier].
type Option func(*Copier)

// WithPrimary replaces the system clipboard writer.
func WithPrimary(w Writer) Option {
	return func(c *Copier) {
		if w != nil {
			c.primary = w
		}
	}
}

// WithFallback replaces the OSC 52 writer.
func WithFallback(w Writer) Option {
	return func(c *Copier) {
		if w != nil {
			c.fallback = w
		}
	}
}

// WithNotifier shows a success toast on every copy.
func WithNotifier(center *notify.Center) Option {
	return func(c *Copier) { c.center = center }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Copier using the system clipboard and an OSC 52 sequence
// written to out as fallback.
func New(out io.Writer, optFns ...Option) *Copier {
	c := &Copier{
		primary:  SystemWriter{},
		fallback: OSC52Writer{W: out},
		logger:   slog.Default(),
	}

	for _, opt := range optFns {
		opt(c)
	}

	return c
}

// Copy places text on the clipboard.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if err := c.primary.WriteText(ctx, text); err != nil {
		c.logger.Debug("clipboard primary failed, falling back", "error", err)

		if err := c.fallback.WriteText(ctx, text); err != nil {
			return fmt.Errorf("clipboard fallback: %w", err)
		}
	}

	if c.center != nil {
		c.center.Show(CopiedMessage, notify.Success, notify.DefaultDuration)
	}

	return nil
}

// SystemWriter writes to the operating system clipboard.
type SystemWriter struct{}

func (SystemWriter) WriteText(ctx context.Context, text string) error {
	if sysclip.Unsupported {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}

	return nil
}

// OSC52Writer asks the terminal attached to W to set the clipboard.
type OSC52Writer struct {
	W io.Writer
}

func (w OSC52Writer) WriteText(_ context.Context, text string) error {
	if w.W == nil {
		return ErrUnavailable
	}

	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(w.W, seq); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}

	return nil
}

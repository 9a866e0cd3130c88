// Package shortcut maps keyboard chords to dashboard actions.
package shortcut

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrEmptyKey        = errors.New("chord has no key")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Chord is a key plus the modifiers held with it. Keys are compared
// case-insensitively.
type Chord struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string
}

// Parse reads chords written as "Ctrl+K" or "Escape".
func Parse(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return Chord{}, fmt.Errorf("parsing %q: %w", s, ErrEmptyKey)
	}

	c := Chord{Key: strings.ToLower(key)}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "meta", "cmd", "super":
			c.Meta = true
		default:
			return Chord{}, fmt.Errorf("parsing %q: %w: %s", s, ErrUnknownModifier, mod)
		}
	}

	return c, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) Chord {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Meta {
		parts = append(parts, "Meta")
	}

	key := c.Key
	if len(key) == 1 {
		key = strings.ToUpper(key)
	} else if key != "" {
		key = strings.ToUpper(key[:1]) + key[1:]
	}

	return strings.Join(append(parts, key), "+")
}

func (c Chord) normalize() Chord {
	c.Key = strings.ToLower(c.Key)
	return c
}

// Binding is a chord with its description and action.
type Binding struct {
	Chord       Chord
	Description string
	Action      func()
}

// Registry dispatches key events to bound actions.
type Registry struct {
	mu       sync.RWMutex
	bindings map[Chord]Binding
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[Chord]Binding)}
}

// Defaults binds Ctrl+K to focusSearch and Escape to closeModals.
func Defaults(focusSearch, closeModals func()) *Registry {
	r := NewRegistry()
	r.Bind(MustParse("Ctrl+K"), "Focus search", focusSearch)
	r.Bind(MustParse("Escape"), "Close open dialogs", closeModals)

	return r
}

// Bind registers action for chord, replacing any earlier binding.
func (r *Registry) Bind(c Chord, description string, action func()) {
	c = c.normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[c] = Binding{Chord: c, Description: description, Action: action}
}

// Unbind removes the binding for chord.
func (r *Registry) Unbind(c Chord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bindings, c.normalize())
}

// Handle runs the action bound to c and reports whether one was found.
// A handled event should not be passed on.
func (r *Registry) Handle(c Chord) bool {
	r.mu.RLock()
	b, ok := r.bindings[c.normalize()]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	if b.Action != nil {
		b.Action()
	}

	return true
}

// Bindings lists the registered bindings ordered by chord.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return strings.Compare(a.Chord.String(), b.Chord.String())
	})

	return out
}

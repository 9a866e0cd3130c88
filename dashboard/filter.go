package dashboard

import (
	"slices"
	"sync"
	"time"

	"github.com/adamwoolhether/jobdash/debounce"
)

// DefaultSearchDelay is how long [Filter] waits for typing to stop
// before announcing a new search.
const DefaultSearchDelay = 300 * time.Millisecond

// Query narrows [Dashboard.Applications].
type Query struct {
	Status Status
	Search string
}

func (q Query) params() map[string]string {
	p := map[string]string{}
	if q.Status != "" {
		p["status"] = string(q.Status)
	}
	if q.Search != "" {
		p["search"] = q.Search
	}
	return p
}

// Filter holds the current list filters and tells listeners when they
// change. Search edits are debounced; status changes and Clear are
// announced at once.
type Filter struct {
	mu        sync.Mutex
	q         Query
	listeners []func(Query)
	search    *debounce.Debouncer[struct{}]
}

// NewFilter returns an empty Filter whose search edits settle after delay.
func NewFilter(delay time.Duration) *Filter {
	f := &Filter{}
	f.search = debounce.New(delay, func(struct{}) { f.notify() })

	return f
}

// OnChange registers fn to receive the filter after every change.
func (f *Filter) OnChange(fn func(Query)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listeners = append(f.listeners, fn)
}

// Query returns the current filter.
func (f *Filter) Query() Query {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.q
}

// SetStatus filters by status. An empty status shows all.
func (f *Filter) SetStatus(s Status) {
	f.mu.Lock()
	f.q.Status = s
	f.mu.Unlock()

	f.notify()
}

// SetSearch filters by a company or role substring.
func (f *Filter) SetSearch(term string) {
	f.mu.Lock()
	f.q.Search = term
	f.mu.Unlock()

	f.search.Call(struct{}{})
}

// Clear resets every filter and announces the change once.
func (f *Filter) Clear() {
	f.mu.Lock()
	f.q = Query{}
	f.mu.Unlock()

	if f.search.Pending() {
		f.search.Flush()
		return
	}
	f.notify()
}

func (f *Filter) notify() {
	f.mu.Lock()
	q := f.q
	listeners := slices.Clone(f.listeners)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(q)
	}
}

package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-now/internal/weather"
)

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Query string
	Phase Phase
}

// Ticket identifies one accepted submission. It is only valid for the
// controller that issued it.
type Ticket struct {
	Query string
	seq   uint64
}

// Controller owns the query text and the request phase of one widget.
// It never lets two fetches overlap.
type Controller struct {
	provider weather.Provider

	mu    sync.Mutex
	query string
	phase Phase
	seq   uint64
}

// New returns an idle controller that fetches from provider.
func New(provider weather.Provider) *Controller {
	return &Controller{
		provider: provider,
		phase:    Idle{},
	}
}

// UpdateQuery replaces the query verbatim.
func (c *Controller) UpdateQuery(text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()
}

// Snapshot returns the current query and phase.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Query: c.query, Phase: c.phase}
}

// Loading reports whether a fetch is in flight. Front ends disable input while true.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.phase.(Loading)
	return ok
}

// Begin accepts a submission and moves the phase to Loading. It returns false
// when the trimmed query is empty or a fetch is already in flight.
func (c *Controller) Begin() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.phase.(Loading); busy {
		return Ticket{}, false
	}
	if strings.TrimSpace(c.query) == "" {
		return Ticket{}, false
	}

	c.seq++
	c.phase = Loading{Query: c.query}
	return Ticket{Query: c.query, seq: c.seq}, true
}

// Resolve performs the fetch for an accepted ticket and settles the phase.
// Cancellation of ctx is ignored once the fetch has started. The phase never
// stays Loading after Resolve returns, even if the provider panics.
func (c *Controller) Resolve(ctx context.Context, t Ticket) {
	if !c.pending(t) {
		return
	}
	ctx = context.WithoutCancel(ctx)

	settled := false
	defer func() {
		rec := recover()
		if rec != nil {
			log.Error().Str("query", t.Query).Interface("panic", rec).Msg("weather lookup panicked")
		}
		if !settled {
			c.settle(t, weather.Reading{}, &weather.FetchError{Kind: weather.KindUnknown})
		}
	}()

	reading, err := c.provider.Fetch(ctx, t.Query)
	c.settle(t, reading, err)
	settled = true
}

// Submit runs Begin and, if accepted, Resolve. It reports whether a fetch was issued.
func (c *Controller) Submit(ctx context.Context) bool {
	t, ok := c.Begin()
	if !ok {
		return false
	}
	c.Resolve(ctx, t)
	return true
}

// pending reports whether t is the current ticket and still awaiting a result.
func (c *Controller) pending(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked(t)
}

func (c *Controller) pendingLocked(t Ticket) bool {
	if t.seq != c.seq {
		return false
	}
	_, loading := c.phase.(Loading)
	return loading
}

func (c *Controller) settle(t Ticket, reading weather.Reading, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pendingLocked(t) {
		return
	}

	if err != nil {
		kind := weather.KindOf(err)
		c.phase = Failed{Kind: kind, Message: kind.Message()}
		return
	}

	c.phase = Loaded{Reading: reading}
	c.query = ""
}

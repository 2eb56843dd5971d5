package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iliyamo/themepark/internal/queue"
)

// Publisher records every event it is asked to publish.
type Publisher struct {
	mu     sync.Mutex
	Events []queue.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, ev)
	return p.Err
}

// Published returns a copy of the recorded events.
func (p *Publisher) Published() []queue.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.Event(nil), p.Events...)
}

// Clock is a manual time source. Each call to Now advances it by Step so
// consecutive records get distinct creation times.
type Clock struct {
	mu   sync.Mutex
	t    time.Time
	Step time.Duration
}

func NewClock(start time.Time) *Clock { return &Clock{t: start, Step: time.Second} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

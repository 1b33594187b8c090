package session

import (
	"context"
	"sync"
	"time"

	"cookieconsent/internal/consent/gate"
	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/models"
)

// Page is one mounted page session: its gate, its document and the signals
// queued for the view.
type Page struct {
	ID       string
	ClientID string
	Gate     *gate.Gate
	Document *loader.Page
	// Mounted is the decision found in storage when the page mounted.
	Mounted *models.Record

	mu        sync.Mutex
	events    []models.Event
	accessors map[string]func(context.Context) *models.Record
	lastSeen  time.Time
}

// PushEvent queues an outbound signal until the view drains it.
func (p *Page) PushEvent(_ context.Context, name string, payload map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, models.Event{Name: name, Payload: payload})
}

// ExposeAccessor publishes fn under name for the view to call.
func (p *Page) ExposeAccessor(name string, fn func(context.Context) *models.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accessors == nil {
		p.accessors = make(map[string]func(context.Context) *models.Record)
	}
	p.accessors[name] = fn
}

// Drain returns and clears the queued signals.
func (p *Page) Drain() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.events
	p.events = nil
	if events == nil {
		return []models.Event{}
	}
	return events
}

// Accessor looks up an exposed accessor.
func (p *Page) Accessor(name string) (func(context.Context) *models.Record, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn, ok := p.accessors[name]
	return fn, ok
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen = now
}

func (p *Page) idleSince(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return now.Sub(p.lastSeen)
}

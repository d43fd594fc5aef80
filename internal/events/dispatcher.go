package events

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single occurrence delivered to listeners. Listeners receive
// the same Event value, so StopPropagation halts delivery for the rest of
// the current Emit call.
type Event struct {
	ID        string
	Type      string
	Context   string
	Timestamp time.Time
	Data      any

	stopped bool
}

// StopPropagation prevents any remaining listeners from receiving this
// event during the current Emit call.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether propagation was halted.
func (e *Event) Stopped() bool { return e.stopped }

// Listener handles one event. Errors are logged and swallowed; one listener
// failing never prevents the others from running.
type Listener func(*Event) error

type subscription struct {
	id        uint64
	priority  int
	once      bool
	context   string
	condition func(*Event) bool
	fn        Listener
}

// Dispatcher is a synchronous priority-ordered pub/sub bus. Higher numeric
// priority fires first; listeners with equal priority fire in subscription
// order. All delivery happens on the caller's goroutine.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[string][]*subscription
	nextID    uint64

	debug      bool
	history    []Event
	historyCap int

	logger *slog.Logger
}

// Option configures a subscription.
type Option func(*subscription)

// WithPriority orders the listener relative to others for the same event
// type. Higher values fire first. The default priority is 0.
func WithPriority(p int) Option {
	return func(s *subscription) { s.priority = p }
}

// Once removes the listener automatically after its first delivery.
func Once() Option {
	return func(s *subscription) { s.once = true }
}

// WithContext restricts the listener to events emitted with a matching
// context string.
func WithContext(ctx string) Option {
	return func(s *subscription) { s.context = ctx }
}

// WithCondition restricts the listener to events for which the predicate
// returns true. Combined with WithContext, both must pass.
func WithCondition(cond func(*Event) bool) Option {
	return func(s *subscription) { s.condition = cond }
}

// NewDispatcher creates a dispatcher. The logger is used for listener
// failures and may not be nil.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		listeners:  make(map[string][]*subscription),
		historyCap: 100,
		logger:     logger.With("component", "events"),
	}
}

// Subscribe registers a listener for an event type and returns an
// unsubscribe function. The returned function is idempotent.
func (d *Dispatcher) Subscribe(eventType string, fn Listener, opts ...Option) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	sub := &subscription{id: d.nextID, fn: fn}
	for _, opt := range opts {
		opt(sub)
	}

	subs := append(d.listeners[eventType], sub)
	// Stable order: priority descending, then subscription order.
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].priority > subs[j].priority
	})
	d.listeners[eventType] = subs

	id := sub.id
	return func() { d.remove(eventType, id) }
}

// Emit delivers an event to all matching listeners, in priority order, on
// the calling goroutine. It returns the delivered event for inspection.
func (d *Dispatcher) Emit(eventType string, data any) *Event {
	return d.EmitWithContext(eventType, "", data)
}

// EmitWithContext delivers an event carrying a context string. Listeners
// subscribed with WithContext only fire when the strings match.
func (d *Dispatcher) EmitWithContext(eventType, context string, data any) *Event {
	event := &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Context:   context,
		Timestamp: time.Now(),
		Data:      data,
	}

	d.mu.Lock()
	subs := make([]*subscription, len(d.listeners[eventType]))
	copy(subs, d.listeners[eventType])
	if d.debug {
		d.recordLocked(*event)
	}
	d.mu.Unlock()

	for _, sub := range subs {
		if event.stopped {
			break
		}
		if sub.context != "" && sub.context != event.Context {
			continue
		}
		if sub.condition != nil && !sub.condition(event) {
			continue
		}

		d.deliver(eventType, sub, event)

		if sub.once {
			d.remove(eventType, sub.id)
		}
	}

	return event
}

// deliver invokes one listener, converting panics and errors into log lines.
func (d *Dispatcher) deliver(eventType string, sub *subscription, event *Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("listener panicked",
				"event_type", eventType,
				"event_id", event.ID,
				"panic", fmt.Sprint(r))
		}
	}()

	if err := sub.fn(event); err != nil {
		d.logger.Warn("listener failed",
			"event_type", eventType,
			"event_id", event.ID,
			"error", err)
	}
}

// ListenerCount returns the number of listeners registered for a type.
func (d *Dispatcher) ListenerCount(eventType string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[eventType])
}

// SetDebug toggles the bounded event history. History is only recorded
// while debug is on; turning it off clears the buffer.
func (d *Dispatcher) SetDebug(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.debug = on
	if !on {
		d.history = nil
	}
}

// History returns a copy of the recorded events, oldest first. Empty unless
// debug mode is on.
func (d *Dispatcher) History() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Event, len(d.history))
	copy(out, d.history)
	return out
}

func (d *Dispatcher) recordLocked(e Event) {
	d.history = append(d.history, e)
	if len(d.history) > d.historyCap {
		copy(d.history, d.history[len(d.history)-d.historyCap:])
		d.history = d.history[:d.historyCap]
	}
}

func (d *Dispatcher) remove(eventType string, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.listeners[eventType]
	for i, s := range subs {
		if s.id == id {
			d.listeners[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

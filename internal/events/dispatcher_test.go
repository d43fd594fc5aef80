package events

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSubscribeAndEmit(t *testing.T) {
	d := newTestDispatcher()

	var got *Event
	d.Subscribe("test.event", func(e *Event) error {
		got = e
		return nil
	})

	e := d.Emit("test.event", "payload")

	require.NotNil(t, got)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "test.event", got.Type)
	assert.Equal(t, "payload", got.Data)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestEmitWithNoListeners(t *testing.T) {
	d := newTestDispatcher()
	e := d.Emit("nobody.home", nil)
	require.NotNil(t, e)
	assert.False(t, e.Stopped())
}

func TestPriorityOrdering(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	d.Subscribe("ordered", func(e *Event) error {
		order = append(order, "low")
		return nil
	}, WithPriority(-5))
	d.Subscribe("ordered", func(e *Event) error {
		order = append(order, "default")
		return nil
	})
	d.Subscribe("ordered", func(e *Event) error {
		order = append(order, "high")
		return nil
	}, WithPriority(10))

	d.Emit("ordered", nil)

	assert.Equal(t, []string{"high", "default", "low"}, order)
}

func TestEqualPriorityFiresInSubscriptionOrder(t *testing.T) {
	d := newTestDispatcher()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		d.Subscribe("stable", func(e *Event) error {
			order = append(order, i)
			return nil
		})
	}

	d.Emit("stable", nil)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestUnsubscribe(t *testing.T) {
	d := newTestDispatcher()

	calls := 0
	unsub := d.Subscribe("bye", func(e *Event) error {
		calls++
		return nil
	})

	d.Emit("bye", nil)
	unsub()
	d.Emit("bye", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.ListenerCount("bye"))

	// Idempotent.
	unsub()
}

func TestOnce(t *testing.T) {
	d := newTestDispatcher()

	calls := 0
	d.Subscribe("single", func(e *Event) error {
		calls++
		return nil
	}, Once())

	d.Emit("single", nil)
	d.Emit("single", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.ListenerCount("single"))
}

func TestWithContextFiltering(t *testing.T) {
	d := newTestDispatcher()

	var seen []string
	d.Subscribe("scoped", func(e *Event) error {
		seen = append(seen, "shell")
		return nil
	}, WithContext("shell"))
	d.Subscribe("scoped", func(e *Event) error {
		seen = append(seen, "any")
		return nil
	})

	d.EmitWithContext("scoped", "shell", nil)
	d.EmitWithContext("scoped", "background", nil)
	d.Emit("scoped", nil)

	assert.Equal(t, []string{"shell", "any", "any", "any"}, seen)
}

func TestWithCondition(t *testing.T) {
	d := newTestDispatcher()

	var got []any
	d.Subscribe("gated", func(e *Event) error {
		got = append(got, e.Data)
		return nil
	}, WithCondition(func(e *Event) bool {
		n, ok := e.Data.(int)
		return ok && n > 10
	}))

	d.Emit("gated", 5)
	d.Emit("gated", 15)
	d.Emit("gated", "not a number")

	assert.Equal(t, []any{15}, got)
}

func TestStopPropagation(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	d.Subscribe("halting", func(e *Event) error {
		order = append(order, "first")
		e.StopPropagation()
		return nil
	}, WithPriority(1))
	d.Subscribe("halting", func(e *Event) error {
		order = append(order, "second")
		return nil
	})

	e := d.Emit("halting", nil)

	assert.Equal(t, []string{"first"}, order)
	assert.True(t, e.Stopped())
}

func TestListenerErrorDoesNotBlockOthers(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	d.Subscribe("faulty", func(e *Event) error {
		order = append(order, "bad")
		return errors.New("boom")
	}, WithPriority(1))
	d.Subscribe("faulty", func(e *Event) error {
		order = append(order, "good")
		return nil
	})

	d.Emit("faulty", nil)
	assert.Equal(t, []string{"bad", "good"}, order)
}

func TestListenerPanicIsRecovered(t *testing.T) {
	d := newTestDispatcher()

	ran := false
	d.Subscribe("panicky", func(e *Event) error {
		panic("listener exploded")
	}, WithPriority(1))
	d.Subscribe("panicky", func(e *Event) error {
		ran = true
		return nil
	})

	assert.NotPanics(t, func() { d.Emit("panicky", nil) })
	assert.True(t, ran)
}

func TestSubscribeDuringEmitDoesNotFireThisCycle(t *testing.T) {
	d := newTestDispatcher()

	lateCalls := 0
	d.Subscribe("nested", func(e *Event) error {
		d.Subscribe("nested", func(e *Event) error {
			lateCalls++
			return nil
		})
		return nil
	})

	d.Emit("nested", nil)
	assert.Equal(t, 0, lateCalls)

	d.Emit("nested", nil)
	assert.Equal(t, 1, lateCalls)
}

func TestHistoryRequiresDebug(t *testing.T) {
	d := newTestDispatcher()

	d.Emit("quiet", nil)
	assert.Empty(t, d.History())

	d.SetDebug(true)
	d.Emit("recorded", 1)
	d.Emit("recorded", 2)

	history := d.History()
	require.Len(t, history, 2)
	assert.Equal(t, "recorded", history[0].Type)
	assert.Equal(t, 1, history[0].Data)
	assert.Equal(t, 2, history[1].Data)

	d.SetDebug(false)
	assert.Empty(t, d.History())
}

func TestHistoryIsBounded(t *testing.T) {
	d := newTestDispatcher()
	d.SetDebug(true)

	for i := 0; i < 150; i++ {
		d.Emit("flood", i)
	}

	history := d.History()
	require.Len(t, history, 100)
	assert.Equal(t, 50, history[0].Data)
	assert.Equal(t, 149, history[99].Data)
}

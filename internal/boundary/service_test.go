package boundary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekknoschtev/astral-surveyor/internal/events"
)

func newErrorService() (*Service, *events.Dispatcher) {
	d := events.NewDispatcher(testLogger())
	return NewService(New(DefaultConfig(), testLogger()), d, testLogger()), d
}

func TestReportEmitsErrorEvent(t *testing.T) {
	svc, d := newErrorService()

	var got ReportedError
	d.Subscribe(events.EventErrorOccurred, func(e *events.Event) error {
		got = e.Data.(ReportedError)
		return nil
	})

	svc.Report("storage", "put", errors.New("disk full"))

	assert.Equal(t, "storage", got.Service)
	assert.Equal(t, "put", got.Operation)
	assert.Equal(t, "disk full", got.Err.Error())
}

func TestCriticalErrorEscalates(t *testing.T) {
	svc, d := newErrorService()

	criticals := 0
	d.Subscribe(events.EventErrorCritical, func(e *events.Event) error {
		criticals++
		return nil
	})

	svc.Report("storage", "put", errors.New("write failed"))
	assert.Equal(t, 0, criticals)

	svc.Report("storage", "put", errors.New("out of memory"))
	assert.Equal(t, 1, criticals)
}

func TestDegradedEventFiresOncePerOutage(t *testing.T) {
	svc, d := newErrorService()

	var degraded []string
	d.Subscribe(events.EventServiceDegraded, func(e *events.Event) error {
		degraded = append(degraded, e.Data.(string))
		return nil
	})

	// Threshold is 5; the 5th report opens the circuit and fires the
	// degradation event, further reports stay quiet.
	for i := 0; i < 8; i++ {
		svc.Report("storage", "put", errors.New("fail"))
	}

	require.Equal(t, []string{"storage"}, degraded)
	assert.False(t, svc.IsServiceHealthy("storage"))
}

func TestRecoveryEventAndReDegradation(t *testing.T) {
	svc, d := newErrorService()

	degraded, recovered := 0, 0
	d.Subscribe(events.EventServiceDegraded, func(e *events.Event) error {
		degraded++
		return nil
	})
	d.Subscribe(events.EventServiceRecovered, func(e *events.Event) error {
		recovered++
		return nil
	})

	for i := 0; i < 5; i++ {
		svc.Report("storage", "put", errors.New("fail"))
	}
	require.Equal(t, 1, degraded)

	svc.MarkServiceRecovered("storage")
	assert.Equal(t, 1, recovered)
	assert.True(t, svc.IsServiceHealthy("storage"))

	// A fresh outage fires degradation again.
	for i := 0; i < 5; i++ {
		svc.Report("storage", "put", errors.New("fail"))
	}
	assert.Equal(t, 2, degraded)
}

func TestBoundaryAccessor(t *testing.T) {
	svc, _ := newErrorService()
	require.NotNil(t, svc.Boundary())

	svc.Report("svc", "op", errors.New("x"))
	assert.Equal(t, 1, svc.Boundary().TotalErrors())
}

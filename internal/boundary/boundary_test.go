package boundary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBoundary() *Boundary {
	return New(DefaultConfig(), testLogger())
}

func TestCircuitOpensAtThreshold(t *testing.T) {
	b := newTestBoundary()

	for i := 0; i < 4; i++ {
		b.RecordFailure("storage")
		assert.False(t, b.IsCircuitOpen("storage"), "circuit must stay closed below threshold")
	}

	b.RecordFailure("storage")
	assert.True(t, b.IsCircuitOpen("storage"))
	assert.Equal(t, 5, b.FailureCount("storage"))
}

func TestCircuitsAreKeyedPerService(t *testing.T) {
	b := newTestBoundary()

	for i := 0; i < 5; i++ {
		b.RecordFailure("storage")
	}

	assert.True(t, b.IsCircuitOpen("storage"))
	assert.False(t, b.IsCircuitOpen("audio"))
	assert.Equal(t, 0, b.FailureCount("audio"))
}

func TestSuccessClosesCircuit(t *testing.T) {
	b := newTestBoundary()

	for i := 0; i < 5; i++ {
		b.RecordFailure("storage")
	}
	require.True(t, b.IsCircuitOpen("storage"))

	b.RecordSuccess("storage")
	assert.False(t, b.IsCircuitOpen("storage"))
	assert.Equal(t, 0, b.FailureCount("storage"))
}

func TestCircuitResetsAfterTimeout(t *testing.T) {
	b := New(Config{CircuitBreakerTimeout: 60 * time.Second}, testLogger())
	now := time.Now()
	b.SetClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		b.RecordFailure("storage")
	}
	require.True(t, b.IsCircuitOpen("storage"))

	now = now.Add(59 * time.Second)
	assert.True(t, b.IsCircuitOpen("storage"), "just inside the window stays open")

	now = now.Add(2 * time.Second)
	assert.False(t, b.IsCircuitOpen("storage"))
	assert.Equal(t, 0, b.FailureCount("storage"), "the probe reset clears failures")
}

func TestExplicitReset(t *testing.T) {
	b := newTestBoundary()

	for i := 0; i < 5; i++ {
		b.RecordFailure("storage")
	}
	b.ResetCircuit("storage")

	assert.False(t, b.IsCircuitOpen("storage"))
	assert.Equal(t, 0, b.FailureCount("storage"))
}

func TestReportTracksBoundedHistory(t *testing.T) {
	b := New(Config{MaxTrackedErrors: 3}, testLogger())

	for i := 0; i < 5; i++ {
		b.Report("svc", "op", errors.New("fail"))
	}

	assert.Equal(t, 5, b.TotalErrors())
	assert.Len(t, b.RecentErrors(), 3)
}

func TestSafeExecuteReturnsResult(t *testing.T) {
	b := newTestBoundary()

	v := SafeExecute(b, "svc", "op", func() (int, error) { return 7, nil }, -1)
	assert.Equal(t, 7, v)
	assert.Equal(t, 0, b.TotalErrors())
}

func TestSafeExecuteFallsBackOnError(t *testing.T) {
	b := newTestBoundary()

	v := SafeExecute(b, "svc", "op", func() (int, error) { return 0, errors.New("nope") }, -1)
	assert.Equal(t, -1, v)
	assert.Equal(t, 1, b.TotalErrors())
	assert.Equal(t, 1, b.FailureCount("svc"))
}

func TestSafeExecuteCatchesPanic(t *testing.T) {
	b := newTestBoundary()

	v := SafeExecute(b, "svc", "op", func() (string, error) { panic("kaboom") }, "fallback")
	assert.Equal(t, "fallback", v)

	reports := b.RecentErrors()
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0].Err.Error(), "kaboom")
}

func TestExecuteWithRetrySucceedsEventually(t *testing.T) {
	b := newTestBoundary()
	ctx := context.Background()

	attempts := 0
	v, ok := ExecuteWithRetry(b, ctx, "svc", "op", 3, time.Millisecond, func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 0, b.FailureCount("svc"), "success resets the count")
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	b := newTestBoundary()
	ctx := context.Background()

	attempts := 0
	_, ok := ExecuteWithRetry(b, ctx, "svc", "op", 2, time.Millisecond, func(context.Context) (int, error) {
		attempts++
		return 0, errors.New("persistent")
	})

	assert.False(t, ok)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, b.TotalErrors())
	assert.Contains(t, b.RecentErrors()[0].Operation, "attempt 1/3")
}

func TestExecuteWithRetryHonorsContextCancel(t *testing.T) {
	b := newTestBoundary()
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	_, ok := ExecuteWithRetry(b, ctx, "svc", "op", 5, time.Hour, func(context.Context) (int, error) {
		attempts++
		cancel()
		return 0, errors.New("fail")
	})

	assert.False(t, ok)
	assert.Equal(t, 1, attempts, "cancel during the backoff stops retrying")
}

func TestExecuteIfHealthySkipsOpenCircuit(t *testing.T) {
	b := newTestBoundary()

	for i := 0; i < 5; i++ {
		b.RecordFailure("svc")
	}

	ran := false
	_, ok := ExecuteIfHealthy(b, "svc", "op", func() (int, error) {
		ran = true
		return 1, nil
	})

	assert.False(t, ok)
	assert.False(t, ran)
}

func TestExecuteIfHealthyRunsAndResets(t *testing.T) {
	b := newTestBoundary()
	b.RecordFailure("svc")

	v, ok := ExecuteIfHealthy(b, "svc", "op", func() (int, error) { return 9, nil })

	assert.True(t, ok)
	assert.Equal(t, 9, v)
	assert.Equal(t, 0, b.FailureCount("svc"))
}

func TestClassifyErrorKeywords(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category Category
		severity Severity
		action   Action
	}{
		{"render", errors.New("WebGL context lost"), CategoryRender, SeverityMedium, ActionSkipRender},
		{"audio", errors.New("sound device busy"), CategoryAudio, SeverityLow, ActionDisableAudio},
		{"plugin", errors.New("plugin init failed"), CategoryPlugin, SeverityMedium, ActionDisablePlugin},
		{"system", errors.New("out of memory"), CategorySystem, SeverityCritical, ActionRestartRequired},
		{"network", errors.New("connection refused"), CategoryNetwork, SeverityMedium, ActionRetry},
		{"unknown", errors.New("something odd"), CategoryUnknown, SeverityMedium, ActionLogOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClassifyError(tt.err)
			assert.Equal(t, tt.category, c.Category)
			assert.Equal(t, tt.severity, c.Severity)
			assert.Equal(t, tt.action, c.Action)
		})
	}
}

func TestClassifyNilError(t *testing.T) {
	c := ClassifyError(nil)
	assert.Equal(t, CategoryUnknown, c.Category)
	assert.Equal(t, SeverityLow, c.Severity)
	assert.True(t, c.Recoverable)
}

func TestSystemErrorsAreNotRecoverable(t *testing.T) {
	c := ClassifyError(errors.New("quota exceeded"))
	assert.False(t, c.Recoverable)
}

func TestHealthProgression(t *testing.T) {
	b := newTestBoundary()
	now := time.Now()
	b.SetClock(func() time.Time { return now })

	assert.Equal(t, HealthHealthy, b.Health())

	b.Report("svc", "op", errors.New("minor hiccup"))
	assert.Equal(t, HealthDegraded, b.Health(), "all errors recent means degraded")

	// Age the error out of the recent window.
	now = now.Add(10 * time.Minute)
	assert.Equal(t, HealthStable, b.Health())

	b.Report("svc", "op", errors.New("out of memory"))
	assert.Equal(t, HealthCritical, b.Health())
}

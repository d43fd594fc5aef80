package boundary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config holds circuit breaker and error tracking settings.
type Config struct {
	// CircuitBreakerThreshold is the number of consecutive failures that
	// opens a service's circuit (default: 5).
	CircuitBreakerThreshold int
	// CircuitBreakerTimeout is how long an open circuit stays open after
	// the last failure before the next probe closes it again (default: 60s).
	CircuitBreakerTimeout time.Duration
	// MaxTrackedErrors bounds the in-memory error history used for health
	// aggregation (default: 50).
	MaxTrackedErrors int
	// RecentWindow is how far back an error counts as "recent" for the
	// degraded-health ratio (default: 5m).
	RecentWindow time.Duration
}

// DefaultConfig returns the default boundary configuration.
func DefaultConfig() Config {
	return Config{
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   60 * time.Second,
		MaxTrackedErrors:        50,
		RecentWindow:            5 * time.Minute,
	}
}

// circuit is the per-service breaker state. Unlike a three-state breaker
// there is no half-open probe phase: the circuit closes again as soon as
// the timeout window has elapsed since the last failure.
type circuit struct {
	failures    int
	lastFailure time.Time
	open        bool
}

// ReportedError is one recorded failure with its classification.
type ReportedError struct {
	Service        string
	Operation      string
	Err            error
	Classification Classification
	Timestamp      time.Time
}

// Boundary wraps arbitrary callables with circuit breaking, retries and
// fallback values so a chronically failing subsystem degrades instead of
// crashing the game. All runtime errors stop here; nothing propagates.
type Boundary struct {
	mu       sync.Mutex
	circuits map[string]*circuit
	errors   []ReportedError
	total    int

	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// New creates a boundary. Zero-valued config fields take defaults.
func New(cfg Config, logger *slog.Logger) *Boundary {
	def := DefaultConfig()
	if cfg.CircuitBreakerThreshold <= 0 {
		cfg.CircuitBreakerThreshold = def.CircuitBreakerThreshold
	}
	if cfg.CircuitBreakerTimeout <= 0 {
		cfg.CircuitBreakerTimeout = def.CircuitBreakerTimeout
	}
	if cfg.MaxTrackedErrors <= 0 {
		cfg.MaxTrackedErrors = def.MaxTrackedErrors
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = def.RecentWindow
	}

	return &Boundary{
		circuits: make(map[string]*circuit),
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.With("component", "boundary"),
	}
}

// SetClock overrides the time source. Tests use this to simulate the
// circuit timeout window elapsing.
func (b *Boundary) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Report records an error against a service, classifies it, advances the
// circuit state, and logs it. It returns the recorded report.
func (b *Boundary) Report(service, operation string, err error) ReportedError {
	report := ReportedError{
		Service:        service,
		Operation:      operation,
		Err:            err,
		Classification: ClassifyError(err),
	}

	b.mu.Lock()
	report.Timestamp = b.now()
	b.total++
	b.errors = append(b.errors, report)
	if len(b.errors) > b.cfg.MaxTrackedErrors {
		copy(b.errors, b.errors[len(b.errors)-b.cfg.MaxTrackedErrors:])
		b.errors = b.errors[:b.cfg.MaxTrackedErrors]
	}
	b.recordFailureLocked(service)
	b.mu.Unlock()

	b.logger.Warn("error reported",
		"service", service,
		"operation", operation,
		"category", report.Classification.Category,
		"severity", report.Classification.Severity,
		"error", err)

	return report
}

// RecordFailure advances the failure count for a service without logging a
// full report. The circuit opens once the threshold is reached.
func (b *Boundary) RecordFailure(service string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recordFailureLocked(service)
}

func (b *Boundary) recordFailureLocked(service string) {
	c := b.circuits[service]
	if c == nil {
		c = &circuit{}
		b.circuits[service] = c
	}

	c.failures++
	c.lastFailure = b.now()
	if !c.open && c.failures >= b.cfg.CircuitBreakerThreshold {
		c.open = true
		b.logger.Warn("circuit opened", "service", service, "failures", c.failures)
	}
}

// RecordSuccess resets a service's failure count to zero and closes its
// circuit.
func (b *Boundary) RecordSuccess(service string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.circuits[service]
	if c == nil {
		return
	}
	c.failures = 0
	c.open = false
}

// IsCircuitOpen reports whether a service's circuit is open. Probing an
// open circuit after the timeout window has elapsed since the last failure
// implicitly resets it to closed.
func (b *Boundary) IsCircuitOpen(service string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.circuits[service]
	if c == nil || !c.open {
		return false
	}

	if b.now().Sub(c.lastFailure) > b.cfg.CircuitBreakerTimeout {
		c.open = false
		c.failures = 0
		b.logger.Info("circuit reset after timeout", "service", service)
		return false
	}
	return true
}

// ResetCircuit explicitly closes a service's circuit and clears its
// failure count.
func (b *Boundary) ResetCircuit(service string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.circuits, service)
}

// FailureCount returns the current consecutive-failure count for a service.
func (b *Boundary) FailureCount(service string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c := b.circuits[service]; c != nil {
		return c.failures
	}
	return 0
}

// SafeExecute runs fn, catching any error or panic, and returns fallback on
// failure. The error is reported against the service but never propagated.
func SafeExecute[T any](b *Boundary, service, operation string, fn func() (T, error), fallback T) T {
	result, err := capture(fn)
	if err != nil {
		b.Report(service, operation, err)
		return fallback
	}
	return result
}

// SafeExecuteCtx is SafeExecute for context-aware callables.
func SafeExecuteCtx[T any](b *Boundary, ctx context.Context, service, operation string, fn func(context.Context) (T, error), fallback T) T {
	return SafeExecute(b, service, operation, func() (T, error) { return fn(ctx) }, fallback)
}

// ExecuteWithRetry runs fn up to maxRetries+1 times with a fixed delay
// between attempts. Each failed attempt is reported individually with an
// attempt-numbered operation tag. Returns the zero value and false if all
// attempts fail.
func ExecuteWithRetry[T any](b *Boundary, ctx context.Context, service, operation string, maxRetries int, delay time.Duration, fn func(context.Context) (T, error)) (T, bool) {
	var zero T

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := capture(func() (T, error) { return fn(ctx) })
		if err == nil {
			b.RecordSuccess(service)
			return result, true
		}

		tag := fmt.Sprintf("%s (attempt %d/%d)", operation, attempt+1, maxRetries+1)
		b.Report(service, tag, err)

		if attempt == maxRetries {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, false
		}
	}
	return zero, false
}

// ExecuteIfHealthy skips execution entirely when the service's circuit is
// open, returning the zero value and false with no side effects. A
// successful execution resets the failure count.
func ExecuteIfHealthy[T any](b *Boundary, service, operation string, fn func() (T, error)) (T, bool) {
	var zero T
	if b.IsCircuitOpen(service) {
		return zero, false
	}

	result, err := capture(fn)
	if err != nil {
		b.Report(service, operation, err)
		return zero, false
	}
	b.RecordSuccess(service)
	return result, true
}

// capture runs fn, converting panics into errors.
func capture[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

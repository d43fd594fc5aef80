package boundary

// HealthStatus is the aggregate verdict over the tracked error history.
type HealthStatus string

const (
	// HealthHealthy means no errors have ever been recorded.
	HealthHealthy HealthStatus = "healthy"
	// HealthCritical means at least one system-class error was recorded.
	HealthCritical HealthStatus = "critical"
	// HealthDegraded means more than half of the tracked errors are recent.
	HealthDegraded HealthStatus = "degraded"
	// HealthStable means errors exist but none are critical or clustered.
	HealthStable HealthStatus = "stable"
)

// Health returns the aggregate health verdict. Critical beats degraded:
// one system-class error anywhere in the tracked history marks the whole
// process critical.
func (b *Boundary) Health() HealthStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 {
		return HealthHealthy
	}

	recent := 0
	for _, e := range b.errors {
		if e.Classification.Category == CategorySystem {
			return HealthCritical
		}
		if b.now().Sub(e.Timestamp) <= b.cfg.RecentWindow {
			recent++
		}
	}

	if len(b.errors) > 0 && float64(recent)/float64(len(b.errors)) > 0.5 {
		return HealthDegraded
	}
	return HealthStable
}

// TotalErrors returns the count of errors reported over the process
// lifetime, including those evicted from the bounded history.
func (b *Boundary) TotalErrors() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// RecentErrors returns a copy of the tracked error history, oldest first.
func (b *Boundary) RecentErrors() []ReportedError {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ReportedError, len(b.errors))
	copy(out, b.errors)
	return out
}

package boundary

import (
	"log/slog"
	"sync"

	"github.com/tekknoschtev/astral-surveyor/internal/events"
)

// Service is the event-emitting layer over Boundary. Every reported error
// is published on the bus; the first time a service's circuit opens a
// degradation event fires, and explicit recovery fires its counterpart.
type Service struct {
	mu       sync.Mutex
	degraded map[string]bool

	boundary   *Boundary
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewService creates the error service façade.
func NewService(b *Boundary, dispatcher *events.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		degraded:   make(map[string]bool),
		boundary:   b,
		dispatcher: dispatcher,
		logger:     logger.With("component", "errors"),
	}
}

// Boundary exposes the wrapped boundary for callers that need the generic
// execution helpers directly.
func (s *Service) Boundary() *Boundary { return s.boundary }

// Report records an error, publishes error.occurred, and escalates to
// degradation or critical events as the classification and circuit state
// demand.
func (s *Service) Report(service, operation string, err error) ReportedError {
	report := s.boundary.Report(service, operation, err)

	s.dispatcher.Emit(events.EventErrorOccurred, report)

	if report.Classification.Severity == SeverityCritical {
		s.dispatcher.Emit(events.EventErrorCritical, report)
	}

	if s.boundary.IsCircuitOpen(service) {
		s.mu.Lock()
		first := !s.degraded[service]
		s.degraded[service] = true
		s.mu.Unlock()

		if first {
			s.logger.Warn("service degraded", "service", service)
			s.dispatcher.Emit(events.EventServiceDegraded, service)
		}
	}

	return report
}

// IsServiceHealthy reports whether a service's circuit is closed.
func (s *Service) IsServiceHealthy(service string) bool {
	return !s.boundary.IsCircuitOpen(service)
}

// MarkServiceRecovered explicitly closes a service's circuit, clears its
// degraded flag, and publishes the recovery event.
func (s *Service) MarkServiceRecovered(service string) {
	s.boundary.ResetCircuit(service)

	s.mu.Lock()
	wasDegraded := s.degraded[service]
	delete(s.degraded, service)
	s.mu.Unlock()

	if wasDegraded {
		s.logger.Info("service recovered", "service", service)
	}
	s.dispatcher.Emit(events.EventServiceRecovered, service)
}

// Health proxies the boundary's aggregate health verdict.
func (s *Service) Health() HealthStatus { return s.boundary.Health() }

package audio

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// maxPendingTasks caps the number of outstanding scheduled tasks. The
// scheduler is best-effort: when the cap is reached new tasks are dropped
// rather than queued, which for layered audio cues is the right call.
const maxPendingTasks = 16

// TaskScheduler runs delayed, best-effort tasks on their own goroutines
// with a concurrency cap.
type TaskScheduler struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	mu     sync.Mutex
	timers []*time.Timer
	closed bool

	logger *slog.Logger
}

// NewTaskScheduler creates the scheduler.
func NewTaskScheduler(logger *slog.Logger) *TaskScheduler {
	return &TaskScheduler{
		sem:    semaphore.NewWeighted(maxPendingTasks),
		logger: logger.With("component", "scheduler"),
	}
}

// Schedule queues task to run after delay. Tasks scheduled after Close, or
// past the pending cap, are dropped silently.
func (s *TaskScheduler) Schedule(delay time.Duration, task func()) {
	if !s.sem.TryAcquire(1) {
		s.logger.Debug("scheduler at capacity, task dropped")
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.sem.Release(1)
		return
	}
	s.wg.Add(1)

	t := time.AfterFunc(delay, func() {
		defer s.wg.Done()
		defer s.sem.Release(1)

		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		task()
	})
	s.timers = append(s.timers, t)
	s.mu.Unlock()
}

// Close stops accepting tasks and cancels pending timers. Tasks already
// firing are waited for.
func (s *TaskScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()

	for _, t := range timers {
		if t.Stop() {
			// Timer never fired; its AfterFunc won't run, so settle its
			// accounting here.
			s.wg.Done()
			s.sem.Release(1)
		}
	}
	s.wg.Wait()
}

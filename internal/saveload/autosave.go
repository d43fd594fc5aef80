package saveload

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// discoverySaveInterval throttles discovery-triggered saves; a cluster of
// discoveries in quick succession produces at most one save per interval.
const discoverySaveInterval = 5 * time.Second

// throttle wraps a rate limiter with a single-token bucket.
type throttle struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (t *throttle) allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limiter.Allow()
}

// EnableAutoSave starts periodic background saves. Calling it again
// replaces the running timer with the new interval. Autosave failures are
// logged and swallowed: a broken disk must never interrupt play.
func (s *Service) EnableAutoSave(interval time.Duration) {
	s.autosaveMu.Lock()
	defer s.autosaveMu.Unlock()
	s.stopAutosaveLocked()

	stop := make(chan struct{})
	done := make(chan struct{})
	s.autosaveStop = stop
	s.autosaveDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.SaveGame(context.Background()); err != nil {
					s.logger.Warn("autosave failed", "error", err)
				}
			case <-stop:
				return
			}
		}
	}()

	s.logger.Info("autosave enabled", "interval", interval)
}

// DisableAutoSave stops the autosave timer. Safe to call when autosave was
// never enabled.
func (s *Service) DisableAutoSave() {
	s.autosaveMu.Lock()
	defer s.autosaveMu.Unlock()
	s.stopAutosaveLocked()
}

// stopAutosaveLocked stops the running timer and waits for its goroutine
// to exit. Caller holds autosaveMu, so the stop-and-replace is atomic with
// respect to other Enable/Disable calls. The timer goroutine never takes
// autosaveMu, so the wait cannot deadlock.
func (s *Service) stopAutosaveLocked() {
	if s.autosaveStop == nil {
		return
	}
	close(s.autosaveStop)
	<-s.autosaveDone
	s.autosaveStop = nil
	s.autosaveDone = nil
}

// SaveOnDiscovery performs a throttled save in response to a discovery.
// At most one save goes through per throttle interval; suppressed calls
// and failed saves are both silent, the discovery itself already
// succeeded.
func (s *Service) SaveOnDiscovery(ctx context.Context) {
	if !s.saveThrottler.allow() {
		return
	}
	if err := s.SaveGame(ctx); err != nil {
		s.logger.Warn("discovery save failed", "error", err)
	}
}

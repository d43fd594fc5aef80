package world

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
)

// SeedRegistry owns the universe seed and the universe reset counter. It is
// constructed once at the composition root and injected; there is no
// process-global seed state.
type SeedRegistry struct {
	mu         sync.Mutex
	seed       uint64
	resetCount int
}

// NewSeedRegistry creates a registry with the given starting seed.
func NewSeedRegistry(seed uint64) *SeedRegistry {
	return &SeedRegistry{seed: seed}
}

// NewRandomSeedRegistry creates a registry with a random starting seed.
func NewRandomSeedRegistry() *SeedRegistry {
	return &SeedRegistry{seed: rand.Uint64()}
}

// Seed returns the numeric universe seed.
func (r *SeedRegistry) Seed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seed
}

// SeedString returns the seed in the decimal form stored in save files.
func (r *SeedRegistry) SeedString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strconv.FormatUint(r.seed, 10)
}

// SetSeedString parses and applies a seed from its save-file form. A value
// that does not parse as an unsigned integer is rejected and the current
// seed is left untouched.
func (r *SeedRegistry) SetSeedString(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", s, err)
	}

	r.mu.Lock()
	r.seed = v
	r.mu.Unlock()
	return nil
}

// ResetCount returns how many times the universe has been reset.
func (r *SeedRegistry) ResetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetCount
}

// SetResetCount restores the counter from a save file.
func (r *SeedRegistry) SetResetCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetCount = n
}

// ResetUniverse installs a new seed and increments the reset counter. This
// is the "new universe" entry point; discovery state is cleared separately
// by the discovery service.
func (r *SeedRegistry) ResetUniverse(seed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seed = seed
	r.resetCount++
}

package office

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/journal"
)

// Timing supplies every random choice an actor makes. Implementations must be
// safe for concurrent use.
type Timing interface {
	// EntryDelay is how long a client walks before reaching the office, in [0, TZ].
	EntryDelay() time.Duration
	// BreakDuration is the length of a worker's break, in [0, TU].
	BreakDuration() time.Duration
	// ServiceDuration is how long one service takes, in [0, MaxService].
	ServiceDuration() time.Duration
	// ClosingDelay is how long the office stays open, in [F/2, F].
	ClosingDelay() time.Duration
	// PickService returns a service type in 1..3.
	PickService() int
}

// RandomTiming draws uniformly distributed values from a seeded source.
type RandomTiming struct {
	mu   sync.Mutex
	rng  *rand.Rand
	sim  config.SimulationConfig
	seed uint64
}

// NewRandomTiming returns a Timing for sim. A zero seed picks one from the
// wall clock; Seed reports the seed in use so a run can be repeated.
func NewRandomTiming(sim config.SimulationConfig, seed int64) *RandomTiming {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &RandomTiming{
		rng:  rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		sim:  sim,
		seed: s,
	}
}

// Seed returns the seed the source was created with.
func (t *RandomTiming) Seed() uint64 {
	return t.seed
}

// between returns a uniform whole number of milliseconds in [lo, hi].
func (t *RandomTiming) between(lo, hi int) time.Duration {
	if hi <= lo {
		return time.Duration(max(lo, 0)) * time.Millisecond
	}
	t.mu.Lock()
	n := lo + t.rng.IntN(hi-lo+1)
	t.mu.Unlock()
	return time.Duration(n) * time.Millisecond
}

func (t *RandomTiming) EntryDelay() time.Duration {
	return t.between(0, t.sim.MaxEntryDelayMs)
}

func (t *RandomTiming) BreakDuration() time.Duration {
	return t.between(0, t.sim.MaxBreakMs)
}

func (t *RandomTiming) ServiceDuration() time.Duration {
	return t.between(0, t.sim.MaxServiceMs)
}

func (t *RandomTiming) ClosingDelay() time.Duration {
	return t.between(t.sim.CloseAfterMs/2, t.sim.CloseAfterMs)
}

func (t *RandomTiming) PickService() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return 1 + t.rng.IntN(journal.MaxService)
}

// FixedTiming returns the same durations every time. PickService cycles
// through Services, or always returns 1 when it is empty.
type FixedTiming struct {
	Entry    time.Duration
	Break    time.Duration
	Service  time.Duration
	Closing  time.Duration
	Services []int

	mu   sync.Mutex
	next int
}

func (t *FixedTiming) EntryDelay() time.Duration      { return t.Entry }
func (t *FixedTiming) BreakDuration() time.Duration   { return t.Break }
func (t *FixedTiming) ServiceDuration() time.Duration { return t.Service }
func (t *FixedTiming) ClosingDelay() time.Duration    { return t.Closing }

func (t *FixedTiming) PickService() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Services) == 0 {
		return 1
	}
	s := t.Services[t.next%len(t.Services)]
	t.next++
	return s
}

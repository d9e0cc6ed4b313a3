// Package rng provides the random source shared by the draft scorer,
// the game simulator, and the team name generator. The source is an
// interface so tests can inject a seeded generator instead of
// monkeypatching a global.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness contract the draft/sim/teamname packages
// depend on. Implementations do not need to be safe for concurrent use;
// the locked default returned by New is.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
	// Shuffle randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// New returns a time-seeded source safe for concurrent use.
func New() Source {
	return &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a deterministic source for tests.
func NewSeeded(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// InRange returns a uniform value in [min, max) drawn from src.
func InRange(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// Package rules holds the dice and the opposed rolls every piece uses to
// attack, resist and manoeuvre.
package rules

import (
	"math/rand"
	"sync"
	"time"
)

// Roller is the source of randomness for the engine. Intn returns a value in
// [0, n).
type Roller interface {
	Intn(n int) int
}

// D10 draws uniformly from 0..9 inclusive.
func D10(r Roller) int {
	return r.Intn(10)
}

// NewRoller returns a math/rand backed roller. A zero seed uses the clock.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes n elements in place with swap.
func Shuffle(r Roller, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// Sequence replays fixed values, wrapping around when exhausted. Each value is
// reduced modulo n so a script written for d10 still works for other draws.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		values = []int{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

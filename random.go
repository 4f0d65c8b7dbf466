package main

import (
	"math/rand"
	"sync"

	"github.com/jonboulle/clockwork"
)

// diceRoller is the process-local PRNG behind every roll
type diceRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// newDiceRoller seeds from the clock unless a fixed seed is given
func newDiceRoller(seed int64, clock clockwork.Clock) *diceRoller {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &diceRoller{random: rand.New(rand.NewSource(seed))}
}

// roll returns a uniform integer in [low, high]
func (d *diceRoller) roll(low, high int) int {
	if high < low {
		low, high = high, low
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return low + d.random.Intn(high-low+1)
}

package main

import (
	"sync"
	"time"
)

const (
	stateIdle = iota
	stateBusy
)

const (
	dieLow  = 1
	dieHigh = 6
)

// rollController turns debounced button edges into exactly one
// animate/roll/render sequence at a time
type rollController struct {
	rt       runtimeConfig
	dice     randomSource
	sinks    []outputSink
	debounce time.Duration

	mu           sync.Mutex
	state        int
	lastAccepted time.Time
	accepted     bool // lastAccepted is valid
	count        int
	closed       bool
	inFlight     sync.WaitGroup
}

func newRollController(rt runtimeConfig, dice randomSource, sinks []outputSink) *rollController {
	return &rollController{
		rt:       rt,
		dice:     dice,
		sinks:    sinks,
		debounce: rt.settings.GetDuration(sDebounce),
		state:    stateIdle,
	}
}

// acquire is the Idle -> Busy check-and-set
func (rc *rollController) acquire(ts time.Time) (int, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.closed || rc.state == stateBusy {
		return 0, false
	}
	if rc.accepted && ts.Sub(rc.lastAccepted) < rc.debounce {
		return 0, false
	}
	rc.state = stateBusy
	rc.lastAccepted = ts
	rc.accepted = true
	rc.count++
	rc.inFlight.Add(1)
	return rc.count, true
}

func (rc *rollController) releaseBusy() {
	rc.mu.Lock()
	rc.state = stateIdle
	rc.mu.Unlock()
	rc.inFlight.Done()
}

// onEdge is called for every falling edge, from any goroutine.  It returns
// false without side effects when the edge is dropped.
func (rc *rollController) onEdge(ts time.Time) bool {
	count, ok := rc.acquire(ts)
	if !ok {
		if rc.rt.settings.GetBool(sDebug) {
			rc.rt.logger.Printf("edge at %s dropped", ts.Format("15:04:05.000"))
		}
		return false
	}
	defer rc.releaseBusy()

	for _, s := range rc.sinks {
		if a, ok := s.(interluder); ok {
			if err := a.interlude(); err != nil {
				rc.rt.logger.Printf("%s interlude failed: %v", s.name(), err)
			}
		}
	}

	roll := rc.dice.roll(dieLow, dieHigh)

	for _, s := range rc.sinks {
		if err := s.render(roll); err != nil {
			rc.rt.logger.Printf("%s render %d failed: %v", s.name(), roll, err)
		}
	}

	rc.rt.logger.Printf("button pressed %d times. new roll of: %d.", count, roll)
	return true
}

func (rc *rollController) busy() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state == stateBusy
}

func (rc *rollController) presses() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.count
}

// stop drops every later edge and waits for a roll in progress to finish
func (rc *rollController) stop() error {
	rc.mu.Lock()
	rc.closed = true
	rc.mu.Unlock()
	rc.inFlight.Wait()
	return nil
}

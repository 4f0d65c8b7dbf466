package main

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// logLed stands in for the GPIO pins off-Pi and in tests: it keeps the pin
// states and an audit trail of every change
type logLed struct {
	mu         sync.Mutex
	leds       map[int]bool
	audit      []string
	disableLog bool
	closed     bool
	failPin    int // set() on this pin fails, 0 for never
	logger     flogger
}

func (ll *logLed) init() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds = make(map[int]bool)
	ll.audit = make([]string, 0)
	ll.closed = false
	ll.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (ll *logLed) set(pinNum int, on bool) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if ll.closed {
		return errors.Errorf("set LED %v: gpio closed", pinNum)
	}
	if ll.failPin != 0 && pinNum == ll.failPin {
		return errors.Errorf("set LED %v: pin unavailable", pinNum)
	}
	ll.leds[pinNum] = on
	msg := fmt.Sprintf("Set LED %v to %v", pinNum, on)
	if !ll.disableLog {
		ll.logger.Println(msg)
	}
	ll.audit = append(ll.audit, msg)
	return nil
}

func (ll *logLed) close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.closed = true
	return nil
}

func (ll *logLed) get(pinNum int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[pinNum]
}

func (ll *logLed) isClosed() bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.closed
}

// auditLog copies the changes so far
func (ll *logLed) auditLog() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ret := make([]string, len(ll.audit))
	copy(ret, ll.audit)
	return ret
}

func (ll *logLed) clearAudit() {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.audit = ll.audit[:0]
}

package main

import (
	"sync"

	"github.com/stianeikeland/go-rpio"
)

// noButtons is a button nobody presses unless told to
type noButtons struct {
	mu     sync.Mutex
	btn    buttonMap
	state  rpio.State
	err    error
	closed bool
}

func (nb *noButtons) initButtons(settings configSettings) error {
	return nil
}

func (nb *noButtons) setupButtons(btn buttonMap, rt runtimeConfig) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.btn = btn
	nb.state = nb.level(false)
	nb.closed = false
	return nil
}

// level is the pin state for pressed/released with the configured wiring
func (nb *noButtons) level(pressed bool) rpio.State {
	if pressed == nb.btn.pullup {
		return rpio.Low
	}
	return rpio.High
}

func (nb *noButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.state, nb.err
}

func (nb *noButtons) closeButtons() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.closed = true
}

func (nb *noButtons) press() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.state = nb.level(true)
}

func (nb *noButtons) clear() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.state = nb.level(false)
}

// fail makes every later read return err
func (nb *noButtons) fail(err error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.err = err
}

func (nb *noButtons) isClosed() bool {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.closed
}

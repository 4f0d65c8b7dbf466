package main

import (
	// gpio lib
	"github.com/stianeikeland/go-rpio"
)

type rpioButtons struct {
	rpin rpio.Pin
	open bool
}

func (rb *rpioButtons) initButtons(settings configSettings) error {
	return rpio.Open()
}

func (rb *rpioButtons) setupButtons(btn buttonMap, rt runtimeConfig) error {
	rb.rpin = rpio.Pin(btn.pinNum)
	rb.rpin.Input()
	if btn.pullup {
		rb.rpin.PullUp() // GND => button press
	} else {
		rb.rpin.PullDown() // +V -> button press
	}
	rb.open = true
	return nil
}

func (rb *rpioButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	return rb.rpin.Read(), nil
}

// closeButtons leaves the mapping alone, the LED bar shares it and closes it
func (rb *rpioButtons) closeButtons() {
	if rb.open {
		rb.rpin.PullOff()
		rb.open = false
	}
}

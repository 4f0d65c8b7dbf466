package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

type rpioLed struct {
	pins map[int]rpio.Pin
}

func (rpi *rpioLed) init() error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "open gpio")
	}
	rpi.pins = make(map[int]rpio.Pin)
	return nil
}

func (rpi *rpioLed) set(pinNum int, on bool) error {
	if rpi.pins == nil {
		return errors.Errorf("set pin %v: gpio not open", pinNum)
	}
	pin, ok := rpi.pins[pinNum]
	if !ok {
		pin = rpio.Pin(pinNum)
		pin.Output()
		rpi.pins[pinNum] = pin
	}
	if on {
		pin.High()
	} else {
		pin.Low()
	}
	return nil
}

func (rpi *rpioLed) close() error {
	if rpi.pins == nil {
		return nil
	}
	// leave every pin we drove low
	for _, pin := range rpi.pins {
		pin.Low()
	}
	rpi.pins = nil
	return rpio.Close()
}

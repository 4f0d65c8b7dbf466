package main

import (
	"github.com/pkg/errors"
)

// barDisplay shows a roll as the first n LEDs of a row, in pin order
type barDisplay struct {
	rt       runtimeConfig
	pins     []int
	released bool
}

func openBarDisplay(rt runtimeConfig) (*barDisplay, error) {
	pins := rt.settings.GetInts(sLEDPins)
	// one LED per face
	if len(pins) != dieHigh {
		return nil, errors.Wrapf(errPeripheralInit, "%s has %d pins, want %d", sLEDPins, len(pins), dieHigh)
	}
	if err := rt.led.init(); err != nil {
		return nil, errors.Wrapf(errPeripheralInit, "led bar: %v", err)
	}
	bd := &barDisplay{rt: rt, pins: pins}
	// start dark, the pins may be left over from a previous run
	if err := bd.setAll(false); err != nil {
		rt.led.close()
		return nil, errors.Wrapf(errPeripheralInit, "led bar: %v", err)
	}
	return bd, nil
}

func (bd *barDisplay) name() string {
	return "bar"
}

func (bd *barDisplay) set(pin int, on bool) error {
	if bd.released {
		return errors.Wrapf(errRender, "led %d: bar released", pin)
	}
	if err := bd.rt.led.set(pin, on); err != nil {
		return errors.Wrapf(errRender, "led %d: %v", pin, err)
	}
	return nil
}

func (bd *barDisplay) setAll(on bool) error {
	for _, p := range bd.pins {
		if err := bd.set(p, on); err != nil {
			return err
		}
	}
	return nil
}

// render lights the first n LEDs and turns the rest off, 0 is all off
func (bd *barDisplay) render(n int) error {
	if n < 0 || n > dieHigh {
		return errors.Wrapf(errInvalidInput, "bar value %d outside [0,%d]", n, dieHigh)
	}
	for i, p := range bd.pins {
		if err := bd.set(p, i < n); err != nil {
			return err
		}
	}
	return nil
}

// renderStatus clears the bar, there is no way to show text
func (bd *barDisplay) renderStatus(text string) error {
	return bd.setAll(false)
}

// interlude is the busy animation: clear, pause, light each LED in turn,
// then turn each off in turn
func (bd *barDisplay) interlude() error {
	settings := bd.rt.settings
	step := settings.GetDuration(sInterludeStep)

	if err := bd.setAll(false); err != nil {
		return err
	}
	bd.rt.clock.Sleep(settings.GetDuration(sInterludeClr))

	for _, on := range []bool{true, false} {
		for _, p := range bd.pins {
			if err := bd.set(p, on); err != nil {
				return err
			}
			bd.rt.clock.Sleep(step)
		}
	}
	return nil
}

// release drives every LED low and gives up the GPIO
func (bd *barDisplay) release() error {
	if bd.released {
		return nil
	}
	err := bd.setAll(false)
	bd.released = true
	if cerr := bd.rt.led.close(); cerr != nil && err == nil {
		err = errors.Wrapf(errRender, "close gpio: %v", cerr)
	}
	return err
}

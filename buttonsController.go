package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

const dButtonSleep = 10 * time.Millisecond

// check the press state, and return the press state
type pressState struct {
	pressed bool      // is it pressed?
	start   time.Time // when did this state start?
	changed bool      // did it change on this read?
}

// isDown interprets the pin level based on the wiring
func isDown(btn buttonMap, res rpio.State) bool {
	if btn.pullup {
		// GND => button press
		return res == rpio.Low
	}
	return res == rpio.High
}

func checkButton(rt runtimeConfig, btn buttonMap, prev pressState) (pressState, error) {
	now := rt.clock.Now()
	res, err := rt.buttons.readButton(rt)
	if err != nil {
		return prev, err
	}

	down := isDown(btn, res)
	if down == prev.pressed {
		prev.changed = false
		return prev, nil
	}
	st := pressState{pressed: down, start: now, changed: true}
	rt.logger.Printf("button changed state: %+v", st)
	return st, nil
}

// startWatchButtons sets up the button and polls it on its own goroutine.
// Every falling edge (press) is handed to onPress on a goroutine of its
// own, so a press during a roll still reaches onPress and can be dropped
// there.  The returned channel is closed when the watcher exits.
func startWatchButtons(rt runtimeConfig, onPress func(time.Time) bool) (<-chan struct{}, error) {
	rt.logger = &ThreadLogger{name: "Buttons"}
	settings := rt.settings

	if err := rt.buttons.initButtons(settings); err != nil {
		return nil, errors.Wrapf(errPeripheralInit, "buttons: %v", err)
	}
	btn := settings.GetButtonMap(sButtonPin)
	if err := rt.buttons.setupButtons(btn, rt); err != nil {
		rt.buttons.closeButtons()
		return nil, errors.Wrapf(errPeripheralInit, "button on pin %d: %v", btn.pinNum, err)
	}

	done := make(chan struct{})
	go runWatchButtons(rt, btn, onPress, done)
	return done, nil
}

func runWatchButtons(rt runtimeConfig, btn buttonMap, onPress func(time.Time) bool, done chan struct{}) {
	defer close(done)
	defer rt.buttons.closeButtons()
	defer func() {
		rt.logger.Println("exiting runWatchButtons")
	}()

	comms := rt.comms
	state := pressState{start: rt.clock.Now()}

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runWatchButtons")
			return
		default:
		}

		newState, err := checkButton(rt, btn, state)
		if err != nil {
			// we're done
			rt.logger.Printf("quit from runWatchButtons: %v", err)
			comms.closeQuit()
			return
		}

		if newState.changed && newState.pressed {
			go onPress(newState.start)
		}

		state = newState
		rt.clock.Sleep(dButtonSleep)
	}
}

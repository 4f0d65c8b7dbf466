package main

import (
	"os"
	"unicode/utf8"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
	"github.com/stianeikeland/go-rpio"
)

// keyButtons treats a key on the terminal as the button, one key press is
// one press and release
type keyButtons struct {
	btn    buttonMap
	events chan termbox.Event
	down   bool
}

func (kb *keyButtons) initButtons(settings configSettings) error {
	err := termbox.Init()
	if err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	kb.events = make(chan termbox.Event, 16)
	go kb.pollKeys()

	// close it later
	return nil
}

func (kb *keyButtons) pollKeys() {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			select {
			case kb.events <- ev:
			default:
				// nobody is reading fast enough, a lost key is a lost press
			}
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

func (kb *keyButtons) setupButtons(btn buttonMap, rt runtimeConfig) error {
	kb.btn = btn
	return nil
}

func (kb *keyButtons) matches(ev termbox.Event) bool {
	if kb.btn.key == "" {
		return false
	}
	if kb.btn.key == " " && ev.Key == termbox.KeySpace {
		return true
	}
	r, _ := utf8.DecodeRuneInString(kb.btn.key)
	return ev.Ch == r
}

func (kb *keyButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	// a press only lasts until the next read
	pressed := false
	if kb.down {
		kb.down = false
	} else {
		keepReading := true
		for keepReading {
			select {
			case ev := <-kb.events:
				// the terminal is raw, ctrl-c never becomes a SIGINT
				if ev.Key == termbox.KeyCtrlC {
					select {
					case rt.comms.shutdown <- shutdownRequest{sig: os.Interrupt}:
					default:
					}
					continue
				}
				if kb.matches(ev) {
					pressed = true
					keepReading = false
				}
			default:
				keepReading = false
			}
		}
		kb.down = pressed
	}

	return kb.level(pressed), nil
}

func (kb *keyButtons) level(pressed bool) rpio.State {
	if pressed == kb.btn.pullup {
		return rpio.Low
	}
	return rpio.High
}

func (kb *keyButtons) closeButtons() {
	termbox.Interrupt()
	termbox.Close()
}

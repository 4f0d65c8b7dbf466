// utility functions
package main

import (
	"os"
	"sync"

	"github.com/jonboulle/clockwork"
)

type shutdownRequest struct {
	sig os.Signal
}

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
	shutdown chan shutdownRequest
}

// closeQuit is safe to call from every goroutine that wants out
func (c commChannels) closeQuit() {
	c.quitOnce.Do(func() { close(c.quit) })
}

type runtimeConfig struct {
	settings configSettings
	comms    commChannels
	clock    clockwork.Clock
	logger   flogger
	led      led
	buttons  buttons
	panel    panel
	dice     randomSource
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
		shutdown: make(chan shutdownRequest, 1),
	}
}

// initRuntime picks the real or simulated peripherals from the settings
func initRuntime(settings configSettings) runtimeConfig {
	rt := runtimeConfig{
		settings: settings,
		comms:    initCommChannels(),
		clock:    clockwork.NewRealClock(),
		logger:   &ThreadLogger{name: "Main"},
	}

	if settings.GetBool(sGPIOSim) {
		rt.led = &logLed{}
	} else {
		rt.led = &rpioLed{}
	}

	switch settings.GetString(sButtonSim) {
	case buttonsKeyboard:
		rt.buttons = &keyButtons{}
	case buttonsNone:
		rt.buttons = &noButtons{}
	default:
		rt.buttons = &rpioButtons{}
	}

	rt.panel = &oledPanel{}
	rt.dice = newDiceRoller(settings.GetInt64(sSeed), rt.clock)

	return rt
}

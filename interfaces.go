package main

import (
	"image"

	"github.com/stianeikeland/go-rpio"
)

type buttons interface {
	initButtons(settings configSettings) error
	setupButtons(pin buttonMap, rt runtimeConfig) error
	readButton(rt runtimeConfig) (rpio.State, error)
	closeButtons()
}

type led interface {
	init() error
	set(pin int, on bool) error
	close() error
}

type panel interface {
	openPanel(settings configSettings) error
	clear() error
	draw(img image.Image) error
	show() error
	closePanel() error
}

type randomSource interface {
	roll(low, high int) int
}

// outputSink is anything that can show a roll
type outputSink interface {
	name() string
	render(value int) error
	renderStatus(text string) error
	release() error
}

// interluder is a sink that can play the busy animation before a result
type interluder interface {
	interlude() error
}

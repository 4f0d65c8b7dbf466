package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestBarRender(t *testing.T) {
	rt, _, _ := testRuntime()
	leds := rt.led.(*logLed)
	pins := rt.settings.GetInts(sLEDPins)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)

	for n := 0; n <= 6; n++ {
		assert.NilError(t, bar.render(n))
		assert.Equal(t, ledsOn(leds, pins), n)
		for i, p := range pins {
			assert.Equal(t, leds.get(p), i < n, "render %d pin %d", n, p)
		}
	}
}

func TestBarRenderInvalid(t *testing.T) {
	rt, _, _ := testRuntime()
	leds := rt.led.(*logLed)
	pins := rt.settings.GetInts(sLEDPins)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	assert.NilError(t, bar.render(3))
	changes := len(leds.auditLog())

	for _, n := range []int{-1, 7, 100} {
		err := bar.render(n)
		assert.Assert(t, errors.Is(err, errInvalidInput), "render %d: %v", n, err)
	}

	// untouched
	assert.Equal(t, len(leds.auditLog()), changes)
	assert.Equal(t, ledsOn(leds, pins), 3)
}

func TestBarInterludeSequence(t *testing.T) {
	rt, clock, _ := testRuntime()
	leds := rt.led.(*logLed)
	pins := rt.settings.GetInts(sLEDPins)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	assert.NilError(t, bar.render(5))
	leds.clearAudit()

	done := make(chan error, 1)
	go func() { done <- bar.interlude() }()
	finishInterlude(clock)
	assert.NilError(t, <-done)

	expected := []string{}
	for _, p := range pins {
		expected = append(expected, fmt.Sprintf("Set LED %v to false", p))
	}
	for _, on := range []bool{true, false} {
		for _, p := range pins {
			expected = append(expected, fmt.Sprintf("Set LED %v to %v", p, on))
		}
	}
	// the clear, then 12 changes
	assert.DeepEqual(t, leds.auditLog(), expected)
	assert.Equal(t, ledsOn(leds, pins), 0)
}

func TestBarInterludePacing(t *testing.T) {
	rt, clock, _ := testRuntime()
	leds := rt.led.(*logLed)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	leds.clearAudit()

	done := make(chan error, 1)
	go func() { done <- bar.interlude() }()

	// cleared, waiting out the pause
	clock.BlockUntil(1)
	assert.Equal(t, len(leds.auditLog()), 6)
	clock.Advance(99 * time.Millisecond)
	assert.Equal(t, len(leds.auditLog()), 6)
	clock.Advance(time.Millisecond)

	// then one change every 20ms
	for i := 1; i <= 12; i++ {
		clock.BlockUntil(1)
		assert.Equal(t, len(leds.auditLog()), 6+i)
		clock.Advance(19 * time.Millisecond)
		assert.Equal(t, len(leds.auditLog()), 6+i)
		clock.Advance(time.Millisecond)
	}
	assert.NilError(t, <-done)
}

func TestBarStatusClears(t *testing.T) {
	rt, _, _ := testRuntime()
	leds := rt.led.(*logLed)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	assert.NilError(t, bar.render(6))
	assert.NilError(t, bar.renderStatus("hello"))
	assert.Equal(t, ledsOn(leds, rt.settings.GetInts(sLEDPins)), 0)
}

func TestBarPinFailure(t *testing.T) {
	rt, _, _ := testRuntime()
	leds := rt.led.(*logLed)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	leds.failPin = 19

	err = bar.render(4)
	assert.Assert(t, errors.Is(err, errRender), "%v", err)
}

func TestBarRelease(t *testing.T) {
	rt, _, _ := testRuntime()
	leds := rt.led.(*logLed)

	bar, err := openBarDisplay(rt)
	assert.NilError(t, err)
	assert.NilError(t, bar.render(6))

	assert.NilError(t, bar.release())
	assert.Equal(t, ledsOn(leds, rt.settings.GetInts(sLEDPins)), 0)
	assert.Assert(t, leds.isClosed())
	// twice is fine
	assert.NilError(t, bar.release())

	err = bar.render(2)
	assert.Assert(t, errors.Is(err, errRender), "%v", err)
}

func TestBarNoPins(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.settings.settings[sLEDPins] = []int{}

	_, err := openBarDisplay(rt)
	assert.Assert(t, errors.Is(err, errPeripheralInit), "%v", err)
}

func TestBarWrongPinCount(t *testing.T) {
	for _, pins := range [][]int{
		{5, 6, 12},
		{13, 16, 19, 20, 26, 21, 12},
	} {
		rt, _, _ := testRuntime()
		rt.settings.settings[sLEDPins] = pins

		_, err := openBarDisplay(rt)
		assert.Assert(t, errors.Is(err, errPeripheralInit), "%v: %v", pins, err)
		// never touched the gpio
		assert.Equal(t, len(rt.led.(*logLed).auditLog()), 0)
	}
}

package main

import (
	"testing"

	"github.com/nsf/termbox-go"
	"gotest.tools/assert"
)

func TestKeyMatches(t *testing.T) {
	space := &keyButtons{btn: buttonMap{key: " "}}
	assert.Assert(t, space.matches(termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}))
	assert.Assert(t, !space.matches(termbox.Event{Type: termbox.EventKey, Ch: 'r'}))

	letter := &keyButtons{btn: buttonMap{key: "r"}}
	assert.Assert(t, letter.matches(termbox.Event{Type: termbox.EventKey, Ch: 'r'}))
	assert.Assert(t, !letter.matches(termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}))

	// multi-byte keys compare as a whole rune
	accented := &keyButtons{btn: buttonMap{key: "é"}}
	assert.Assert(t, accented.matches(termbox.Event{Type: termbox.EventKey, Ch: 'é'}))
	assert.Assert(t, !accented.matches(termbox.Event{Type: termbox.EventKey, Ch: 0xc3}))

	none := &keyButtons{}
	assert.Assert(t, !none.matches(termbox.Event{Type: termbox.EventKey, Ch: 'r'}))
}

func TestKeyPressLastsOneRead(t *testing.T) {
	rt, _, comms := testRuntime()
	kb := &keyButtons{events: make(chan termbox.Event, 4)}
	assert.NilError(t, kb.setupButtons(buttonMap{key: "r", pullup: true}, rt))

	kb.events <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}
	kb.events <- termbox.Event{Type: termbox.EventKey, Ch: 'r'}

	st, err := kb.readButton(rt)
	assert.NilError(t, err)
	assert.Equal(t, st, kb.level(true))
	st, _ = kb.readButton(rt)
	assert.Equal(t, st, kb.level(false))

	// ctrl-c became a shutdown request
	select {
	case <-comms.shutdown:
	default:
		assert.Assert(t, false, "no shutdown request")
	}
}

package main

import (
	"io/ioutil"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gotest.tools/assert"

	"dscheirer.com/pidice/ssd1306"
)

func TestSettingsFromFile(t *testing.T) {
	logCaller(runtime.Caller(0))
	conf := filepath.Join(testLogDir, "pidice.conf")
	data := []byte(`{
		"buttonPin": 17,
		"buttonPullup": "false",
		"ledPins": [5, 6, 12, 23, 22, 27],
		"debounce": "250ms",
		"i2cDevice": "0x3D",
		"i2cBus": 3,
		"oled": false,
		"banner": "Go on then.",
		"seed": 99,
		"someoneElsesKey": [1, 2]
	}`)
	assert.NilError(t, ioutil.WriteFile(conf, data, 0644))

	s := initSettings(conf)
	assert.Equal(t, s.GetInt(sButtonPin), 17)
	assert.Equal(t, s.GetBool(sButtonPullup), false)
	assert.DeepEqual(t, s.GetInts(sLEDPins), []int{5, 6, 12, 23, 22, 27})
	assert.Equal(t, s.GetDuration(sDebounce), 250*time.Millisecond)
	assert.Equal(t, s.GetByte(sI2CDev), byte(0x3D))
	assert.Equal(t, s.GetInt(sI2CBus), 3)
	assert.Equal(t, s.GetBool(sOLED), false)
	assert.Equal(t, s.GetString(sBanner), "Go on then.")
	assert.Equal(t, s.GetInt64(sSeed), int64(99))

	// untouched keys keep their defaults
	assert.Equal(t, s.GetDuration(sInterludeStep), 20*time.Millisecond)
	assert.Equal(t, s.GetString(sButtonKey), " ")

	btn := s.GetButtonMap(sButtonPin)
	assert.Equal(t, btn.pinNum, 17)
	assert.Equal(t, btn.pullup, false)
}

func TestSettingsMissingFile(t *testing.T) {
	s := initSettings(filepath.Join(testLogDir, "nope", "pidice.conf"))
	d := defaultSettings()
	assert.Equal(t, s.GetInt(sButtonPin), 25)
	assert.DeepEqual(t, s.GetInts(sLEDPins), []int{13, 16, 19, 20, 26, 21})
	assert.Equal(t, s.GetDuration(sDebounce), d.GetDuration(sDebounce))
	assert.Equal(t, s.GetByte(sI2CDev), byte(ssd1306.DefaultAddress))
	assert.Equal(t, s.GetBool(sOLED), true)
}

func TestSettingsBadValues(t *testing.T) {
	for _, bad := range []string{
		`{"ledPins": [13, "sixteen"]}`,
		`{"debounce": "soon"}`,
		`{"i2cDevice": "0x1FF"}`,
		`{"buttonPin": "twenty"}`,
	} {
		s := defaultSettings()
		err := s.settingsFromJSON([]byte(bad))
		assert.Assert(t, err != nil, bad)
	}
}

func TestSettingsPinsAreCopied(t *testing.T) {
	s := defaultSettings()
	pins := s.GetInts(sLEDPins)
	pins[0] = 99
	assert.Equal(t, s.GetInts(sLEDPins)[0], 13)
}

package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"dscheirer.com/pidice/ssd1306"
)

// setting keys
const (
	sButtonPin     = "buttonPin"
	sButtonPullup  = "buttonPullup"
	sButtonSim     = "buttonSimulated"
	sButtonKey     = "buttonKey"
	sLEDPins       = "ledPins"
	sGPIOSim       = "gpioSimulated"
	sDebounce      = "debounce"
	sInterludeClr  = "interludeClear"
	sInterludeStep = "interludeStep"
	sOLED          = "oled"
	sI2CBus        = "i2cBus"
	sI2CDev        = "i2cDevice"
	sI2CSim        = "i2cSimulated"
	sDebug         = "debugDump"
	sLogFile       = "logFile"
	sBanner        = "banner"
	sSeed          = "seed"
)

// buttonSimulated values
const (
	buttonsGPIO     = ""
	buttonsKeyboard = "keyboard"
	buttonsNone     = "none"
)

type buttonMap struct {
	pinNum int
	pullup bool
	key    string
}

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sButtonPin] = 25
	s[sButtonPullup] = true // GND => button press
	s[sButtonSim] = buttonsGPIO
	s[sButtonKey] = " "
	s[sLEDPins] = []int{13, 16, 19, 20, 26, 21}
	s[sDebounce] = 100 * time.Millisecond
	s[sInterludeClr] = 100 * time.Millisecond
	s[sInterludeStep] = 20 * time.Millisecond
	s[sOLED] = true
	s[sI2CBus] = 1
	s[sI2CDev] = byte(ssd1306.DefaultAddress)
	s[sDebug] = false
	s[sLogFile] = "/var/log/pidice.log"
	s[sBanner] = "Press to roll."
	s[sSeed] = int64(0)

	sim := true
	if runtime.GOARCH == "arm" || runtime.GOARCH == "arm64" {
		sim = false
	}
	s[sGPIOSim] = sim
	s[sI2CSim] = sim

	return configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try "0x3C" style strings
				valString, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 0xff) {
				err = fmt.Errorf("%s out of range: %d", k, val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case int64:
			s.settings[k], err = jsonparser.GetInt(data, k)
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		case []int:
			pins := []int{}
			var inner error
			_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, e error) {
				if inner != nil {
					return
				}
				if dataType != jsonparser.Number {
					inner = fmt.Errorf("%s: not a number: %s", k, string(value))
					return
				}
				v, perr := jsonparser.ParseInt(value)
				if perr != nil {
					inner = perr
					return
				}
				pins = append(pins, int(v))
			}, k)
			if err == nil {
				err = inner
			}
			if err == nil {
				s.settings[k] = pins
			}
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return fmt.Errorf("setting %s: %v", k, err)
		}
	}
	return nil
}

// initSettings loads the config file over the defaults, a missing file is
// not an error
func initSettings(configFile string) configSettings {
	log.Println("initSettings")

	s := defaultSettings()

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Could not load conf file '%s': %v", configFile, err)
		}
		log.Printf("No conf file '%s', using defaults", configFile)
		return s
	}

	log.Printf("Reading configuration from '%s'", configFile)

	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

// the getters return the zero value for a missing key, except GetDuration
// which returns -1

func (s *configSettings) GetString(key string) string {
	v, _ := s.settings[key].(string)
	return v
}

func (s *configSettings) GetBool(key string) bool {
	v, _ := s.settings[key].(bool)
	return v
}

func (s *configSettings) GetDuration(key string) time.Duration {
	if v, ok := s.settings[key].(time.Duration); ok {
		return v
	}
	return -1
}

func (s *configSettings) GetByte(key string) byte {
	v, _ := s.settings[key].(byte)
	return v
}

func (s *configSettings) GetInt(key string) int {
	v, _ := s.settings[key].(int)
	return v
}

func (s *configSettings) GetInt64(key string) int64 {
	v, _ := s.settings[key].(int64)
	return v
}

// GetInts copies, callers may keep the slice
func (s *configSettings) GetInts(key string) []int {
	v, _ := s.settings[key].([]int)
	return append([]int(nil), v...)
}

func (s *configSettings) GetButtonMap(key string) buttonMap {
	return buttonMap{
		pinNum: s.GetInt(key),
		pullup: s.GetBool(sButtonPullup),
		key:    s.GetString(sButtonKey),
	}
}

// Dump logs every setting in key order
func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("%-16s %v", k, s.settings[k])
	}
}

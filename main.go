package main

import (
	"flag"
	"log"
	"os"
)

// pidice [-config={config file}]

// runDice acquires every peripheral, runs until asked to stop and returns
// the exit code.  Everything acquired is released on the way out, whatever
// the path.
func runDice(rt runtimeConfig) int {
	settings := rt.settings

	sh := newShutdownHandler(rt)
	defer sh.release()
	sh.watchSignals()

	bar, err := openBarDisplay(rt)
	if err != nil {
		rt.logger.Printf("startup failed: %v", err)
		return 1
	}
	sh.register(bar.name(), bar.release)
	sinks := []outputSink{bar}

	if settings.GetBool(sOLED) {
		text, err := openTextDisplay(rt)
		if err != nil {
			rt.logger.Printf("startup failed: %v", err)
			return 1
		}
		sh.register(text.name(), text.release)
		sinks = append(sinks, text)
	}

	banner := settings.GetString(sBanner)
	for _, s := range sinks {
		if err := s.renderStatus(banner); err != nil {
			rt.logger.Printf("%s banner: %v", s.name(), err)
		}
	}

	rc := newRollController(rt, rt.dice, sinks)

	done, err := startWatchButtons(rt, rc.onEdge)
	if err != nil {
		rt.logger.Printf("startup failed: %v", err)
		return 1
	}
	sh.register("buttons", func() error {
		rt.comms.closeQuit()
		<-done
		return nil
	})
	sh.register("controller", rc.stop)

	rt.logger.Printf("ready, button on pin %d, %d sinks", settings.GetInt(sButtonPin), len(sinks))
	return sh.wait()
}

func main() {
	configFile := flag.String("config", "/etc/default/pidice/pidice.conf", "config file path")
	flag.Parse()

	settings := initSettings(*configFile)

	// the keyboard button owns the terminal
	toStdout := settings.GetString(sButtonSim) != buttonsKeyboard
	logFile := initLogging(settings, toStdout)

	if settings.GetBool(sDebug) {
		log.Println(">>> Settings <<<")
		settings.Dump()
	}

	code := runDice(initRuntime(settings))
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

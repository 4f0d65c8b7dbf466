package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags every line with the name of the goroutine's job
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintln(v...))
}

// setupLogging sends the standard logger to a rotating file, and to stdout
// as well when asked
func setupLogging(settings configSettings, toStdout bool) (*lumberjack.Logger, error) {
	fname := settings.GetString(sLogFile)
	if fname == "" {
		return nil, fmt.Errorf("no %s configured", sLogFile)
	}

	logFile := &lumberjack.Logger{
		Filename:   fname,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	// lumberjack opens lazily, make sure we can write before switching over
	if _, err := logFile.Write([]byte{}); err != nil {
		return nil, err
	}

	var w io.Writer = logFile
	if toStdout {
		w = io.MultiWriter(os.Stdout, logFile)
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return logFile, nil
}

// initLogging is setupLogging for main: without a log file, lines go to
// stderr, unless the terminal belongs to the keyboard button
func initLogging(settings configSettings, toStdout bool) *lumberjack.Logger {
	logFile, err := setupLogging(settings, toStdout)
	if err != nil {
		log.Printf("Not logging to file: %v", err)
		if !toStdout {
			log.SetOutput(ioutil.Discard)
		}
		return nil
	}
	return logFile
}

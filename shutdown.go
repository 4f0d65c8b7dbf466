package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

const (
	shRunning = iota
	shShuttingDown
)

type releaseStep struct {
	name string
	fn   func() error
}

// shutdownHandler owns the release steps for everything acquired at startup
// and turns termination signals into a shutdown request for the main loop
type shutdownHandler struct {
	rt    runtimeConfig
	mu    sync.Mutex
	state int
	steps []releaseStep
	sigs  chan os.Signal
}

func newShutdownHandler(rt runtimeConfig) *shutdownHandler {
	rt.logger = &ThreadLogger{name: "Shutdown"}
	return &shutdownHandler{rt: rt, state: shRunning}
}

// register adds a release step, steps run in reverse order
func (sh *shutdownHandler) register(name string, fn func() error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.steps = append(sh.steps, releaseStep{name: name, fn: fn})
}

// watchSignals forwards SIGINT/SIGTERM to comms.shutdown until release
func (sh *shutdownHandler) watchSignals() {
	sh.sigs = make(chan os.Signal, 1)
	signal.Notify(sh.sigs, os.Interrupt, syscall.SIGTERM)

	comms := sh.rt.comms
	sigs := sh.sigs
	go func() {
		for {
			select {
			case sig := <-sigs:
				select {
				case comms.shutdown <- shutdownRequest{sig: sig}:
				default:
					// one pending request is enough
				}
			case <-comms.quit:
				return
			}
		}
	}()
}

// wait blocks until someone asks for a shutdown, the result is the exit code
func (sh *shutdownHandler) wait() int {
	comms := sh.rt.comms
	select {
	case req := <-comms.shutdown:
		sh.rt.logger.Printf("got %v, shutting down", req.sig)
		return 0
	case <-comms.quit:
		sh.rt.logger.Println("input stopped, shutting down")
		return 1
	}
}

func (sh *shutdownHandler) shuttingDown() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.state == shShuttingDown
}

// release runs once, every step is attempted even when an earlier one fails
func (sh *shutdownHandler) release() {
	sh.mu.Lock()
	if sh.state == shShuttingDown {
		sh.mu.Unlock()
		return
	}
	sh.state = shShuttingDown
	steps := sh.steps
	sh.mu.Unlock()

	if sh.sigs != nil {
		signal.Stop(sh.sigs)
	}
	sh.rt.comms.closeQuit()

	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i].fn(); err != nil {
			sh.rt.logger.Printf("release %s: %v", steps[i].name, err)
			continue
		}
		sh.rt.logger.Printf("released %s", steps[i].name)
	}
}

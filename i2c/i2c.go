package i2c

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"syscall"
)

// I2C is a single device on a /dev/i2c-N bus.  In simulated mode nothing is
// opened and every transfer is logged (and recorded) instead.
type I2C struct {
	fd      *os.File
	address uint8
	bus     int
	sim     bool
	quiet   bool

	mu      sync.Mutex
	history [][]byte
}

const (
	i2cSlave = 0x0703
)

func (dev *I2C) logWrite(buf []uint8) error {
	dev.history = append(dev.history, append([]byte(nil), buf...))
	if dev.quiet {
		return nil
	}
	var sb strings.Builder
	for i := 0; i < len(buf); i++ {
		fmt.Fprintf(&sb, "%02x ", buf[i])
	}
	log.Printf("i2c-%d@0x%02x write: %s", dev.bus, dev.address, sb.String())
	return nil
}

// Open a connection to the i2c device
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		return &I2C{sim: true, address: address, bus: bus}, nil
	}

	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := ioctl(f.Fd(), i2cSlave, uintptr(address)); err != nil {
		f.Close()
		return nil, err
	}
	return &I2C{fd: f, address: address, bus: bus}, nil
}

// Quiet stops logging simulated transfers (they are still recorded)
func (dev *I2C) Quiet(on bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.quiet = on
}

// History returns a copy of every simulated transfer so far
func (dev *I2C) History() [][]byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	ret := make([][]byte, len(dev.history))
	copy(ret, dev.history)
	return ret
}

func (dev *I2C) Close() error {
	if dev.sim {
		log.Printf("i2c-%d@0x%02x close", dev.bus, dev.address)
		return nil
	}
	return dev.fd.Close()
}

// WriteByte writes a single command-style byte
func (dev *I2C) WriteByte(single byte) error {
	_, err := dev.Write([]byte{single})
	return err
}

func (dev *I2C) Write(buf []uint8) (int, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	// the slave address is per-fd, re-select in case another process moved it
	if err := dev.selectLine(); err != nil {
		return 0, err
	}
	if dev.sim {
		return len(buf), dev.logWrite(buf)
	}
	return dev.fd.Write(buf)
}

func (dev *I2C) selectLine() error {
	if dev.sim {
		return nil
	}
	return ioctl(dev.fd.Fd(), i2cSlave, uintptr(dev.address))
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}

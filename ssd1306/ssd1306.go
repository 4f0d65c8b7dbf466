package ssd1306

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"dscheirer.com/pidice/i2c"
)

// panel geometry, the 0.91" 128x32 module
const (
	Width  = 128
	Height = 32

	pages      = Height / 8
	bufferSize = Width * pages
)

// control bytes, first byte of every i2c transfer
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// commands we use
const (
	cmdDisplayOff      = 0xAE
	cmdDisplayOn       = 0xAF
	cmdClockDiv        = 0xD5
	cmdMultiplex       = 0xA8
	cmdDisplayOffset   = 0xD3
	cmdStartLine       = 0x40
	cmdChargePump      = 0x8D
	cmdMemoryMode      = 0x20
	cmdSegRemap        = 0xA1
	cmdComScanDec      = 0xC8
	cmdComPins         = 0xDA
	cmdContrast        = 0x81
	cmdPrecharge       = 0xD9
	cmdVcomDetect      = 0xDB
	cmdDisplayAllOnRAM = 0xA4
	cmdNormalDisplay   = 0xA6
	cmdColumnAddr      = 0x21
	cmdPageAddr        = 0x22
)

// bytes of pixel data per data transfer
const dataChunk = 16

// DefaultAddress is the usual strapping of the 128x32 modules
const DefaultAddress = 0x3C

// SSD1306 is a 1-bit framebuffer plus the device it gets committed to
type SSD1306 struct {
	buffer         [bufferSize]uint8
	currentDisplay [bufferSize]uint8
	synced         bool
	i2cDev         *i2c.I2C
	dump           bool
	sim            bool
}

func (dev *SSD1306) simLog(v string, args ...interface{}) {
	if !dev.sim {
		return
	}
	log.Printf(v, args...)
}

// Open the bus and run the panel init sequence.  The panel is left on and
// blank RAM is not guaranteed until the first Show().
func Open(address uint8, bus int, simulated bool) (*SSD1306, error) {
	i2cDev, err := i2c.Open(address, bus, simulated)
	if err != nil {
		return nil, err
	}
	dev := &SSD1306{i2cDev: i2cDev, sim: simulated}
	if err := dev.Init(); err != nil {
		i2cDev.Close()
		return nil, err
	}
	return dev, nil
}

// Bus exposes the underlying device (simulated history, quiet mode)
func (dev *SSD1306) Bus() *i2c.I2C {
	return dev.i2cDev
}

func (dev *SSD1306) command(cmds ...byte) error {
	_, err := dev.i2cDev.Write(append([]byte{ctrlCommand}, cmds...))
	return err
}

// Init sends the power-up sequence for a 128x32 panel with the internal
// charge pump
func (dev *SSD1306) Init() error {
	seq := [][]byte{
		{cmdDisplayOff},
		{cmdClockDiv, 0x80},
		{cmdMultiplex, Height - 1},
		{cmdDisplayOffset, 0x00},
		{cmdStartLine | 0x00},
		{cmdChargePump, 0x14},
		{cmdMemoryMode, 0x00}, // horizontal addressing
		{cmdSegRemap},
		{cmdComScanDec},
		{cmdComPins, 0x02},
		{cmdContrast, 0x8F},
		{cmdPrecharge, 0xF1},
		{cmdVcomDetect, 0x40},
		{cmdDisplayAllOnRAM},
		{cmdNormalDisplay},
		{cmdDisplayOn},
	}
	for _, c := range seq {
		if err := dev.command(c...); err != nil {
			return err
		}
	}
	dev.synced = false
	return nil
}

func (dev *SSD1306) DebugDump(on bool) {
	dev.dump = on
}

func (dev *SSD1306) DisplayOn(on bool) error {
	dev.simLog("Display: %t", on)
	if on {
		return dev.command(cmdDisplayOn)
	}
	return dev.command(cmdDisplayOff)
}

// Fill sets every pixel of the framebuffer, nothing is sent until Show()
func (dev *SSD1306) Fill(on bool) {
	var val uint8
	if on {
		val = 0xff
	}
	for i := range dev.buffer {
		dev.buffer[i] = val
	}
}

// SetPixel is a no-op outside the panel
func (dev *SSD1306) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	pos := x + (y/8)*Width
	if on {
		dev.buffer[pos] |= 1 << uint(y%8)
	} else {
		dev.buffer[pos] &= ^(1 << uint(y%8))
	}
}

func (dev *SSD1306) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return dev.buffer[x+(y/8)*Width]&(1<<uint(y%8)) != 0
}

// Image copies img into the framebuffer, img.Bounds().Min lands on (0,0).
// Anything at half brightness or more is on.
func (dev *SSD1306) Image(img image.Image) error {
	b := img.Bounds()
	if b.Dx() > Width || b.Dy() > Height {
		return fmt.Errorf("image %dx%d larger than panel %dx%d", b.Dx(), b.Dy(), Width, Height)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			dev.SetPixel(x-b.Min.X, y-b.Min.Y, c.Y >= 0x80)
		}
	}
	return nil
}

func (dev *SSD1306) dumpDisplay() {
	var sb strings.Builder
	sb.WriteString("\n+" + strings.Repeat("-", Width) + "+\n")
	for y := 0; y < Height; y++ {
		sb.WriteString("|")
		for x := 0; x < Width; x++ {
			if dev.Pixel(x, y) {
				sb.WriteString("#")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", Width) + "+\n")
	log.Println(sb.String())
}

// Show commits the whole framebuffer to the panel
func (dev *SSD1306) Show() error {
	// refreshing on the same thing?
	if dev.synced && dev.currentDisplay == dev.buffer {
		return nil
	}

	if dev.dump {
		dev.dumpDisplay()
	}

	if err := dev.command(cmdColumnAddr, 0, Width-1); err != nil {
		return err
	}
	if err := dev.command(cmdPageAddr, 0, pages-1); err != nil {
		return err
	}
	for i := 0; i < bufferSize; i += dataChunk {
		chunk := append([]byte{ctrlData}, dev.buffer[i:i+dataChunk]...)
		if _, err := dev.i2cDev.Write(chunk); err != nil {
			dev.synced = false
			return err
		}
	}
	dev.currentDisplay = dev.buffer
	dev.synced = true
	return nil
}

func (dev *SSD1306) Close() error {
	return dev.i2cDev.Close()
}

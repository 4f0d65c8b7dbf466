package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"dscheirer.com/pidice/ssd1306"
)

// textDisplay writes one centered line on the OLED
type textDisplay struct {
	rt       runtimeConfig
	face     font.Face
	bounds   image.Rectangle
	released bool
}

func openTextDisplay(rt runtimeConfig) (*textDisplay, error) {
	if err := rt.panel.openPanel(rt.settings); err != nil {
		return nil, errors.Wrapf(errPeripheralInit, "oled on i2c-%d@0x%02x: %v",
			rt.settings.GetInt(sI2CBus), rt.settings.GetByte(sI2CDev), err)
	}
	return &textDisplay{
		rt:     rt,
		face:   basicfont.Face7x13,
		bounds: image.Rect(0, 0, ssd1306.Width, ssd1306.Height),
	}, nil
}

func (td *textDisplay) name() string {
	return "text"
}

func (td *textDisplay) render(value int) error {
	return td.renderStatus(fmt.Sprintf("Rolled a %d.", value))
}

// compose draws text centered on a blank frame
func (td *textDisplay) compose(text string) *image.Gray {
	img := image.NewGray(td.bounds)

	width := font.MeasureString(td.face, text).Ceil()
	metrics := td.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	x := (td.bounds.Dx() - width) / 2
	y := (td.bounds.Dy()-height)/2 + ascent

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: td.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return img
}

// renderStatus always goes clear, compose, commit so the panel never shows
// half a frame
func (td *textDisplay) renderStatus(text string) error {
	if td.released {
		return errors.Wrap(errRender, "text display released")
	}
	panel := td.rt.panel
	if err := panel.clear(); err != nil {
		return errors.Wrapf(errRender, "clear: %v", err)
	}
	if err := panel.draw(td.compose(text)); err != nil {
		return errors.Wrapf(errRender, "draw %q: %v", text, err)
	}
	if err := panel.show(); err != nil {
		return errors.Wrapf(errRender, "show %q: %v", text, err)
	}
	return nil
}

// release blanks the panel, turns it off and closes the bus
func (td *textDisplay) release() error {
	if td.released {
		return nil
	}
	td.released = true
	panel := td.rt.panel
	var err error
	if cerr := panel.clear(); cerr != nil {
		err = cerr
	} else if serr := panel.show(); serr != nil {
		err = serr
	}
	if cerr := panel.closePanel(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(errRender, "release oled: %v", err)
	}
	return nil
}

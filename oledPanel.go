package main

import (
	"image"

	"dscheirer.com/pidice/ssd1306"
)

type oledPanel struct {
	dev *ssd1306.SSD1306
}

func (op *oledPanel) openPanel(settings configSettings) error {
	var err error
	op.dev, err = ssd1306.Open(
		settings.GetByte(sI2CDev),
		settings.GetInt(sI2CBus),
		settings.GetBool(sI2CSim))
	if err != nil {
		return err
	}
	op.dev.DebugDump(settings.GetBool(sDebug))
	return nil
}

func (op *oledPanel) clear() error {
	op.dev.Fill(false)
	return nil
}

func (op *oledPanel) draw(img image.Image) error {
	return op.dev.Image(img)
}

func (op *oledPanel) show() error {
	return op.dev.Show()
}

func (op *oledPanel) closePanel() error {
	if err := op.dev.DisplayOn(false); err != nil {
		op.dev.Close()
		return err
	}
	return op.dev.Close()
}

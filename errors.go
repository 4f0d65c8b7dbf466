package main

import "github.com/pkg/errors"

// wrapped with errors.Wrapf at the failure site, matched with errors.Is
var (
	errInvalidInput   = errors.New("invalid input")
	errRender         = errors.New("render failed")
	errPeripheralInit = errors.New("peripheral init failed")
)

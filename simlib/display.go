// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Display is a fixed width output sink.
//
//	Inputs: in
//	Params: color
//
type Display struct {
	logicsim.Base
	In    logicsim.NodeID
	color string
}

func display(kind string, width int) logicsim.NewPartFn {
	return func(p logicsim.Params) (*logicsim.PartSpec, error) {
		p = p.Clone()
		p[logicsim.ParamWidth] = width
		return &logicsim.PartSpec{
			Kind:   kind,
			Params: p,
			Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
				s.FixedWidth()
				return &Display{
					In:    s.In(pIn, width),
					color: s.Params().String("color", "Red"),
				}, nil
			},
		}, nil
	}
}

var (
	// NewHexDisplay returns a 4 bits hexadecimal display.
	//
	NewHexDisplay = display("HexDisplay", 4)
	// NewDigitalLED returns a 1 bit LED.
	//
	NewDigitalLED = display("DigitalLED", 1)
)

// Resolve implements logicsim.Element.
//
func (d *Display) Resolve(c *logicsim.Circuit) {}

// Color returns the display color.
//
func (d *Display) Color() string { return d.color }

// Text returns the displayed text: a hex digit, "on"/"off" for LEDs, or "-"
// for a floating input.
//
func (d *Display) Text(c *logicsim.Circuit) string {
	v := c.Get(d.In)
	switch {
	case !v.Defined():
		return "-"
	case d.Width() == 1:
		if v.Uint64() == 1 {
			return "on"
		}
		return "off"
	}
	return strconv.FormatUint(v.Uint64(), 16)
}

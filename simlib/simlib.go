// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simlib provides the standard library of circuit elements.
//
// Each element kind has a constructor of type logicsim.NewPartFn, registered
// under the kind name:
//
//	c := logicsim.New("test")
//	c.MustPlace(simlib.Must(simlib.NewAdder(logicsim.Params{"width": 8})), "a=x, b=y, sum=s")
//
// Unless stated otherwise, elements take a "width" parameter (default 1) and
// their ports follow that width.
//
package simlib

import (
	"github.com/db47h/logicsim"
)

// Common port names.
const (
	pIn   = "in"
	pOut  = "out"
	pSel  = "sel"
	pEn   = "en"
	pData = "data"
)

// Must panics if err is not nil and returns spec otherwise.
//
func Must(spec *logicsim.PartSpec, err error) *logicsim.PartSpec {
	if err != nil {
		panic(err)
	}
	return spec
}

func init() {
	for k, fn := range map[string]logicsim.NewPartFn{
		"Input":              NewInput,
		"Output":             NewOutput,
		"Constant":           NewConstant,
		"Clock":              NewClock,
		"Stepper":            NewStepper,
		"And":                NewAnd,
		"Or":                 NewOr,
		"Nand":               NewNand,
		"Nor":                NewNor,
		"Xor":                NewXor,
		"Xnor":               NewXnor,
		"Not":                NewNot,
		"Adder":              NewAdder,
		"ALU":                NewALU,
		"UnsignedComparator": NewUnsignedComparator,
		"SignedComparator":   NewSignedComparator,
		"ShiftLeft":          NewShiftLeft,
		"ShiftRight":         NewShiftRight,
		"MSB":                NewMSB,
		"Mux":                NewMux,
		"Demux":              NewDemux,
		"PriorityEncoder":    NewPriorityEncoder,
		"BitSelector":        NewBitSelector,
		"Splitter":           NewSplitter,
		"TriState":           NewTriState,
		"ForceGate":          NewForceGate,
		"Counter":            NewCounter,
		"DLatch":             NewDLatch,
		"DFlipFlop":          NewDFlipFlop,
		"SRFlipFlop":         NewSRFlipFlop,
		"ROM":                NewROM,
		"HexDisplay":         NewHexDisplay,
		"DigitalLED":         NewDigitalLED,
		"SubCircuit":         NewSubCircuit,
	} {
		logicsim.Register(k, fn)
	}
}

func u(v uint64) logicsim.Value { return logicsim.Of(v) }

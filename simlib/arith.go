// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"math/bits"

	"github.com/db47h/logicsim"
)

// add returns the sum of a, b and cin truncated to width bits, and the carry
// out of that width.
func add(a, b, cin uint64, width int) (sum, carry uint64) {
	s, c := bits.Add64(a, b, cin)
	if width >= logicsim.MaxWidth {
		return s, c
	}
	return s & logicsim.Mask(width), (s >> uint(width)) & 1
}

// Adder is a full adder. A floating carry in is read as 0.
//
//	Inputs: a, b, cin (1 bit)
//	Outputs: sum, cout (1 bit)
//	Function: sum = a + b + cin; cout = carry out of sum
//
type Adder struct {
	logicsim.Base
	A    logicsim.NodeID `sim:"in"`
	B    logicsim.NodeID `sim:"in"`
	Cin  logicsim.NodeID `sim:"in,cin,1"`
	Sum  logicsim.NodeID `sim:"out"`
	Cout logicsim.NodeID `sim:"out,cout,1"`
}

// NewAdder returns a new adder.
//
func NewAdder(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Adder", (*Adder)(nil), p)
}

// IsResolvable returns true if both operands are defined.
//
func (a *Adder) IsResolvable(c *logicsim.Circuit) bool {
	return c.Get(a.A).Defined() && c.Get(a.B).Defined()
}

// Resolve implements logicsim.Element.
//
func (a *Adder) Resolve(c *logicsim.Circuit) {
	s, carry := add(c.Get(a.A).Uint64(), c.Get(a.B).Uint64(), c.Get(a.Cin).Uint64()&1, a.Width())
	c.Set(a.Sum, u(s))
	c.Set(a.Cout, u(carry))
}

// ALU control codes.
//
const (
	ALUAnd = iota
	ALUOr
	ALUAdd
	ALUNop
	ALUAndNot
	ALUOrNot
	ALUSub
	ALULess
)

// ALU is an arithmetic and logic unit.
//
//	Inputs: a, b, ctrl (3 bits)
//	Outputs: out, cout (1 bit)
//	Function:
//		ctrl = 0: out = a & b
//		ctrl = 1: out = a | b
//		ctrl = 2: out = a + b, cout = carry
//		ctrl = 3: outputs unchanged
//		ctrl = 4: out = a & ^b
//		ctrl = 5: out = a | ^b
//		ctrl = 6: out = a - b
//		ctrl = 7: out = a < b (unsigned)
//	cout is 0 for all operations but addition.
//
type ALU struct {
	logicsim.Base
	A    logicsim.NodeID `sim:"in"`
	B    logicsim.NodeID `sim:"in"`
	Ctrl logicsim.NodeID `sim:"in,ctrl,3"`
	Out  logicsim.NodeID `sim:"out"`
	Cout logicsim.NodeID `sim:"out,cout,1"`
}

// NewALU returns a new ALU.
//
func NewALU(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("ALU", (*ALU)(nil), p)
}

// Resolve implements logicsim.Element.
//
func (x *ALU) Resolve(c *logicsim.Circuit) {
	a, b := c.Get(x.A).Uint64(), c.Get(x.B).Uint64()
	var out, carry uint64
	switch c.Get(x.Ctrl).Uint64() {
	case ALUAnd:
		out = a & b
	case ALUOr:
		out = a | b
	case ALUAdd:
		out, carry = add(a, b, 0, x.Width())
	case ALUNop:
		return
	case ALUAndNot:
		out = a &^ b
	case ALUOrNot:
		out = a | ^b
	case ALUSub:
		out = a - b
	case ALULess:
		if a < b {
			out = 1
		}
	}
	c.Set(x.Out, u(out))
	c.Set(x.Cout, u(carry))
}

// Comparator compares two unsigned or two's complement values.
//
//	Inputs: a, b
//	Outputs: lt, eq, gt (1 bit)
//
type Comparator struct {
	logicsim.Base
	A, B       logicsim.NodeID
	Lt, Eq, Gt logicsim.NodeID
	signed     bool
}

func comparator(kind string, signed bool) logicsim.NewPartFn {
	return func(p logicsim.Params) (*logicsim.PartSpec, error) {
		return &logicsim.PartSpec{
			Kind:   kind,
			Params: p,
			Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
				return &Comparator{
					A:      s.In("a", logicsim.ElementWidth),
					B:      s.In("b", logicsim.ElementWidth),
					Lt:     s.Out("lt", 1),
					Eq:     s.Out("eq", 1),
					Gt:     s.Out("gt", 1),
					signed: signed,
				}, nil
			},
		}, nil
	}
}

var (
	// NewUnsignedComparator returns a comparator for unsigned values.
	//
	NewUnsignedComparator = comparator("UnsignedComparator", false)
	// NewSignedComparator returns a comparator for two's complement values
	// of the element width.
	//
	NewSignedComparator = comparator("SignedComparator", true)
)

// Resolve implements logicsim.Element.
//
func (k *Comparator) Resolve(c *logicsim.Circuit) {
	a, b := c.Get(k.A).Uint64(), c.Get(k.B).Uint64()
	lt := a < b
	if k.signed {
		w := k.Width()
		lt = signExtend(a, w) < signExtend(b, w)
	}
	c.Set(k.Lt, logicsim.Bool(lt))
	c.Set(k.Eq, logicsim.Bool(a == b))
	c.Set(k.Gt, logicsim.Bool(!lt && a != b))
}

func signExtend(v uint64, width int) int64 {
	if width >= logicsim.MaxWidth {
		return int64(v)
	}
	s := uint(logicsim.MaxWidth - width)
	return int64(v<<s) >> s
}

// Shift is a logical shifter.
//
//	Inputs: in, shift
//	Outputs: out (width outputWidth, default to the element width)
//
type Shift struct {
	logicsim.Base
	In    logicsim.NodeID
	Shift logicsim.NodeID
	Out   logicsim.NodeID
	left  bool
}

func shifter(kind string, left bool) logicsim.NewPartFn {
	return func(p logicsim.Params) (*logicsim.PartSpec, error) {
		return &logicsim.PartSpec{
			Kind:   kind,
			Params: p,
			Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
				ow := s.Params().Int("outputWidth", logicsim.ElementWidth)
				return &Shift{
					In:    s.In(pIn, logicsim.ElementWidth),
					Shift: s.In("shift", logicsim.ElementWidth),
					Out:   s.Out(pOut, ow),
					left:  left,
				}, nil
			},
		}, nil
	}
}

var (
	// NewShiftLeft returns a left shifter.
	//
	//	Function: out = in << shift
	//
	NewShiftLeft = shifter("ShiftLeft", true)
	// NewShiftRight returns a logical right shifter.
	//
	//	Function: out = in >> shift
	//
	NewShiftRight = shifter("ShiftRight", false)
)

// Resolve implements logicsim.Element.
//
func (sh *Shift) Resolve(c *logicsim.Circuit) {
	v, n := c.Get(sh.In).Uint64(), c.Get(sh.Shift).Uint64()
	if sh.left {
		v <<= n
	} else {
		v >>= n
	}
	c.Set(sh.Out, u(v))
}

// MSB finds the most significant bit set in its input.
//
//	Inputs: in
//	Outputs: out, en (1 bit)
//	Function: out = index of the highest bit set in in, or 0; en = in != 0
//
type MSB struct {
	logicsim.Base
	In  logicsim.NodeID `sim:"in"`
	Out logicsim.NodeID `sim:"out"`
	En  logicsim.NodeID `sim:"out,en,1"`
}

// NewMSB returns a new MSB element.
//
func NewMSB(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("MSB", (*MSB)(nil), p)
}

// Resolve implements logicsim.Element.
//
func (m *MSB) Resolve(c *logicsim.Circuit) {
	v := c.Get(m.In).Uint64()
	var idx int
	if v != 0 {
		idx = bits.Len64(v) - 1
	}
	c.Set(m.Out, u(uint64(idx)))
	c.Set(m.En, logicsim.Bool(v != 0))
}

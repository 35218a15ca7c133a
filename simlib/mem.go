// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// ROMSize is the number of bytes in a ROM.
//
const ROMSize = 16

// ROM is a 16 bytes read-only memory. Its enable input is optional.
//
//	Inputs: addr (4 bits), en (1 bit)
//	Outputs: data (8 bits)
//	Params: data (list of up to 16 byte values)
//	Function: if en == 1 or en not connected { data = mem[addr] }
//
type ROM struct {
	logicsim.Base
	Addr logicsim.NodeID `sim:"in,addr,4"`
	En   logicsim.NodeID `sim:"in,en,1"`
	Data logicsim.NodeID `sim:"out,data,8"`
	mem  [ROMSize]uint8
}

// NewROM returns a new ROM.
//
func NewROM(p logicsim.Params) (*logicsim.PartSpec, error) {
	data := p.Ints(pData)
	if len(data) > ROMSize {
		return nil, errors.Errorf("too much data: %d bytes", len(data))
	}
	for i, b := range data {
		if b < 0 || b > 0xff {
			return nil, errors.Errorf("data[%d]: invalid byte value %d", i, b)
		}
	}
	return logicsim.MakePart("ROM", (*ROM)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (r *ROM) Setup(s *logicsim.Socket) error {
	s.FixedWidth()
	for i, b := range s.Params().Ints(pData) {
		r.mem[i] = uint8(b)
	}
	return nil
}

// IsResolvable returns true if the address is defined and the ROM enabled.
//
func (r *ROM) IsResolvable(c *logicsim.Circuit) bool {
	return c.Get(r.Addr).Defined() && (isOne(c.Get(r.En)) || !c.Connected(r.En))
}

// Resolve implements logicsim.Element.
//
func (r *ROM) Resolve(c *logicsim.Circuit) {
	c.Set(r.Data, u(uint64(r.mem[c.Get(r.Addr).Uint64()])))
}

// SaveParams implements logicsim.ParamSaver.
//
func (r *ROM) SaveParams(p logicsim.Params) {
	data := make([]int, ROMSize)
	for i, b := range r.mem {
		data[i] = int(b)
	}
	p[pData] = data
}

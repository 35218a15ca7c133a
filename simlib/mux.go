// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

func selectWidth(p logicsim.Params, limit int) (int, error) {
	sw := p.Int("selectWidth", 1)
	if sw < 1 || sw > limit {
		return 0, errors.Errorf("invalid select width %d", sw)
	}
	return sw, nil
}

// Mux is a multiplexer.
//
//	Inputs: in[0] .. in[2^selectWidth-1], sel (selectWidth bits)
//	Outputs: out
//	Function: out = in[sel]
//
type Mux struct {
	logicsim.Base
	In  []logicsim.NodeID
	Sel logicsim.NodeID
	Out logicsim.NodeID
}

// NewMux returns a new multiplexer.
//
func NewMux(p logicsim.Params) (*logicsim.PartSpec, error) {
	sw, err := selectWidth(p, 8)
	if err != nil {
		return nil, err
	}
	return &logicsim.PartSpec{
		Kind:   "Mux",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			return &Mux{
				In:  s.InBus(pIn, 1<<uint(sw), logicsim.ElementWidth),
				Sel: s.In(pSel, sw),
				Out: s.Out(pOut, logicsim.ElementWidth),
			}, nil
		},
	}, nil
}

// IsResolvable returns true if the selector and the selected input are
// defined.
//
func (m *Mux) IsResolvable(c *logicsim.Circuit) bool {
	sel := c.Get(m.Sel)
	return sel.Defined() && c.Get(m.In[sel.Uint64()]).Defined()
}

// Resolve implements logicsim.Element.
//
func (m *Mux) Resolve(c *logicsim.Circuit) {
	c.Set(m.Out, c.Get(m.In[c.Get(m.Sel).Uint64()]))
}

// Demux is a demultiplexer.
//
//	Inputs: in, sel (selectWidth bits)
//	Outputs: out[0] .. out[2^selectWidth-1]
//	Function: out[sel] = in; all other outputs are 0
//
type Demux struct {
	logicsim.Base
	In  logicsim.NodeID
	Sel logicsim.NodeID
	Out []logicsim.NodeID
}

// NewDemux returns a new demultiplexer.
//
func NewDemux(p logicsim.Params) (*logicsim.PartSpec, error) {
	sw, err := selectWidth(p, 8)
	if err != nil {
		return nil, err
	}
	return &logicsim.PartSpec{
		Kind:   "Demux",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			return &Demux{
				In:  s.In(pIn, logicsim.ElementWidth),
				Sel: s.In(pSel, sw),
				Out: s.OutBus(pOut, 1<<uint(sw), logicsim.ElementWidth),
			}, nil
		},
	}, nil
}

// Resolve implements logicsim.Element.
//
func (d *Demux) Resolve(c *logicsim.Circuit) {
	sel := c.Get(d.Sel).Uint64()
	for i, o := range d.Out {
		if uint64(i) == sel {
			c.Set(o, c.Get(d.In))
		} else {
			c.Set(o, u(0))
		}
	}
}

// PriorityEncoder encodes the index of its highest input set to 1.
//
// Its width is the number of output bits. It has 2^width 1 bit inputs and
// cannot be resized.
//
//	Inputs: in[0] .. in[2^width-1]
//	Outputs: out[0] .. out[width-1] (1 bit each, LSB first), en
//	Function: out = highest i where in[i] == 1, or 0; en = 1 if any input is 1
//
type PriorityEncoder struct {
	logicsim.Base
	In  []logicsim.NodeID
	Out []logicsim.NodeID
	En  logicsim.NodeID
}

// NewPriorityEncoder returns a new priority encoder.
//
func NewPriorityEncoder(p logicsim.Params) (*logicsim.PartSpec, error) {
	if w := p.Int(logicsim.ParamWidth, 1); w < 1 || w > 8 {
		return nil, errors.Errorf("invalid width %d", w)
	}
	return &logicsim.PartSpec{
		Kind:   "PriorityEncoder",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			s.FixedWidth()
			w := s.Width()
			return &PriorityEncoder{
				In:  s.InBus(pIn, 1<<uint(w), 1),
				Out: s.OutBus(pOut, w, 1),
				En:  s.Out(pEn, 1),
			}, nil
		},
	}, nil
}

// Resolve implements logicsim.Element.
//
func (pe *PriorityEncoder) Resolve(c *logicsim.Circuit) {
	idx, en := uint64(0), uint64(0)
	for i := len(pe.In) - 1; i >= 0; i-- {
		if c.Get(pe.In[i]).Uint64() == 1 {
			idx, en = uint64(i), 1
			break
		}
	}
	for i, o := range pe.Out {
		c.Set(o, u(idx>>uint(i)&1))
	}
	c.Set(pe.En, u(en))
}

// BitSelector extracts a single bit from its input.
//
//	Inputs: in, sel (selectWidth bits)
//	Outputs: out (1 bit)
//	Function: out = bit sel of in
//
type BitSelector struct {
	logicsim.Base
	In  logicsim.NodeID
	Sel logicsim.NodeID
	Out logicsim.NodeID
}

// NewBitSelector returns a new bit selector.
//
func NewBitSelector(p logicsim.Params) (*logicsim.PartSpec, error) {
	sw, err := selectWidth(p, 6)
	if err != nil {
		return nil, err
	}
	return &logicsim.PartSpec{
		Kind:   "BitSelector",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			return &BitSelector{
				In:  s.In(pIn, logicsim.ElementWidth),
				Sel: s.In(pSel, sw),
				Out: s.Out(pOut, 1),
			}, nil
		},
	}, nil
}

// Resolve implements logicsim.Element.
//
func (b *BitSelector) Resolve(c *logicsim.Circuit) {
	c.Set(b.Out, u(c.Get(b.In).Uint64()>>c.Get(b.Sel).Uint64()&1))
}

// Splitter splits a bus into smaller ones.
//
//	Inputs: in
//	Outputs: out[0] .. out[len(parts)-1]
//	Params: parts (list of output widths, LSB first, summing to width)
//
type Splitter struct {
	logicsim.Base
	In    logicsim.NodeID
	Out   []logicsim.NodeID
	parts []int
}

// NewSplitter returns a new splitter.
//
func NewSplitter(p logicsim.Params) (*logicsim.PartSpec, error) {
	parts := p.Ints("parts")
	if len(parts) == 0 {
		return nil, errors.New("missing parts")
	}
	sum := 0
	for _, w := range parts {
		if w < 1 {
			return nil, errors.Errorf("invalid part width %d", w)
		}
		sum += w
	}
	if _, ok := p[logicsim.ParamWidth]; !ok {
		p = p.Clone()
		p[logicsim.ParamWidth] = sum
	}
	if w := p.Int(logicsim.ParamWidth, 1); w != sum {
		return nil, errors.Errorf("parts sum to %d bits, want %d", sum, w)
	}
	return &logicsim.PartSpec{
		Kind:   "Splitter",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			s.FixedWidth()
			sp := &Splitter{In: s.In(pIn, logicsim.ElementWidth), parts: parts}
			for i, w := range parts {
				sp.Out = append(sp.Out, s.Out(logicsim.BusPinName(pOut, i), w))
			}
			return sp, nil
		},
	}, nil
}

// Resolve implements logicsim.Element.
//
func (sp *Splitter) Resolve(c *logicsim.Circuit) {
	v := c.Get(sp.In).Uint64()
	for i, w := range sp.parts {
		c.Set(sp.Out[i], u(v&logicsim.Mask(w)))
		v >>= uint(w)
	}
}

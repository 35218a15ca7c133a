// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxWidth is the widest bit vector a node can carry.
//
const MaxWidth = 64

// A Value is the state of a node: either an unsigned bit vector or floating
// (undefined). The zero Value is Floating.
//
type Value struct {
	bits  uint64
	valid bool
}

// Floating is the undefined value.
//
var Floating Value

// Of returns a defined Value holding v.
//
func Of(v uint64) Value { return Value{bits: v, valid: true} }

// Bool returns 1 for true and 0 for false.
//
func Bool(b bool) Value {
	if b {
		return Of(1)
	}
	return Of(0)
}

// Defined returns true if v is not floating.
//
func (v Value) Defined() bool { return v.valid }

// Uint64 returns the bits of v. It returns 0 for a floating value.
//
func (v Value) Uint64() uint64 { return v.bits }

// Mask truncates v to the given width. Floating values are returned unchanged.
//
func (v Value) Mask(width int) Value {
	if !v.valid {
		return v
	}
	return Value{bits: v.bits & Mask(width), valid: true}
}

// Equal returns true if both values are floating or hold the same bits.
//
func (v Value) Equal(w Value) bool {
	return v.valid == w.valid && v.bits == w.bits
}

func (v Value) String() string {
	if !v.valid {
		return "x"
	}
	return strconv.FormatUint(v.bits, 10)
}

// Mask returns a bit mask with the width least significant bits set.
//
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return 1<<uint(width) - 1
}

// ParseValue parses the string form of a Value: "x" for floating, or an
// unsigned integer with an optional 0x, 0o or 0b prefix.
//
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "x" || s == "X" {
		return Floating, nil
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return Floating, errors.Wrapf(err, "invalid value %q", s)
	}
	return Of(n), nil
}

// MarshalText implements encoding.TextMarshaler.
//
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (v *Value) UnmarshalText(b []byte) error {
	w, err := ParseValue(string(b))
	if err != nil {
		return err
	}
	*v = w
	return nil
}

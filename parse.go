// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/hdl"
	"github.com/pkg/errors"
)

// A Connection binds element ports to circuit nets. If there is a single net,
// all ports are connected to it, otherwise ports and nets are paired in order.
//
type Connection struct {
	Ports []string
	Nets  []string
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2". Buses can be connected by specifying a range:
// "partPinX[0..3]=chipPinY[4..7]" or a single index "a[2]=b". A lone pin name
// "a" is short for "a=a".
//
func ParseConnections(c string) ([]Connection, error) {
	as, err := hdl.Parse(c)
	if err != nil {
		return nil, err
	}
	conns := make([]Connection, 0, len(as))
	for _, a := range as {
		if n := a.Net.Bits(); n != 1 && n != a.Port.Bits() {
			return nil, errors.Errorf("in %q: pin count mismatch in %s=%s", c, a.Port, a.Net)
		}
		conns = append(conns, Connection{Ports: expandPin(a.Port), Nets: expandPin(a.Net)})
	}
	return conns, nil
}

func expandPin(r hdl.PinRef) []string {
	if r.Start < 0 {
		return []string{r.Name}
	}
	out := make([]string, 0, r.Bits())
	for i := r.Start; i <= r.End; i++ {
		out = append(out, BusPinName(r.Name, i))
	}
	return out
}

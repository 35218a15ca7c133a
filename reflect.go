// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Setuper is called by parts built with MakePart once the element's ports
// have been allocated.
//
type Setuper interface {
	Setup(s *Socket) error
}

var nodeIDType = reflect.TypeOf(NoNode)

type taggedPort struct {
	field int
	name  string
	kind  NodeKind
	width int
	bus   int // 0 for single pins
}

// MakePart returns a PartSpec for elements of the same type as proto, which
// must be a pointer to a struct embedding Base. Ports are identified by field
// tags.
//
// The field tag must be `sim:"in"` or `sim:"out"` to identify input and output
// ports. By default, the port name is the field name in lowercase. A specific
// name can be forced by adding it in the tag: `sim:"in,port_name"`. A fixed
// port width can be set as a third tag value: `sim:"out,cout,1"`; otherwise the
// port follows the element width.
//
// Fields must be of type NodeID. Buses must be arrays of NodeID.
//
func MakePart(kind string, proto Element, p Params) (*PartSpec, error) {
	typ := reflect.TypeOf(proto)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, errors.Errorf("unsupported type %v for %q", typ, kind)
	}
	typ = typ.Elem()
	ports, err := scanPorts(typ)
	if err != nil {
		return nil, errors.Wrap(err, kind)
	}
	return &PartSpec{
		Kind:   kind,
		Params: p,
		Mount: func(s *Socket) (Element, error) {
			v := reflect.New(typ)
			e := v.Elem()
			for _, tp := range ports {
				f := e.Field(tp.field)
				if tp.bus == 0 {
					f.Set(reflect.ValueOf(s.port(tp.name, tp.kind, tp.width)))
					continue
				}
				for i := 0; i < tp.bus; i++ {
					f.Index(i).Set(reflect.ValueOf(s.port(BusPinName(tp.name, i), tp.kind, tp.width)))
				}
			}
			el := v.Interface().(Element)
			if su, ok := el.(Setuper); ok {
				if err := su.Setup(s); err != nil {
					return nil, err
				}
			}
			return el, nil
		},
	}, nil
}

// MustMakePart is like MakePart but panics on error.
//
func MustMakePart(kind string, proto Element, p Params) *PartSpec {
	sp, err := MakePart(kind, proto, p)
	if err != nil {
		panic(err)
	}
	return sp
}

func scanPorts(typ reflect.Type) ([]taggedPort, error) {
	var ports []taggedPort
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("sim")
		if !ok {
			continue
		}
		tp := taggedPort{field: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		switch tv[0] {
		case "in":
			tp.kind = Input
		case "out":
			tp.kind = Output
		default:
			return nil, errors.Errorf("unsupported tag %q for field %q", tag, f.Name)
		}
		if len(tv) > 1 && tv[1] != "" {
			tp.name = tv[1]
		}
		if len(tv) > 2 {
			w, err := strconv.Atoi(tv[2])
			if err != nil || w < 1 || w > MaxWidth {
				return nil, errors.Errorf("invalid width in tag %q for field %q", tag, f.Name)
			}
			tp.width = w
		}
		switch ft := f.Type; {
		case ft == nodeIDType:
		case ft.Kind() == reflect.Array && ft.Elem() == nodeIDType:
			tp.bus = ft.Len()
		default:
			return nil, errors.Errorf("unsupported type %v for field %q", ft, f.Name)
		}
		ports = append(ports, tp)
	}
	return ports, nil
}

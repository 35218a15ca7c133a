// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Common parameter names.
//
const (
	ParamWidth = "width"
	ParamLabel = "label"
)

// Params holds the construction parameters of an element. These are saved
// along with the element and used to rebuild it when loading a circuit.
//
// Values decoded from YAML or JSON documents are accepted by the typed
// accessors: integers may be int, int64, uint64 or float64.
//
type Params map[string]interface{}

// Clone returns a shallow copy of p. It never returns nil.
//
func (p Params) Clone() Params {
	q := make(Params, len(p))
	for k, v := range p {
		q[k] = v
	}
	return q
}

// Int returns the integer value of parameter key, or def if it is not set or
// not a number.
//
func (p Params) Int(key string, def int) int {
	if v, ok := toInt(p[key]); ok {
		return v
	}
	return def
}

// Ints returns the integer list for parameter key.
//
func (p Params) Ints(key string) []int {
	switch v := p[key].(type) {
	case []int:
		return v
	case []interface{}:
		out := make([]int, 0, len(v))
		for _, i := range v {
			n, ok := toInt(i)
			if !ok {
				return nil
			}
			out = append(out, n)
		}
		return out
	}
	return nil
}

// Bool returns the boolean value of parameter key, or def.
//
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string value of parameter key, or def.
//
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	}
	return 0, false
}

// A NewPartFn returns the PartSpec of an element kind configured with the
// given parameters.
//
type NewPartFn func(p Params) (*PartSpec, error)

var registry = struct {
	sync.RWMutex
	m map[string]NewPartFn
}{m: make(map[string]NewPartFn)}

// Register makes an element kind available by name to NewPart. It panics if
// the kind is registered twice.
//
func Register(kind string, fn NewPartFn) {
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.m[kind]; dup {
		panic("logicsim: Register called twice for element kind " + kind)
	}
	registry.m[kind] = fn
}

// NewPart returns a PartSpec for the named element kind.
//
func NewPart(kind string, p Params) (*PartSpec, error) {
	registry.RLock()
	fn, ok := registry.m[kind]
	registry.RUnlock()
	if !ok {
		return nil, errors.Wrap(ErrUnknownKind, kind)
	}
	spec, err := fn(p.Clone())
	if err != nil {
		return nil, errors.Wrapf(err, "%s", kind)
	}
	return spec, nil
}

// Kinds returns the sorted list of registered element kinds.
//
func Kinds() []string {
	registry.RLock()
	defer registry.RUnlock()
	ks := make([]string, 0, len(registry.m))
	for k := range registry.m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

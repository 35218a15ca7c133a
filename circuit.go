// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"io"
	"log/slog"

	mapset "github.com/deckarep/golang-set"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Errors returned by circuit operations.
//
var (
	ErrNoSuchNode    = errors.New("no such node")
	ErrNoSuchElement = errors.New("no such element")
	ErrNoSuchWire    = errors.New("no such wire")
	ErrFixedWidth    = errors.New("element has a fixed bit width")
	ErrFatalPending  = errors.New("fatal error pending")
	ErrUnknownKind   = errors.New("unknown element kind")
)

// DefaultStepLimit is the default maximum number of queue items processed in
// a single pass.
//
const DefaultStepLimit = 1000000

// Circuit is a graph of elements and nodes, together with the simulation
// state. A Circuit must not be used concurrently from several goroutines.
//
type Circuit struct {
	id        uuid.UUID
	name      string
	log       *slog.Logger
	observers []Observer
	stepLimit int
	strict    bool

	nodes []*Node   // indexed by NodeID-1, nil if deleted
	elems []Element // indexed by ElementID-1, nil if deleted
	wires []*Wire   // indexed by WireID-1, nil if deleted
	nets  map[string]NodeID

	queue      Queue
	pending    mapset.Set // tri-state elements with unresolved contention
	reported   mapset.Set // node pairs already reported in this pass
	dirty      []NodeID
	diags      []Diagnostic
	fatal      error
	forceReset bool
	state      State
}

// An Option configures a Circuit.
//
type Option func(c *Circuit)

// WithLogger sets the circuit logger. By default, log output is discarded.
//
func WithLogger(l *slog.Logger) Option {
	return func(c *Circuit) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStepLimit sets the maximum number of queue items processed in a single
// pass before it is aborted with a CycleLimitError.
//
func WithStepLimit(n int) Option {
	return func(c *Circuit) {
		if n > 0 {
			c.stepLimit = n
		}
	}
}

// WithObserver adds an observer notified of diagnostics and completed passes.
//
func WithObserver(o Observer) Option {
	return func(c *Circuit) { c.observers = append(c.observers, o) }
}

// WithStrict turns contention and bit width errors into fatal errors.
//
func WithStrict(strict bool) Option {
	return func(c *Circuit) { c.strict = strict }
}

// New returns a new empty circuit.
//
func New(name string, opts ...Option) *Circuit {
	c := &Circuit{
		id:        uuid.New(),
		name:      name,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		stepLimit: DefaultStepLimit,
		nets:      make(map[string]NodeID),
		pending:   mapset.NewSet(),
		reported:  mapset.NewSet(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("circuit", name)
	return c
}

// Observe adds an observer to an existing circuit. Unlike WithObserver passed
// to a loader, the observer is not propagated to sub-circuits.
//
func (c *Circuit) Observe(o Observer) { c.observers = append(c.observers, o) }

// ID returns the circuit's unique identifier.
//
func (c *Circuit) ID() uuid.UUID { return c.id }

// SetID sets the circuit's identifier. This is used when loading a saved circuit.
//
func (c *Circuit) SetID(id uuid.UUID) { c.id = id }

// Name returns the circuit name.
//
func (c *Circuit) Name() string { return c.name }

// Logger returns the circuit logger.
//
func (c *Circuit) Logger() *slog.Logger { return c.log }

// Queue returns the circuit's simulation queue.
//
func (c *Circuit) Queue() *Queue { return &c.queue }

func (c *Circuit) node(id NodeID) *Node {
	if id <= 0 || int(id) > len(c.nodes) {
		return nil
	}
	return c.nodes[id-1]
}

func (c *Circuit) elem(id ElementID) Element {
	if id <= 0 || int(id) > len(c.elems) {
		return nil
	}
	return c.elems[id-1]
}

func (c *Circuit) newNode(k NodeKind, width int, owner ElementID) *Node {
	n := &Node{
		id:    NodeID(len(c.nodes) + 1),
		kind:  k,
		width: width,
		owner: owner,
	}
	c.nodes = append(c.nodes, n)
	return n
}

// Node returns the node with the given ID, or nil if there is no such node.
//
func (c *Circuit) Node(id NodeID) *Node { return c.node(id) }

// Element returns the element with the given ID, or nil if there is no such
// element.
//
func (c *Circuit) Element(id ElementID) Element { return c.elem(id) }

// Find returns the first element with the given label, or nil.
//
func (c *Circuit) Find(label string) Element {
	for _, e := range c.elems {
		if e != nil && e.Label() == label {
			return e
		}
	}
	return nil
}

// Nodes returns all nodes in creation order.
//
func (c *Circuit) Nodes() []*Node {
	ns := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if n != nil {
			ns = append(ns, n)
		}
	}
	return ns
}

// Elements returns all elements in creation order.
//
func (c *Circuit) Elements() []Element {
	es := make([]Element, 0, len(c.elems))
	for _, e := range c.elems {
		if e != nil {
			es = append(es, e)
		}
	}
	return es
}

// Get returns the value of a node. It returns Floating for unknown nodes.
//
func (c *Circuit) Get(id NodeID) Value {
	if n := c.node(id); n != nil {
		return n.value
	}
	return Floating
}

// Width returns the width of a node, or 0 for unknown nodes.
//
func (c *Circuit) Width(id NodeID) int {
	if n := c.node(id); n != nil {
		return n.width
	}
	return 0
}

// Set sets the value of a node, usually an element output, truncated to the
// node width. If the value changes, the node is scheduled for propagation.
//
func (c *Circuit) Set(id NodeID, v Value) {
	n := c.node(id)
	if n == nil {
		return
	}
	v = v.Mask(n.width)
	if n.value.Equal(v) {
		return
	}
	n.value = v
	if v.Defined() {
		n.driver = n.owner
	} else {
		// an output floating a value it did not drive retracts nothing
		n.lost = NoElement
		if n.driver == n.owner {
			n.lost = n.owner
		}
		n.driver = NoElement
	}
	c.queue.addNode(n)
}

// Connected returns true if the node has at least one connection.
//
func (c *Circuit) Connected(id NodeID) bool {
	n := c.node(id)
	return n != nil && len(n.conns) > 0
}

// Add mounts a new element built from spec and returns its ID.
//
func (c *Circuit) Add(spec *PartSpec) (ElementID, error) {
	params := spec.Params.Clone()
	width := params.Int(ParamWidth, 1)
	if width < 1 || width > MaxWidth {
		return NoElement, errors.Errorf("%s: invalid bit width %d", spec.Kind, width)
	}
	params[ParamWidth] = width
	s := &Socket{
		c:      c,
		id:     ElementID(len(c.elems) + 1),
		width:  width,
		params: params,
	}
	mark := len(c.nodes)
	e, err := spec.Mount(s)
	if err == nil {
		err = s.err
	}
	if err == nil && e == nil {
		err = errors.New("mount returned no element")
	}
	if err != nil {
		// drop nodes allocated by the failed mount
		for i := mark; i < len(c.nodes); i++ {
			c.nodes[i] = nil
		}
		return NoElement, errors.Wrapf(err, "failed to mount %s", spec.Kind)
	}
	b := e.base()
	*b = Base{
		id:            s.id,
		kind:          spec.Kind,
		label:         params.String(ParamLabel, ""),
		width:         width,
		params:        params,
		ports:         s.ports,
		alwaysResolve: s.alwaysResolve,
		fixedWidth:    s.fixedWidth,
		source:        s.source,
		overridable:   s.overridable,
	}
	delete(params, ParamLabel)
	c.elems = append(c.elems, e)
	return s.id, nil
}

// Place mounts a new element and connects its ports to named nets according
// to the connection string conns. See ParseConnections for its syntax. Nets
// are created on first use as intermediate nodes.
//
// Example:
//
//	id, err := c.Place(adder, "a=x, b=y, sum=s, cout=carry")
//
func (c *Circuit) Place(spec *PartSpec, conns string) (ElementID, error) {
	cs, err := ParseConnections(conns)
	if err != nil {
		return NoElement, err
	}
	id, err := c.Add(spec)
	if err != nil {
		return NoElement, err
	}
	e := c.elem(id)
	for _, cn := range cs {
		for i, p := range cn.Ports {
			pn := e.Port(p)
			if pn == NoNode {
				c.Remove(id)
				return NoElement, errors.Errorf("%s: no port named %q", spec.Kind, p)
			}
			net := cn.Nets[0]
			if len(cn.Nets) > 1 {
				net = cn.Nets[i]
			}
			if _, err = c.Connect(pn, c.Net(net)); err != nil {
				c.Remove(id)
				return NoElement, err
			}
		}
	}
	return id, nil
}

// MustPlace is like Place but panics on error.
//
func (c *Circuit) MustPlace(spec *PartSpec, conns string) ElementID {
	id, err := c.Place(spec, conns)
	if err != nil {
		panic(err)
	}
	return id
}

// Net returns the junction node for the named net, creating it if needed.
//
func (c *Circuit) Net(name string) NodeID {
	if id, ok := c.nets[name]; ok && c.node(id) != nil {
		return id
	}
	id := c.NewJunction(1)
	c.nodes[id-1].label = name
	c.nets[name] = id
	return id
}

// LookupNet returns the junction node for the named net, if any.
//
func (c *Circuit) LookupNet(name string) (NodeID, bool) {
	id, ok := c.nets[name]
	if !ok || c.node(id) == nil {
		return NoNode, false
	}
	return id, true
}

// Probe returns the value seen at a named point of the circuit: a net name,
// or the label of an element. For elements, the first output port is read,
// or the first input port of elements without outputs.
//
func (c *Circuit) Probe(name string) (Value, error) {
	if id, ok := c.LookupNet(name); ok {
		return c.Get(id), nil
	}
	e := c.Find(name)
	if e == nil {
		return Floating, errors.Errorf("no net or element labelled %q", name)
	}
	var in NodeID = NoNode
	for _, p := range e.Ports() {
		if p.Kind == Output {
			return c.Get(p.Node), nil
		}
		if in == NoNode {
			in = p.Node
		}
	}
	if in == NoNode {
		return Floating, errors.Errorf("element %q has no ports", name)
	}
	return c.Get(in), nil
}

// NewJunction creates a free intermediate node.
//
func (c *Circuit) NewJunction(width int) NodeID {
	if width < 1 || width > MaxWidth {
		width = 1
	}
	return c.newNode(Intermediate, width, NoElement).id
}

// SetLabel sets the label of an element.
//
func (c *Circuit) SetLabel(id ElementID, label string) error {
	e := c.elem(id)
	if e == nil {
		return errors.Wrap(ErrNoSuchElement, id.String())
	}
	e.base().label = label
	return nil
}

// SetWidth changes the bit width of an element.
//
func (c *Circuit) SetWidth(id ElementID, width int) error {
	e := c.elem(id)
	if e == nil {
		return errors.Wrap(ErrNoSuchElement, id.String())
	}
	return e.NewBitWidth(c, width)
}

// Remove deletes an element together with its port nodes. Junctions left
// without connections are deleted as well.
//
func (c *Circuit) Remove(id ElementID) error {
	e := c.elem(id)
	if e == nil {
		return errors.Wrap(ErrNoSuchElement, id.String())
	}
	for _, p := range e.Ports() {
		c.deleteNode(p.Node)
	}
	c.pending.Remove(id)
	c.elems[id-1] = nil
	c.forceReset = true
	return nil
}

func (c *Circuit) deleteNode(id NodeID) {
	n := c.node(id)
	if n == nil {
		return
	}
	for len(n.conns) > 0 {
		other := c.node(n.conns[0])
		c.unwire(n, other)
		if other.kind == Intermediate && len(other.conns) == 0 {
			c.deleteNode(other.id)
		}
	}
	if n.kind == Intermediate && n.label != "" && c.nets[n.label] == id {
		delete(c.nets, n.label)
	}
	c.nodes[id-1] = nil
}

package element

import (
	"fmt"

	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// Element is the interface every concrete element kind (AND, Timer, PID,
// ...) implements. Update is called exactly once per tick, in
// topological order. Base returns the embedded registry/order state that
// the engine and the order-discovery walk operate on.
type Element interface {
	Update(t letime.Time)
	Base() *Base
}

// Base is embedded by every concrete element. It owns the element's port
// registry and its cached update-order rank. It is not an Element by
// itself; a concrete type embeds Base and implements Update to satisfy
// the Element interface.
type Base struct {
	kind         Kind
	inputPorts   []port.Port
	outputPorts  []port.Port
	inputByName  map[string]port.Port
	outputByName map[string]port.Port
	order        uint16
}

// NewBase initializes a Base for an element of the given kind. Concrete
// constructors call this first, then AddInput/AddOutput for each port.
func NewBase(kind Kind) Base {
	return Base{
		kind:         kind,
		inputByName:  make(map[string]port.Port),
		outputByName: make(map[string]port.Port),
	}
}

// Kind returns the element's type tag.
func (b *Base) Kind() Kind { return b.kind }

// InputPort looks up an input port by name.
func (b *Base) InputPort(name string) (port.Port, bool) {
	p, ok := b.inputByName[name]
	return p, ok
}

// OutputPort looks up an output port by name.
func (b *Base) OutputPort(name string) (port.Port, bool) {
	p, ok := b.outputByName[name]
	return p, ok
}

// InputPorts returns every input port in declaration order.
func (b *Base) InputPorts() []port.Port { return b.inputPorts }

// OutputPorts returns every output port in declaration order.
func (b *Base) OutputPorts() []port.Port { return b.outputPorts }

// Order returns the cached update-order rank, valid after GetOrder has
// been called at least once since the last late Connect.
func (b *Base) Order() uint16 { return b.order }

// AddInput registers a new typed input port named name on owner (the
// concrete element embedding this Base) and returns a typed handle for
// the element to cache and use on its hot update path.
func AddInput[T any](b *Base, name string, typ port.Type, owner any) *port.Input[T] {
	p := port.NewInput[T](name, typ, owner)
	b.inputPorts = append(b.inputPorts, p)
	b.inputByName[name] = p
	return p
}

// AddOutput registers a new typed output port named name on owner and
// returns a typed handle for the element to cache.
func AddOutput[T any](b *Base, name string, typ port.Type, owner any) *port.Output[T] {
	p := port.NewOutput[T](name, typ, owner)
	b.outputPorts = append(b.outputPorts, p)
	b.outputByName[name] = p
	return p
}

// PortNotFoundError reports that Connect was asked to wire a port name
// that doesn't exist on the named element.
type PortNotFoundError struct {
	Direction port.Direction
	Name      string
}

func (e PortNotFoundError) Error() string {
	return fmt.Sprintf("element: no %s port named %q", e.Direction, e.Name)
}

// Connect looks up srcPortName on src and dstPortName on dst and wires
// them via port.Connect. Per spec.md §4.3 a failed connect (unknown port
// or type mismatch) is reported, not fatal: the destination input is
// simply left disconnected.
func Connect(src Element, srcPortName string, dst Element, dstPortName string) error {
	srcPort, ok := src.Base().OutputPort(srcPortName)
	if !ok {
		return PortNotFoundError{Direction: port.Out, Name: srcPortName}
	}
	dstPort, ok := dst.Base().InputPort(dstPortName)
	if !ok {
		return PortNotFoundError{Direction: port.In, Name: dstPortName}
	}
	return port.Connect(srcPort, dstPort)
}

// rank computes the topological-order rank of current as seen while
// discovering the order for origin: rank(e) = 1 + max(rank(pred)) over
// every distinct predecessor reachable by following connected input
// ports, terminating recursion at a re-entry into origin (this is how a
// cycle that passes through a Node — whose own input is fed back from
// later in the same cycle — is broken for ordering purposes; see
// spec.md §3/§9).
func rank(origin, current Element) uint16 {
	var maxPred uint16
	hasPred := false
	for _, ip := range current.Base().InputPorts() {
		sg, ok := ip.(port.SourceGetter)
		if !ok {
			continue
		}
		src := sg.Source()
		if src == nil {
			continue
		}
		predOwner, ok := src.Owner().(Element)
		if !ok || predOwner == origin || predOwner == current {
			continue
		}
		r := rank(origin, predOwner)
		hasPred = true
		if r > maxPred {
			maxPred = r
		}
	}
	if !hasPred {
		return 1
	}
	return 1 + maxPred
}

// GetOrder resets e's cached rank to zero and re-runs the topological
// walk, so that a late Connect (wiring added after the graph was first
// ordered) is always reflected correctly. Ties (equal rank) are resolved
// by the engine's stable sort over insertion order, not here.
func GetOrder(e Element) uint16 {
	e.Base().order = 0
	r := rank(e, e)
	e.Base().order = r
	return r
}

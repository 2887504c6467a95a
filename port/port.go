// Package port implements the typed, named attachment points elements
// wire together. A Type fixes which Go type a port carries (bool,
// float32, or complex64) and is checked at Connect time so a mismatched
// wire is rejected instead of silently corrupting data.
package port

import "fmt"

// Type identifies the Go type carried across a port.
type Type uint8

const (
	// Digital ports carry bool.
	Digital Type = iota
	// Analog ports carry float32.
	Analog
	// Complex ports carry complex64 (real, imag as float32 pairs).
	Complex
)

// String implements fmt.Stringer for diagnostics output.
func (t Type) String() string {
	switch t {
	case Digital:
		return "Digital"
	case Analog:
		return "Analog"
	case Complex:
		return "Complex"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Direction distinguishes an input attachment point from an output one.
type Direction uint8

const (
	// In marks an input port.
	In Direction = iota
	// Out marks an output port.
	Out
)

func (d Direction) String() string {
	if d == In {
		return "In"
	}
	return "Out"
}

// Port is the type-erased identity shared by every Input[T] and
// Output[T]: name, data type, direction, and the owning element. Owner is
// untyped (any) to avoid an import cycle with the element package; code
// that needs the owning element asserts it to element.Element.
type Port interface {
	Name() string
	Type() Type
	Direction() Direction
	Owner() any
}

// SourceGetter is implemented by every Input[T]; it exposes the
// currently-connected Output as a type-erased Port so the topological
// order walk (in package element) can follow a wire back to its
// producing element without knowing T.
type SourceGetter interface {
	Source() Port
}

// connectable is implemented by every Input[T]. It is unexported because
// callers should go through the package-level Connect function, which
// performs the type and direction checks spec.md requires before
// dispatching to it.
type connectable interface {
	connectDyn(src Port) error
}

// TypeMismatchError reports that Connect was asked to wire incompatible
// ports. Per spec.md §4.3/§7 this is reported, not fatal: the input port
// is simply left disconnected.
type TypeMismatchError struct {
	Output, Input Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("port: type mismatch connecting %s output to %s input", e.Output, e.Input)
}

// DirectionError reports that Connect was given a port of the wrong
// direction (e.g. two inputs, or the arguments reversed).
type DirectionError struct {
	Got Direction
}

func (e DirectionError) Error() string {
	return fmt.Sprintf("port: unexpected direction %s", e.Got)
}

// Connect wires src (an output port) to dst (an input port). It fails
// with TypeMismatchError if the two ports don't share the same Type, or
// DirectionError if src is not an output or dst is not an input. On
// success dst.Get() subsequently returns src's current value.
func Connect(src, dst Port) error {
	if src.Direction() != Out {
		return DirectionError{Got: src.Direction()}
	}
	if dst.Direction() != In {
		return DirectionError{Got: dst.Direction()}
	}
	if src.Type() != dst.Type() {
		return TypeMismatchError{Output: src.Type(), Input: dst.Type()}
	}
	c, ok := dst.(connectable)
	if !ok {
		return TypeMismatchError{Output: src.Type(), Input: dst.Type()}
	}
	return c.connectDyn(src)
}

// Output is a typed output port. It owns the value it currently exposes;
// reads are direct field accesses with no per-tick dispatch.
type Output[T any] struct {
	name  string
	typ   Type
	owner any
	value T
}

// NewOutput constructs an output port. owner is the element.Element that
// created it (stored as any to avoid an import cycle).
func NewOutput[T any](name string, typ Type, owner any) *Output[T] {
	return &Output[T]{name: name, typ: typ, owner: owner}
}

func (o *Output[T]) Name() string      { return o.name }
func (o *Output[T]) Type() Type        { return o.typ }
func (o *Output[T]) Direction() Direction { return Out }
func (o *Output[T]) Owner() any        { return o.owner }

// Value returns the output's current value.
func (o *Output[T]) Value() T { return o.value }

// Set stores a new current value for the output port.
func (o *Output[T]) Set(v T) { o.value = v }

// Input is a typed input port. When unconnected, Get returns the zero
// value of T, matching spec.md §7's RuntimeGuard: reading a disconnected
// input is never an error.
type Input[T any] struct {
	name   string
	typ    Type
	owner  any
	source *Output[T]
}

// NewInput constructs an input port, initially disconnected.
func NewInput[T any](name string, typ Type, owner any) *Input[T] {
	return &Input[T]{name: name, typ: typ, owner: owner}
}

func (i *Input[T]) Name() string         { return i.name }
func (i *Input[T]) Type() Type           { return i.typ }
func (i *Input[T]) Direction() Direction { return In }
func (i *Input[T]) Owner() any           { return i.owner }

// Get returns the connected output's current value, or the zero value
// of T if the input is disconnected.
func (i *Input[T]) Get() T {
	if i.source == nil {
		var zero T
		return zero
	}
	return i.source.Value()
}

// Connected reports whether the input currently has a source.
func (i *Input[T]) Connected() bool { return i.source != nil }

// Source returns the connected output port as a type-erased Port, or nil
// if unconnected. Used by the topological order walk.
func (i *Input[T]) Source() Port {
	if i.source == nil {
		return nil
	}
	return i.source
}

func (i *Input[T]) connectDyn(src Port) error {
	o, ok := src.(*Output[T])
	if !ok {
		return TypeMismatchError{Output: src.Type(), Input: i.typ}
	}
	i.source = o
	return nil
}

// Package arithmetic implements the Analog and Complex arithmetic
// elements of spec.md §4.7: two-input (or one-input for Negate/Abs)
// operations plus the heterogeneous Magnitude element.
package arithmetic

import (
	"math"
	"math/cmplx"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// divideGuard is the minimum divisor magnitude below which Divide and
// DivideComplex emit zero instead of dividing, per spec.md §4.7.
const divideGuard = 1e-10

// binary is the shared shape of Add/Subtract/Multiply/Divide over
// Analog: two inputs a, b, one output out = f(a, b).
type binary struct {
	element.Base
	a, b *port.Input[float32]
	out  *port.Output[float32]
	f    func(a, b float32) float32
}

func newBinary(kind element.Kind, f func(a, b float32) float32) *binary {
	e := &binary{Base: element.NewBase(kind), f: f}
	e.a = element.AddInput[float32](&e.Base, "input_0", port.Analog, e)
	e.b = element.AddInput[float32](&e.Base, "input_1", port.Analog, e)
	e.out = element.AddOutput[float32](&e.Base, "output", port.Analog, e)
	return e
}

func (e *binary) Update(letime.Time) { e.out.Set(e.f(e.a.Get(), e.b.Get())) }

// Output returns the current output value.
func (e *binary) Output() float32 { return e.out.Value() }

// NewAdd constructs out = a + b over Analog.
func NewAdd() *binary { return newBinary(element.Add, func(a, b float32) float32 { return a + b }) }

// NewSubtract constructs out = a - b over Analog.
func NewSubtract() *binary {
	return newBinary(element.Subtract, func(a, b float32) float32 { return a - b })
}

// NewMultiply constructs out = a * b over Analog.
func NewMultiply() *binary {
	return newBinary(element.Multiply, func(a, b float32) float32 { return a * b })
}

// NewDivide constructs out = a / b over Analog, emitting zero when |b|
// is below divideGuard.
func NewDivide() *binary {
	return newBinary(element.Divide, func(a, b float32) float32 {
		if float32(math.Abs(float64(b))) < divideGuard {
			return 0
		}
		return a / b
	})
}

// unary is the shared shape of Negate/Abs over Analog: one input, one
// output out = f(in).
type unary struct {
	element.Base
	in  *port.Input[float32]
	out *port.Output[float32]
	f   func(v float32) float32
}

func newUnary(kind element.Kind, f func(v float32) float32) *unary {
	e := &unary{Base: element.NewBase(kind), f: f}
	e.in = element.AddInput[float32](&e.Base, "input", port.Analog, e)
	e.out = element.AddOutput[float32](&e.Base, "output", port.Analog, e)
	return e
}

func (e *unary) Update(letime.Time) { e.out.Set(e.f(e.in.Get())) }

// Output returns the current output value.
func (e *unary) Output() float32 { return e.out.Value() }

// NewNegate constructs out = -in over Analog.
func NewNegate() *unary { return newUnary(element.Negate, func(v float32) float32 { return -v }) }

// NewAbs constructs out = |in| over Analog.
func NewAbs() *unary {
	return newUnary(element.Abs, func(v float32) float32 { return float32(math.Abs(float64(v))) })
}

// binaryComplex mirrors binary over Complex-typed ports.
type binaryComplex struct {
	element.Base
	a, b *port.Input[complex64]
	out  *port.Output[complex64]
	f    func(a, b complex64) complex64
}

func newBinaryComplex(kind element.Kind, f func(a, b complex64) complex64) *binaryComplex {
	e := &binaryComplex{Base: element.NewBase(kind), f: f}
	e.a = element.AddInput[complex64](&e.Base, "input_0", port.Complex, e)
	e.b = element.AddInput[complex64](&e.Base, "input_1", port.Complex, e)
	e.out = element.AddOutput[complex64](&e.Base, "output", port.Complex, e)
	return e
}

func (e *binaryComplex) Update(letime.Time) { e.out.Set(e.f(e.a.Get(), e.b.Get())) }

// Output returns the current output value.
func (e *binaryComplex) Output() complex64 { return e.out.Value() }

// NewAddComplex constructs out = a + b over Complex.
func NewAddComplex() *binaryComplex {
	return newBinaryComplex(element.AddComplex, func(a, b complex64) complex64 { return a + b })
}

// NewSubtractComplex constructs out = a - b over Complex.
func NewSubtractComplex() *binaryComplex {
	return newBinaryComplex(element.SubtractComplex, func(a, b complex64) complex64 { return a - b })
}

// NewMultiplyComplex constructs out = a * b over Complex.
func NewMultiplyComplex() *binaryComplex {
	return newBinaryComplex(element.MultiplyComplex, func(a, b complex64) complex64 { return a * b })
}

// NewDivideComplex constructs out = a / b over Complex, emitting zero
// when |b| is below divideGuard.
func NewDivideComplex() *binaryComplex {
	return newBinaryComplex(element.DivideComplex, func(a, b complex64) complex64 {
		if cmplx.Abs(complex128(b)) < divideGuard {
			return 0
		}
		return complex64(complex128(a) / complex128(b))
	})
}

// NegateComplexElement is the one-input Complex analogue of Negate.
type NegateComplexElement struct {
	element.Base
	in  *port.Input[complex64]
	out *port.Output[complex64]
}

// NewNegateComplex constructs out = -in over Complex.
func NewNegateComplex() *NegateComplexElement {
	e := &NegateComplexElement{Base: element.NewBase(element.NegateComplex)}
	e.in = element.AddInput[complex64](&e.Base, "input", port.Complex, e)
	e.out = element.AddOutput[complex64](&e.Base, "output", port.Complex, e)
	return e
}

// Update implements element.Element.
func (e *NegateComplexElement) Update(letime.Time) { e.out.Set(-e.in.Get()) }

// Output returns the current output value.
func (e *NegateComplexElement) Output() complex64 { return e.out.Value() }

// Magnitude is the heterogeneous element: Complex input, Analog
// output |z|.
type Magnitude struct {
	element.Base
	in  *port.Input[complex64]
	out *port.Output[float32]
}

// NewMagnitude constructs a Magnitude element.
func NewMagnitude() *Magnitude {
	e := &Magnitude{Base: element.NewBase(element.Magnitude)}
	e.in = element.AddInput[complex64](&e.Base, "input", port.Complex, e)
	e.out = element.AddOutput[float32](&e.Base, "output", port.Analog, e)
	return e
}

// Update implements element.Element.
func (e *Magnitude) Update(letime.Time) {
	e.out.Set(float32(cmplx.Abs(complex128(e.in.Get()))))
}

// Output returns the current output value.
func (e *Magnitude) Output() float32 { return e.out.Value() }

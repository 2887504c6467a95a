// Package mux implements the Mux<T> selector element of spec.md §4.4: a
// bank of width typed signals selected between two input columns by a
// single digital selector.
package mux

import (
	"fmt"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// Mux exposes width*2 typed signal inputs named in_{i}_{j} (i in
// [0,width), j in {0,1}), one digital selector input, and width typed
// outputs out_{i}. selector==false mirrors column 0, true mirrors
// column 1.
//
// The source's array-sizing hint (width*n+1) suggests banks beyond two
// were once intended, but with selector fixed as Digital there is no
// defined mapping from a boolean to more than two banks — see
// SPEC_FULL.md. This type supports exactly n==2.
type Mux[T any] struct {
	element.Base
	selector *port.Input[bool]
	bank0    []*port.Input[T]
	bank1    []*port.Input[T]
	outs     []*port.Output[T]
}

// New constructs a Mux[T] with the given width and port type.
func New[T any](kind element.Kind, width int, typ port.Type) *Mux[T] {
	e := &Mux[T]{Base: element.NewBase(kind)}
	e.selector = element.AddInput[bool](&e.Base, "selector", port.Digital, e)
	e.bank0 = make([]*port.Input[T], width)
	e.bank1 = make([]*port.Input[T], width)
	e.outs = make([]*port.Output[T], width)
	for i := 0; i < width; i++ {
		e.bank0[i] = element.AddInput[T](&e.Base, fmt.Sprintf("in_%d_0", i), typ, e)
		e.bank1[i] = element.AddInput[T](&e.Base, fmt.Sprintf("in_%d_1", i), typ, e)
		e.outs[i] = element.AddOutput[T](&e.Base, fmt.Sprintf("out_%d", i), typ, e)
	}
	return e
}

// Update implements element.Element.
func (e *Mux[T]) Update(letime.Time) {
	bank := e.bank0
	if e.selector.Get() {
		bank = e.bank1
	}
	for i, in := range bank {
		e.outs[i].Set(in.Get())
	}
}

// Output returns the current value of output i.
func (e *Mux[T]) Output(i int) T { return e.outs[i].Value() }

// NewDigital, NewAnalog, and NewComplex are the three concrete Mux
// value types the engine's factory dispatches by element.Kind.
func NewDigital(width int) *Mux[bool]       { return New[bool](element.MuxDigital, width, port.Digital) }
func NewAnalog(width int) *Mux[float32]     { return New[float32](element.MuxAnalog, width, port.Analog) }
func NewComplex(width int) *Mux[complex64]  { return New[complex64](element.MuxComplex, width, port.Complex) }

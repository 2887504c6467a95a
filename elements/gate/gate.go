// Package gate implements the primitive combinational and edge-trigger
// digital elements: AND, OR, NOT, RTrig, FTrig. See spec.md §4.4.
package gate

import (
	"fmt"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// AND computes the conjunction of n≥1 digital inputs named in_0..in_{n-1}
// into a single digital output "out". Vacuously true is never reached in
// practice since n≥1 is enforced by NewAND.
type AND struct {
	element.Base
	ins []*port.Input[bool]
	out *port.Output[bool]
}

// NewAND constructs an n-input AND gate. n must be >= 1.
func NewAND(n int) *AND {
	if n < 1 {
		n = 1
	}
	e := &AND{Base: element.NewBase(element.AND)}
	e.ins = make([]*port.Input[bool], n)
	for i := range e.ins {
		e.ins[i] = element.AddInput[bool](&e.Base, fmt.Sprintf("in_%d", i), port.Digital, e)
	}
	e.out = element.AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *AND) Update(letime.Time) {
	result := true
	for _, in := range e.ins {
		result = result && in.Get()
	}
	e.out.Set(result)
}

// Output returns the current output value.
func (e *AND) Output() bool { return e.out.Value() }

// OR computes the disjunction of n≥1 digital inputs. Vacuously false for
// n=0, though n≥1 is enforced by NewOR as it is for AND.
type OR struct {
	element.Base
	ins []*port.Input[bool]
	out *port.Output[bool]
}

// NewOR constructs an n-input OR gate. n must be >= 1.
func NewOR(n int) *OR {
	if n < 1 {
		n = 1
	}
	e := &OR{Base: element.NewBase(element.OR)}
	e.ins = make([]*port.Input[bool], n)
	for i := range e.ins {
		e.ins[i] = element.AddInput[bool](&e.Base, fmt.Sprintf("in_%d", i), port.Digital, e)
	}
	e.out = element.AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *OR) Update(letime.Time) {
	result := false
	for _, in := range e.ins {
		result = result || in.Get()
	}
	e.out.Set(result)
}

// Output returns the current output value.
func (e *OR) Output() bool { return e.out.Value() }

// NOT inverts its single digital input.
type NOT struct {
	element.Base
	in  *port.Input[bool]
	out *port.Output[bool]
}

// NewNOT constructs a NOT gate.
func NewNOT() *NOT {
	e := &NOT{Base: element.NewBase(element.NOT)}
	e.in = element.AddInput[bool](&e.Base, "input", port.Digital, e)
	e.out = element.AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *NOT) Update(letime.Time) { e.out.Set(!e.in.Get()) }

// Output returns the current output value.
func (e *NOT) Output() bool { return e.out.Value() }

// RTrig detects a false-to-true transition on its input: out is true for
// exactly the tick on which input rises.
type RTrig struct {
	element.Base
	in   *port.Input[bool]
	out  *port.Output[bool]
	prev bool
}

// NewRTrig constructs a rising-edge trigger.
func NewRTrig() *RTrig {
	e := &RTrig{Base: element.NewBase(element.RTrig)}
	e.in = element.AddInput[bool](&e.Base, "input", port.Digital, e)
	e.out = element.AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

// Update implements element.Element. prev is updated at the end of the
// tick, after the output has been computed from the pre-tick prev value.
func (e *RTrig) Update(letime.Time) {
	cur := e.in.Get()
	e.out.Set(cur && !e.prev)
	e.prev = cur
}

// Output returns the current output value.
func (e *RTrig) Output() bool { return e.out.Value() }

// FTrig detects a true-to-false transition on its input: out is true for
// exactly the tick on which input falls.
type FTrig struct {
	element.Base
	in   *port.Input[bool]
	out  *port.Output[bool]
	prev bool
}

// NewFTrig constructs a falling-edge trigger.
func NewFTrig() *FTrig {
	e := &FTrig{Base: element.NewBase(element.FTrig)}
	e.in = element.AddInput[bool](&e.Base, "input", port.Digital, e)
	e.out = element.AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *FTrig) Update(letime.Time) {
	cur := e.in.Get()
	e.out.Set(!cur && e.prev)
	e.prev = cur
}

// Output returns the current output value.
func (e *FTrig) Output() bool { return e.out.Value() }

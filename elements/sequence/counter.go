package sequence

import (
	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// Counter counts rising edges on count_up, saturating at final and
// resetting to zero whenever reset is high. Output is true once the
// count reaches final. See spec.md §4.4/§4.12.
type Counter struct {
	element.Base
	countUp *port.Input[bool]
	reset   *port.Input[bool]
	out     *port.Output[bool]

	final uint16
	count uint16
	prev  bool
}

// NewCounter constructs a Counter that trips once count_up has risen
// final times with reset held low.
func NewCounter(final uint16) *Counter {
	e := &Counter{Base: element.NewBase(element.Counter), final: final}
	e.countUp = element.AddInput[bool](&e.Base, "count_up", port.Digital, e)
	e.reset = element.AddInput[bool](&e.Base, "reset", port.Digital, e)
	e.out = element.AddOutput[bool](&e.Base, "output", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *Counter) Update(letime.Time) {
	cur := e.countUp.Get()
	rising := cur && !e.prev
	e.prev = cur

	if e.reset.Get() {
		e.count = 0
	} else if rising && e.count < e.final {
		e.count++
	}
	e.out.Set(e.count >= e.final)
}

// Output returns the current output value.
func (e *Counter) Output() bool { return e.out.Value() }

// Count returns the current accumulated count, mainly for diagnostics/tests.
func (e *Counter) Count() uint16 { return e.count }

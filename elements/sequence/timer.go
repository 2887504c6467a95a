// Package sequence implements the stateful digital elements that track
// time or count events across ticks: Timer, Counter, and SER. See
// spec.md §4.4/§4.12.
package sequence

import (
	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// TimerState enumerates the Timer's three states.
type TimerState uint8

const (
	Idle TimerState = iota
	Pickup
	Dropout
)

// Timer is a pickup/dropout delay element. Its output is true iff it is
// in the Dropout state. See spec.md §4.4 and the state table in §4.12.
type Timer struct {
	element.Base
	in  *port.Input[bool]
	out *port.Output[bool]

	pickupSeconds, dropoutSeconds float32

	state          TimerState
	prev           bool
	pickupDeadline letime.Time
	dropoutDeadline letime.Time
}

// NewTimer constructs a Timer with the given pickup and dropout delays,
// in seconds.
func NewTimer(pickupSeconds, dropoutSeconds float32) *Timer {
	e := &Timer{Base: element.NewBase(element.Timer), pickupSeconds: pickupSeconds, dropoutSeconds: dropoutSeconds}
	e.in = element.AddInput[bool](&e.Base, "input", port.Digital, e)
	e.out = element.AddOutput[bool](&e.Base, "output", port.Digital, e)
	return e
}

func secondsFrom(t letime.Time, seconds float32) letime.Time {
	return t.Add(letime.FromSeconds(float64(seconds)))
}

// Update implements element.Element.
func (e *Timer) Update(t letime.Time) {
	cur := e.in.Get()
	rising := cur && !e.prev

	switch e.state {
	case Idle:
		if rising {
			if e.pickupSeconds == 0 {
				e.state = Dropout
				e.dropoutDeadline = secondsFrom(t, e.dropoutSeconds)
			} else {
				e.state = Pickup
				e.pickupDeadline = secondsFrom(t, e.pickupSeconds)
			}
		}
	case Pickup:
		if !cur {
			e.state = Idle
		} else if t.HasElapsed(e.pickupDeadline) {
			e.state = Dropout
			e.dropoutDeadline = secondsFrom(t, e.dropoutSeconds)
		}
	case Dropout:
		if cur {
			e.dropoutDeadline = secondsFrom(t, e.dropoutSeconds)
		} else if t.HasElapsed(e.dropoutDeadline) {
			e.state = Idle
		}
	}

	e.prev = cur
	e.out.Set(e.state == Dropout)
}

// Output returns the current output value.
func (e *Timer) Output() bool { return e.out.Value() }

// State returns the current state, mainly for diagnostics/tests.
func (e *Timer) State() TimerState { return e.state }

// Package node implements Node[T], the specialized element that buffers
// a single typed value across ticks, keeps a bounded history ring of its
// recent outputs, and accepts a time-bounded override from outside the
// graph. Node is the interlock point external collaborators (a command
// server, a board adapter) use to pulse or latch values into the graph
// without bypassing the engine — see spec.md §4.5.
package node

import (
	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// Node is a one-input, one-output buffering element. T is one of bool,
// float32, or complex64; typ must match T and is what callers pass to
// New alongside the matching element.Kind (NodeDigital/NodeAnalog/
// NodeComplex).
type Node[T any] struct {
	element.Base
	in  *port.Input[T]
	out *port.Output[T]

	history     []T
	writeCursor int

	lastTime    letime.Time
	hasLastTime bool

	overrideActive   bool
	overrideValue    T
	overrideOriginal T
	overrideDuration float64
	overrideElapsed  float64
}

// New constructs a Node of history length historyLength (clamped to at
// least 1, per spec.md §3's H≥1 invariant).
func New[T any](kind element.Kind, typ port.Type, historyLength uint16) *Node[T] {
	if historyLength < 1 {
		historyLength = 1
	}
	n := &Node[T]{Base: element.NewBase(kind)}
	n.in = element.AddInput[T](&n.Base, "input", typ, n)
	n.out = element.AddOutput[T](&n.Base, "output", typ, n)
	n.history = make([]T, historyLength)
	return n
}

// Update implements element.Element. See spec.md §4.5 for the override
// vs. pass-through decision.
func (n *Node[T]) Update(t letime.Time) {
	var deltaSeconds float64
	if n.hasLastTime {
		deltaSeconds = float64(t.Sub(n.lastTime)) / 1e6
	}
	n.lastTime = t
	n.hasLastTime = true

	var out T
	if n.overrideActive {
		out = n.overrideValue
		n.overrideElapsed += deltaSeconds
		if n.overrideElapsed >= n.overrideDuration {
			n.overrideActive = false
			out = n.overrideOriginal
		}
	} else {
		out = n.in.Get()
	}

	n.out.Set(out)
	n.history[n.writeCursor] = out
	n.writeCursor = (n.writeCursor + 1) % len(n.history)
}

// Value returns the node's current output value.
func (n *Node[T]) Value() T { return n.out.Value() }

// SetValue directly overwrites the current output, bypassing the input
// wire and any active override. The value stands only until the next
// Update, which replaces it with the override value or the input's value
// (the zero value when the input is disconnected).
func (n *Node[T]) SetValue(v T) { n.out.Set(v) }

// OverrideValue captures the node's current output as the restore value,
// then drives the output with value for duration seconds. The override
// self-clears on the first tick whose accumulated elapsed time reaches
// duration, restoring the captured value — this prevents an external
// system from leaving a pulse override engaged indefinitely.
func (n *Node[T]) OverrideValue(value T, durationSeconds float64) {
	n.overrideOriginal = n.out.Value()
	n.overrideValue = value
	n.overrideDuration = durationSeconds
	n.overrideElapsed = 0
	n.overrideActive = true
}

// IsOverridden reports whether an override is currently in effect.
func (n *Node[T]) IsOverridden() bool { return n.overrideActive }

// History returns the H most recent output values, oldest first (index 0
// is the oldest of the retained outputs, the last index is the value
// just written this tick).
func (n *Node[T]) History() []T {
	h := make([]T, len(n.history))
	for i := range h {
		h[i] = n.history[(n.writeCursor+i)%len(n.history)]
	}
	return h
}

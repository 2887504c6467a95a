package element

import (
	"testing"

	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// passThrough is a minimal test element: one digital input named "in",
// one digital output named "out", output mirrors input.
type passThrough struct {
	Base
	in  *port.Input[bool]
	out *port.Output[bool]
}

func newPassThrough() *passThrough {
	e := &passThrough{Base: NewBase(AND)}
	e.in = AddInput[bool](&e.Base, "in", port.Digital, e)
	e.out = AddOutput[bool](&e.Base, "out", port.Digital, e)
	return e
}

func (e *passThrough) Update(letime.Time) { e.out.Set(e.in.Get()) }

func TestOrderChain(t *testing.T) {
	a := newPassThrough()
	b := newPassThrough()
	c := newPassThrough()

	if err := Connect(a, "out", b, "in"); err != nil {
		t.Fatalf("connect a->b: %v", err)
	}
	if err := Connect(b, "out", c, "in"); err != nil {
		t.Fatalf("connect b->c: %v", err)
	}

	oa, ob, oc := GetOrder(a), GetOrder(b), GetOrder(c)
	if !(oa < ob && ob < oc) {
		t.Fatalf("order not strictly increasing along chain: a=%d b=%d c=%d", oa, ob, oc)
	}
}

func TestOrderDisconnectedIsRankOne(t *testing.T) {
	a := newPassThrough()
	if got := GetOrder(a); got != 1 {
		t.Fatalf("GetOrder(isolated) = %d, want 1", got)
	}
}

func TestOrderCycleThroughSelfTerminates(t *testing.T) {
	a := newPassThrough()
	// a feeds its own input directly: a self-loop must not infinite-recurse.
	if err := Connect(a, "out", a, "in"); err != nil {
		t.Fatalf("connect a->a: %v", err)
	}
	if got := GetOrder(a); got != 1 {
		t.Fatalf("GetOrder(self-loop) = %d, want 1", got)
	}
}

func TestConnectUnknownPort(t *testing.T) {
	a := newPassThrough()
	b := newPassThrough()
	err := Connect(a, "nope", b, "in")
	if _, ok := err.(PortNotFoundError); !ok {
		t.Fatalf("Connect unknown output port = %v, want PortNotFoundError", err)
	}
}

func TestGetOrderRecomputesAfterLateConnect(t *testing.T) {
	a := newPassThrough()
	b := newPassThrough()
	if got := GetOrder(b); got != 1 {
		t.Fatalf("GetOrder(b) before connect = %d, want 1", got)
	}
	if err := Connect(a, "out", b, "in"); err != nil {
		t.Fatalf("connect a->b: %v", err)
	}
	if got := GetOrder(b); got != 2 {
		t.Fatalf("GetOrder(b) after late connect = %d, want 2", got)
	}
}

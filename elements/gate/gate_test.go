package gate

import (
	"testing"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

func feed(e element.Element, name string, val bool) *port.Output[bool] {
	src := port.NewOutput[bool]("src_"+name, port.Digital, nil)
	in, _ := e.Base().InputPort(name)
	if err := port.Connect(src, in); err != nil {
		panic(err)
	}
	return src
}

func TestANDOfTwo(t *testing.T) {
	a := NewAND(2)
	sa := feed(a, "in_0", false)
	sb := feed(a, "in_1", false)

	cases := []struct{ av, bv, want bool }{
		{false, false, false},
		{true, false, false},
		{true, true, true},
		{false, true, false},
	}
	var tm letime.Time
	for i, c := range cases {
		sa.Set(c.av)
		sb.Set(c.bv)
		a.Update(tm)
		if got := a.Output(); got != c.want {
			t.Errorf("tick %d: AND(%v,%v) = %v, want %v", i, c.av, c.bv, got, c.want)
		}
	}
}

func TestOR(t *testing.T) {
	o := NewOR(2)
	sa := feed(o, "in_0", false)
	sb := feed(o, "in_1", false)
	sa.Set(false)
	sb.Set(true)
	var tm letime.Time
	o.Update(tm)
	if !o.Output() {
		t.Fatal("OR(false,true) = false, want true")
	}
}

func TestNOT(t *testing.T) {
	n := NewNOT()
	s := feed(n, "input", false)
	var tm letime.Time
	s.Set(true)
	n.Update(tm)
	if n.Output() {
		t.Fatal("NOT(true) = true, want false")
	}
}

func TestRTrigFTrig(t *testing.T) {
	r := NewRTrig()
	f := NewFTrig()
	sr := feed(r, "input", false)
	sf := feed(f, "input", false)

	seq := []bool{false, true, true, false, false}
	wantR := []bool{false, true, false, false, false}
	wantF := []bool{false, false, false, true, false}
	var tm letime.Time
	for i, v := range seq {
		sr.Set(v)
		sf.Set(v)
		r.Update(tm)
		f.Update(tm)
		if got := r.Output(); got != wantR[i] {
			t.Errorf("RTrig tick %d = %v, want %v", i, got, wantR[i])
		}
		if got := f.Output(); got != wantF[i] {
			t.Errorf("FTrig tick %d = %v, want %v", i, got, wantF[i])
		}
	}
}

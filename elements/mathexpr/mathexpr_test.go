package mathexpr

import (
	"testing"

	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

func TestCompileAndEvaluate(t *testing.T) {
	m := New("x0 * 2 + x1", 2)
	x0 := port.NewOutput[float32]("x0", port.Analog, nil)
	x1 := port.NewOutput[float32]("x1", port.Analog, nil)
	x0.Set(3)
	x1.Set(1)
	if err := port.Connect(x0, m.ins[0]); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(x1, m.ins[1]); err != nil {
		t.Fatal(err)
	}
	m.Update(letime.Time{})
	if m.Output() != 7 {
		t.Fatalf("x0*2+x1 with x0=3,x1=1 = %v, want 7", m.Output())
	}
}

func TestCompileFunctionsAndPrecedence(t *testing.T) {
	m := New("sqrt(x0^2 + x1^2)", 2)
	x0 := port.NewOutput[float32]("x0", port.Analog, nil)
	x1 := port.NewOutput[float32]("x1", port.Analog, nil)
	x0.Set(3)
	x1.Set(4)
	if err := port.Connect(x0, m.ins[0]); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(x1, m.ins[1]); err != nil {
		t.Fatal(err)
	}
	m.Update(letime.Time{})
	if m.Output() != 5 {
		t.Fatalf("sqrt(x0^2+x1^2) with (3,4) = %v, want 5", m.Output())
	}
}

func TestInvalidExpressionYieldsZero(t *testing.T) {
	m := New("x0 +* 2", 1)
	x0 := port.NewOutput[float32]("x0", port.Analog, nil)
	x0.Set(99)
	if err := port.Connect(x0, m.ins[0]); err != nil {
		t.Fatal(err)
	}
	m.Update(letime.Time{})
	if m.Output() != 0 {
		t.Fatalf("failed compile should leave output 0, got %v", m.Output())
	}
}

func TestDivideByZeroGuard(t *testing.T) {
	m := New("x0 / 0", 1)
	x0 := port.NewOutput[float32]("x0", port.Analog, nil)
	x0.Set(5)
	if err := port.Connect(x0, m.ins[0]); err != nil {
		t.Fatal(err)
	}
	m.Update(letime.Time{})
	if m.Output() != 0 {
		t.Fatalf("divide by ~0 should yield 0, got %v", m.Output())
	}
}

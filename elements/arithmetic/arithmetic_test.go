package arithmetic

import (
	"testing"

	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

func wireBinary(t *testing.T, e interface {
	Update(letime.Time)
}, a, b *port.Input[float32], av, bv float32) {
	t.Helper()
	srcA := port.NewOutput[float32]("a", port.Analog, nil)
	srcB := port.NewOutput[float32]("b", port.Analog, nil)
	srcA.Set(av)
	srcB.Set(bv)
	if err := port.Connect(srcA, a); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(srcB, b); err != nil {
		t.Fatal(err)
	}
	e.Update(letime.Time{})
}

func TestAddSubtractMultiply(t *testing.T) {
	add := NewAdd()
	wireBinary(t, add, add.a, add.b, 3, 4)
	if add.Output() != 7 {
		t.Fatalf("Add = %v, want 7", add.Output())
	}

	sub := NewSubtract()
	wireBinary(t, sub, sub.a, sub.b, 10, 4)
	if sub.Output() != 6 {
		t.Fatalf("Subtract = %v, want 6", sub.Output())
	}

	mul := NewMultiply()
	wireBinary(t, mul, mul.a, mul.b, 3, 4)
	if mul.Output() != 12 {
		t.Fatalf("Multiply = %v, want 12", mul.Output())
	}
}

func TestDivideGuard(t *testing.T) {
	div := NewDivide()
	wireBinary(t, div, div.a, div.b, 5, 0)
	if div.Output() != 0 {
		t.Fatalf("Divide by ~0 should be 0, got %v", div.Output())
	}

	div2 := NewDivide()
	wireBinary(t, div2, div2.a, div2.b, 10, 2)
	if div2.Output() != 5 {
		t.Fatalf("Divide = %v, want 5", div2.Output())
	}
}

func TestNegateAbs(t *testing.T) {
	neg := NewNegate()
	src := port.NewOutput[float32]("in", port.Analog, nil)
	src.Set(3)
	if err := port.Connect(src, neg.in); err != nil {
		t.Fatal(err)
	}
	neg.Update(letime.Time{})
	if neg.Output() != -3 {
		t.Fatalf("Negate = %v, want -3", neg.Output())
	}

	abs := NewAbs()
	src2 := port.NewOutput[float32]("in", port.Analog, nil)
	src2.Set(-5)
	if err := port.Connect(src2, abs.in); err != nil {
		t.Fatal(err)
	}
	abs.Update(letime.Time{})
	if abs.Output() != 5 {
		t.Fatalf("Abs = %v, want 5", abs.Output())
	}
}

func TestDivideComplexGuard(t *testing.T) {
	div := NewDivideComplex()
	srcA := port.NewOutput[complex64]("a", port.Complex, nil)
	srcB := port.NewOutput[complex64]("b", port.Complex, nil)
	srcA.Set(complex(1, 1))
	srcB.Set(complex(0, 0))
	if err := port.Connect(srcA, div.a); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(srcB, div.b); err != nil {
		t.Fatal(err)
	}
	div.Update(letime.Time{})
	if div.Output() != 0 {
		t.Fatalf("DivideComplex by ~0 should be 0, got %v", div.Output())
	}
}

func TestMagnitude(t *testing.T) {
	m := NewMagnitude()
	src := port.NewOutput[complex64]("in", port.Complex, nil)
	src.Set(complex(3, 4))
	if err := port.Connect(src, m.in); err != nil {
		t.Fatal(err)
	}
	m.Update(letime.Time{})
	if m.Output() != 5 {
		t.Fatalf("Magnitude = %v, want 5", m.Output())
	}
}

package port

import "testing"

func TestConnectTypeSafety(t *testing.T) {
	out := NewOutput[float32]("out", Analog, nil)
	in := NewInput[bool]("in", Digital, nil)

	err := Connect(out, in)
	if _, ok := err.(TypeMismatchError); !ok {
		t.Fatalf("Connect(Analog out, Digital in) = %v, want TypeMismatchError", err)
	}
	if in.Connected() {
		t.Fatal("input should remain disconnected after a failed connect")
	}
	if got := in.Get(); got != false {
		t.Fatalf("disconnected input Get() = %v, want zero value", got)
	}
}

func TestConnectAndRead(t *testing.T) {
	out := NewOutput[float32]("out", Analog, nil)
	in := NewInput[float32]("in", Analog, nil)

	if err := Connect(out, in); err != nil {
		t.Fatalf("Connect() = %v, want nil", err)
	}
	out.Set(3.25)
	if got := in.Get(); got != 3.25 {
		t.Fatalf("in.Get() = %v, want 3.25", got)
	}
	out.Set(-1.5)
	if got := in.Get(); got != -1.5 {
		t.Fatalf("in.Get() = %v, want -1.5 (live reference, not a snapshot)", got)
	}
}

func TestConnectWrongDirection(t *testing.T) {
	a := NewInput[bool]("a", Digital, nil)
	b := NewInput[bool]("b", Digital, nil)
	if err := Connect(a, b); err == nil {
		t.Fatal("Connect(input, input) should fail")
	}
}

func TestDisconnectedComplexDefault(t *testing.T) {
	in := NewInput[complex64]("in", Complex, nil)
	if got := in.Get(); got != 0 {
		t.Fatalf("disconnected complex input = %v, want 0", got)
	}
}

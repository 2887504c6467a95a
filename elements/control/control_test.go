package control

import (
	"testing"

	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

func TestPIDProportionalOnly(t *testing.T) {
	pid := NewPID(2, 0, 0, -100, 100, 3)
	sp := port.NewOutput[float32]("sp", port.Analog, nil)
	fb := port.NewOutput[float32]("fb", port.Analog, nil)
	sp.Set(10)
	fb.Set(4)
	if err := port.Connect(sp, pid.setpoint); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(fb, pid.feedback); err != nil {
		t.Fatal(err)
	}
	pid.Update(letime.FromSeconds(0))
	if pid.Output() != 12 {
		t.Fatalf("P-only output = %v, want 12 (2*(10-4))", pid.Output())
	}
}

func TestPIDIntegralClamps(t *testing.T) {
	pid := NewPID(0, 100, 0, -10, 10, 3)
	sp := port.NewOutput[float32]("sp", port.Analog, nil)
	fb := port.NewOutput[float32]("fb", port.Analog, nil)
	sp.Set(1)
	fb.Set(0)
	if err := port.Connect(sp, pid.setpoint); err != nil {
		t.Fatal(err)
	}
	if err := port.Connect(fb, pid.feedback); err != nil {
		t.Fatal(err)
	}
	pid.Update(letime.FromSeconds(0))
	for s := 1; s <= 5; s++ {
		pid.Update(letime.FromSeconds(float64(s)))
	}
	if pid.Output() > 10 {
		t.Fatalf("integral should clamp at 10, got %v", pid.Output())
	}
}

func TestOvercurrentTripsOnSustainedOverload(t *testing.T) {
	oc := NewOvercurrent(DT, 1.0, 1.0, 0, false)
	cur := port.NewOutput[float32]("current", port.Analog, nil)
	cur.Set(2.0)
	if err := port.Connect(cur, oc.current); err != nil {
		t.Fatal(err)
	}

	oc.Update(letime.FromSeconds(0))
	tripped := false
	for s := 1; s <= 200 && !tripped; s++ {
		oc.Update(letime.FromSeconds(float64(s) * 0.01))
		tripped = oc.Trip()
	}
	if !tripped {
		t.Fatal("Overcurrent should trip under sustained 2x pickup on DT curve")
	}
}

func TestOvercurrentHoldsBelowPickup(t *testing.T) {
	oc := NewOvercurrent(C1, 1.0, 1.0, 0, false)
	cur := port.NewOutput[float32]("current", port.Analog, nil)
	cur.Set(0.5)
	if err := port.Connect(cur, oc.current); err != nil {
		t.Fatal(err)
	}
	oc.Update(letime.FromSeconds(0))
	for s := 1; s <= 10; s++ {
		oc.Update(letime.FromSeconds(float64(s) * 0.1))
	}
	if oc.Trip() {
		t.Fatal("Overcurrent should not trip while under pickup with em_reset disabled")
	}
	if oc.Percent() != 0 {
		t.Fatalf("percent should reset to 0 below pickup without em_reset, got %v", oc.Percent())
	}
}

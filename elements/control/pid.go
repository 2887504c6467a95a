// Package control implements the closed-loop control elements of
// spec.md §4.9/§4.10: PID and the inverse-time Overcurrent curve.
package control

import (
	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PID implements proportional-integral-derivative control with a
// clamped (anti-windup) integral term and N-sample derivative
// smoothing. See spec.md §4.9.
type PID struct {
	element.Base
	setpoint, feedback *port.Input[float32]
	out                *port.Output[float32]

	p, i, d    float32
	min, max   float32
	n          int
	inBuf      []float32
	outBuf     []float32
	cursor     int
	integral   float32
	lastTime   letime.Time
	haveLast   bool
}

// NewPID constructs a PID controller with gains p/i/d, output clamp
// [min, max], and derivative smoothing window n. n<1 is raised to 1; with
// a one-sample window the derivative term is always zero, because the
// current and previous smoothed values share the same slot. d==0 skips
// the derivative path entirely.
func NewPID(p, i, d, min, max float32, n int) *PID {
	if n < 1 {
		n = 1
	}
	e := &PID{
		Base: element.NewBase(element.PID),
		p:    p, i: i, d: d, min: min, max: max, n: n,
		inBuf:  make([]float32, n),
		outBuf: make([]float32, n),
	}
	e.setpoint = element.AddInput[float32](&e.Base, "setpoint", port.Analog, e)
	e.feedback = element.AddInput[float32](&e.Base, "feedback", port.Analog, e)
	e.out = element.AddOutput[float32](&e.Base, "output", port.Analog, e)
	return e
}

// Update implements element.Element.
func (e *PID) Update(t letime.Time) {
	var dt float32
	if e.haveLast {
		dt = float32(t.Sub(e.lastTime)) / 1e6
	}
	e.lastTime = t
	e.haveLast = true

	err := e.setpoint.Get() - e.feedback.Get()
	p := clamp(e.p*err, e.min, e.max)

	if dt > 0 {
		e.integral += e.i * err * dt
		e.integral = clamp(e.integral, e.min, e.max)
	}

	if e.d == 0 {
		e.out.Set(clamp(p+e.integral, e.min, e.max))
		return
	}

	e.inBuf[e.cursor] = err
	var sum float32
	for _, v := range e.inBuf {
		sum += v
	}
	smoothed := sum / float32(e.n)
	e.outBuf[e.cursor] = smoothed

	var derivative float32
	if dt > 0 {
		prev := e.outBuf[(e.cursor-1+e.n)%e.n]
		derivative = (smoothed - prev) * e.d / dt
	}
	e.cursor = (e.cursor + 1) % e.n

	e.out.Set(clamp(p+e.integral+clamp(derivative, e.min, e.max), e.min, e.max))
}

// Output returns the current output value.
func (e *PID) Output() float32 { return e.out.Value() }

package control

import (
	"math"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// Curve selects one of the standard IEC/IEEE inverse-time curves, or a
// fixed definite-time (DT) curve. See spec.md §4.10.
type Curve int8

const (
	CurveInvalid Curve = -1
	C1           Curve = 0
	C2           Curve = 1
	C3           Curve = 2
	C4           Curve = 3
	C5           Curve = 4
	U1           Curve = 10
	U2           Curve = 11
	U3           Curve = 12
	U4           Curve = 13
	U5           Curve = 14
	DT           Curve = 20
)

// curveParams holds a curve's (alpha, beta, gamma, beta_r, gamma_r)
// 5-tuple, per spec.md §4.10.
type curveParams struct {
	alpha, beta, gamma, betaR, gammaR float32
}

// curveTable gives the standard published constants for each curve.
// C1 and DT match the original source exactly; the remaining IEC/IEEE
// curves use their widely-published standard constants (the original
// elides them behind "additional case statements").
var curveTable = map[Curve]curveParams{
	C1: {alpha: 0, beta: 0.14, gamma: 0.02, betaR: 13.5, gammaR: 2.0},
	C2: {alpha: 0, beta: 13.5, gamma: 1.0, betaR: 47.3, gammaR: 2.0},
	C3: {alpha: 0, beta: 80.0, gamma: 2.0, betaR: 80.0, gammaR: 2.0},
	C4: {alpha: 0, beta: 120.0, gamma: 1.0, betaR: 120.0, gammaR: 2.0},
	C5: {alpha: 0, beta: 0.05, gamma: 0.04, betaR: 4.85, gammaR: 2.0},
	U1: {alpha: 0, beta: 0.0515, gamma: 0.02, betaR: 4.85, gammaR: 2.0},
	U2: {alpha: 0, beta: 19.61, gamma: 2.0, betaR: 21.6, gammaR: 2.0},
	U3: {alpha: 0, beta: 28.2, gamma: 2.0, betaR: 29.1, gammaR: 2.0},
	U4: {alpha: 0, beta: 0.1217, gamma: 0.02, betaR: 4.85, gammaR: 2.0},
	U5: {alpha: 0, beta: 0.0762, gamma: 0.02, betaR: 4.85, gammaR: 2.0},
	DT: {alpha: 0, beta: 0, gamma: 1.0, betaR: 0, gammaR: 1.0},
}

// ParseCurve resolves a config-file curve name ("C1".."C5", "U1".."U5",
// "DT") to a Curve. Unknown names return (CurveInvalid, false).
func ParseCurve(name string) (Curve, bool) {
	names := map[string]Curve{
		"C1": C1, "C2": C2, "C3": C3, "C4": C4, "C5": C5,
		"U1": U1, "U2": U2, "U3": U3, "U4": U4, "U5": U5,
		"DT": DT,
	}
	c, ok := names[name]
	return c, ok
}

// Overcurrent implements the IEC/IEEE inverse-time curve integrator of
// spec.md §4.10: Analog current input, Digital trip output.
type Overcurrent struct {
	element.Base
	current *port.Input[float32]
	trip    *port.Output[bool]

	params             curveParams
	pickup, timeDial   float32
	timeAdder          float32
	emReset            bool
	percent            float32
	lastTime           letime.Time
	haveLast           bool
}

// NewOvercurrent constructs an Overcurrent element for the given curve,
// pickup current, time dial, time adder, and electromechanical-reset
// flag.
func NewOvercurrent(curve Curve, pickup, timeDial, timeAdder float32, emReset bool) *Overcurrent {
	e := &Overcurrent{
		Base:      element.NewBase(element.Overcurrent),
		params:    curveTable[curve],
		pickup:    pickup,
		timeDial:  timeDial,
		timeAdder: timeAdder,
		emReset:   emReset,
	}
	e.current = element.AddInput[float32](&e.Base, "current", port.Analog, e)
	e.trip = element.AddOutput[bool](&e.Base, "trip", port.Digital, e)
	return e
}

// Update implements element.Element.
func (e *Overcurrent) Update(t letime.Time) {
	var dt float32
	if e.haveLast {
		dt = float32(t.Sub(e.lastTime)) / 1e6
	}
	e.lastTime = t
	e.haveLast = true

	if e.pickup == 0 || dt <= 0 {
		e.trip.Set(e.percent >= 100)
		return
	}

	m := e.current.Get() / e.pickup
	p := e.params

	switch {
	case m > 1:
		tripTime := e.timeAdder + e.timeDial*(p.alpha+p.beta/(float32(math.Pow(float64(m), float64(p.gamma)))-1))
		e.percent += 100 * dt / tripTime
	case m < 1 && e.emReset:
		resetTime := e.timeDial * p.betaR / (1 - float32(math.Pow(float64(m), float64(p.gammaR))))
		e.percent -= 100 * dt / resetTime
	default:
		e.percent = 0
	}

	e.percent = clamp(e.percent, 0, 100)
	e.trip.Set(e.percent >= 100)
}

// Trip returns the current trip output.
func (e *Overcurrent) Trip() bool { return e.trip.Value() }

// Percent returns the current dial-spin accumulator, mainly for
// diagnostics/tests.
func (e *Overcurrent) Percent() float32 { return e.percent }

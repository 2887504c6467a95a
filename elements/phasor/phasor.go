// Package phasor implements the cosine-filter phasor estimator and its
// derived elements from spec.md §4.6: Analog1PWinding, Analog3PWinding,
// and PhasorShift. This build uses the Complex port representation
// throughout rather than separate real/imaginary Analog pairs.
package phasor

import (
	"math"
	"math/cmplx"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// referenceEpsilon is the reference-magnitude threshold below which
// Analog1PWinding passes the raw phasor through unrotated.
const referenceEpsilon = 1e-9

// Analog1PWinding estimates the fundamental-frequency phasor of a
// sampled waveform using a full-cycle cosine filter followed by a
// quarter-cycle-delayed read, then rotates the result relative to a
// reference phasor. See spec.md §4.6.
type Analog1PWinding struct {
	element.Base
	raw       *port.Input[float32]
	reference *port.Input[complex64]
	out       *port.Output[complex64]

	samplesPerCycle int
	coeffs          []float64

	rawRing      []float64
	filteredRing []float64
	cursor       int
}

// NewAnalog1PWinding constructs a winding sampling samplesPerCycle
// points per power-cycle.
func NewAnalog1PWinding(samplesPerCycle int) *Analog1PWinding {
	if samplesPerCycle < 4 {
		samplesPerCycle = 4
	}
	e := &Analog1PWinding{
		Base:            element.NewBase(element.Analog1PWinding),
		samplesPerCycle: samplesPerCycle,
	}
	e.raw = element.AddInput[float32](&e.Base, "raw", port.Analog, e)
	e.reference = element.AddInput[complex64](&e.Base, "reference", port.Complex, e)
	e.out = element.AddOutput[complex64](&e.Base, "output", port.Complex, e)

	e.coeffs = make([]float64, samplesPerCycle)
	for k := range e.coeffs {
		e.coeffs[k] = (2.0 / float64(samplesPerCycle)) * math.Cos(2*math.Pi*float64(k)/float64(samplesPerCycle))
	}
	e.rawRing = make([]float64, samplesPerCycle)
	e.filteredRing = make([]float64, samplesPerCycle)
	return e
}

// Update implements element.Element.
func (e *Analog1PWinding) Update(letime.Time) {
	S := e.samplesPerCycle
	e.rawRing[e.cursor] = float64(e.raw.Get())

	var acc float64
	for k := 0; k < S; k++ {
		idx := (e.cursor - k + S) % S
		acc += e.coeffs[k] * e.rawRing[idx]
	}
	e.filteredRing[e.cursor] = acc

	re := e.filteredRing[e.cursor]
	im := e.filteredRing[(e.cursor-S/4+S)%S]
	phasor := complex(re, im)

	ref := complex128(e.reference.Get())
	if cmplx.Abs(ref) > referenceEpsilon {
		phasor = phasor * cmplx.Conj(ref) / complex(cmplx.Abs(ref), 0)
	}

	e.out.Set(complex64(phasor))
	e.cursor = (e.cursor + 1) % S
}

// Output returns the current phasor estimate.
func (e *Analog1PWinding) Output() complex64 { return e.out.Value() }

// sequenceRotator is e^{j*2*pi/3}, the symmetrical-components operator.
var sequenceRotator = cmplx.Exp(complex(0, 2*math.Pi/3))

// Analog3PWinding wraps three single-phase windings sharing a common
// reference and derives the zero/positive/negative sequence components.
// See spec.md §4.6.
type Analog3PWinding struct {
	element.Base
	a, b, c *Analog1PWinding

	v0, v1, v2 *port.Output[complex64]
}

// NewAnalog3PWinding constructs a three-phase winding sampling
// samplesPerCycle points per cycle on each phase.
func NewAnalog3PWinding(samplesPerCycle int) *Analog3PWinding {
	e := &Analog3PWinding{
		Base: element.NewBase(element.Analog3PWinding),
		a:    NewAnalog1PWinding(samplesPerCycle),
		b:    NewAnalog1PWinding(samplesPerCycle),
		c:    NewAnalog1PWinding(samplesPerCycle),
	}
	// Re-register phase ports under this element's own Base so callers
	// wire into the 3-phase winding directly rather than its internals.
	e.a.raw = element.AddInput[float32](&e.Base, "raw_a", port.Analog, e)
	e.b.raw = element.AddInput[float32](&e.Base, "raw_b", port.Analog, e)
	e.c.raw = element.AddInput[float32](&e.Base, "raw_c", port.Analog, e)
	e.a.reference = element.AddInput[complex64](&e.Base, "reference", port.Complex, e)
	e.b.reference = e.a.reference
	e.c.reference = e.a.reference

	e.a.out = element.AddOutput[complex64](&e.Base, "phase_a", port.Complex, e)
	e.b.out = element.AddOutput[complex64](&e.Base, "phase_b", port.Complex, e)
	e.c.out = element.AddOutput[complex64](&e.Base, "phase_c", port.Complex, e)
	e.v0 = element.AddOutput[complex64](&e.Base, "sequence_0", port.Complex, e)
	e.v1 = element.AddOutput[complex64](&e.Base, "sequence_1", port.Complex, e)
	e.v2 = element.AddOutput[complex64](&e.Base, "sequence_2", port.Complex, e)
	return e
}

// Update implements element.Element.
func (e *Analog3PWinding) Update(t letime.Time) {
	e.a.Update(t)
	e.b.Update(t)
	e.c.Update(t)

	va := complex128(e.a.Output())
	vb := complex128(e.b.Output())
	vc := complex128(e.c.Output())
	a := sequenceRotator
	a2 := a * a

	e.v0.Set(complex64(va + vb + vc))
	e.v1.Set(complex64((va + a*vb + a2*vc) / 3))
	e.v2.Set(complex64((va + a2*vb + a*vc) / 3))
}

// PhaseA, PhaseB, PhaseC return the per-phase phasor estimates.
func (e *Analog3PWinding) PhaseA() complex64 { return e.a.Output() }
func (e *Analog3PWinding) PhaseB() complex64 { return e.b.Output() }
func (e *Analog3PWinding) PhaseC() complex64 { return e.c.Output() }

// Sequence0, Sequence1, Sequence2 return the zero/positive/negative
// sequence symmetrical components.
func (e *Analog3PWinding) Sequence0() complex64 { return e.v0.Value() }
func (e *Analog3PWinding) Sequence1() complex64 { return e.v1.Value() }
func (e *Analog3PWinding) Sequence2() complex64 { return e.v2.Value() }

// PhasorShift rotates and scales an input phasor: out = in * magnitude
// * e^{-j*angle}, angle given in degrees clockwise. See spec.md §4.6.
type PhasorShift struct {
	element.Base
	in  *port.Input[complex64]
	out *port.Output[complex64]

	rotation complex128
}

// NewPhasorShift constructs a PhasorShift with a fixed magnitude and
// clockwise angle in degrees.
func NewPhasorShift(magnitude, angleDegClockwise float64) *PhasorShift {
	e := &PhasorShift{Base: element.NewBase(element.PhasorShift)}
	e.in = element.AddInput[complex64](&e.Base, "in", port.Complex, e)
	e.out = element.AddOutput[complex64](&e.Base, "out", port.Complex, e)
	rad := angleDegClockwise * math.Pi / 180
	e.rotation = complex(magnitude, 0) * cmplx.Exp(complex(0, -rad))
	return e
}

// Update implements element.Element.
func (e *PhasorShift) Update(letime.Time) {
	e.out.Set(complex64(complex128(e.in.Get()) * e.rotation))
}

// Output returns the current output value.
func (e *PhasorShift) Output() complex64 { return e.out.Value() }

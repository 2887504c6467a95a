// Package convert implements the pure coordinate-conversion elements of
// spec.md §4.6/§4.7: rectangular, polar, and Complex representations of
// a single 2D quantity. Angles are expressed in degrees on ports and
// radians internally.
package convert

import (
	"math"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

const degPerRad = 180.0 / math.Pi
const radPerDeg = math.Pi / 180.0

// Rect2Polar converts real/imaginary Analog inputs to magnitude/angle
// Analog outputs (angle in degrees).
type Rect2Polar struct {
	element.Base
	real, imag   *port.Input[float32]
	mag, angleDeg *port.Output[float32]
}

func NewRect2Polar() *Rect2Polar {
	e := &Rect2Polar{Base: element.NewBase(element.Rect2Polar)}
	e.real = element.AddInput[float32](&e.Base, "real", port.Analog, e)
	e.imag = element.AddInput[float32](&e.Base, "imaginary", port.Analog, e)
	e.mag = element.AddOutput[float32](&e.Base, "magnitude", port.Analog, e)
	e.angleDeg = element.AddOutput[float32](&e.Base, "angle", port.Analog, e)
	return e
}

func (e *Rect2Polar) Update(letime.Time) {
	r, i := float64(e.real.Get()), float64(e.imag.Get())
	e.mag.Set(float32(math.Hypot(r, i)))
	e.angleDeg.Set(float32(math.Atan2(i, r) * degPerRad))
}

func (e *Rect2Polar) Magnitude() float32 { return e.mag.Value() }
func (e *Rect2Polar) Angle() float32     { return e.angleDeg.Value() }

// Polar2Rect is Rect2Polar's inverse.
type Polar2Rect struct {
	element.Base
	mag, angleDeg *port.Input[float32]
	real, imag    *port.Output[float32]
}

func NewPolar2Rect() *Polar2Rect {
	e := &Polar2Rect{Base: element.NewBase(element.Polar2Rect)}
	e.mag = element.AddInput[float32](&e.Base, "magnitude", port.Analog, e)
	e.angleDeg = element.AddInput[float32](&e.Base, "angle", port.Analog, e)
	e.real = element.AddOutput[float32](&e.Base, "real", port.Analog, e)
	e.imag = element.AddOutput[float32](&e.Base, "imaginary", port.Analog, e)
	return e
}

func (e *Polar2Rect) Update(letime.Time) {
	m, a := float64(e.mag.Get()), float64(e.angleDeg.Get())*radPerDeg
	e.real.Set(float32(m * math.Cos(a)))
	e.imag.Set(float32(m * math.Sin(a)))
}

func (e *Polar2Rect) Real() float32 { return e.real.Value() }
func (e *Polar2Rect) Imag() float32 { return e.imag.Value() }

// Rect2Complex packs real/imag Analog inputs into a Complex output.
type Rect2Complex struct {
	element.Base
	real, imag *port.Input[float32]
	out        *port.Output[complex64]
}

func NewRect2Complex() *Rect2Complex {
	e := &Rect2Complex{Base: element.NewBase(element.Rect2Complex)}
	e.real = element.AddInput[float32](&e.Base, "real", port.Analog, e)
	e.imag = element.AddInput[float32](&e.Base, "imaginary", port.Analog, e)
	e.out = element.AddOutput[complex64](&e.Base, "output", port.Complex, e)
	return e
}

func (e *Rect2Complex) Update(letime.Time) {
	e.out.Set(complex(e.real.Get(), e.imag.Get()))
}

func (e *Rect2Complex) Output() complex64 { return e.out.Value() }

// Complex2Rect unpacks a Complex input into real/imag Analog outputs.
type Complex2Rect struct {
	element.Base
	in         *port.Input[complex64]
	real, imag *port.Output[float32]
}

func NewComplex2Rect() *Complex2Rect {
	e := &Complex2Rect{Base: element.NewBase(element.Complex2Rect)}
	e.in = element.AddInput[complex64](&e.Base, "input", port.Complex, e)
	e.real = element.AddOutput[float32](&e.Base, "real", port.Analog, e)
	e.imag = element.AddOutput[float32](&e.Base, "imaginary", port.Analog, e)
	return e
}

func (e *Complex2Rect) Update(letime.Time) {
	v := e.in.Get()
	e.real.Set(real(v))
	e.imag.Set(imag(v))
}

func (e *Complex2Rect) Real() float32 { return e.real.Value() }
func (e *Complex2Rect) Imag() float32 { return e.imag.Value() }

// Polar2Complex packs magnitude/angle(degrees) Analog inputs into a
// Complex output.
type Polar2Complex struct {
	element.Base
	mag, angleDeg *port.Input[float32]
	out           *port.Output[complex64]
}

func NewPolar2Complex() *Polar2Complex {
	e := &Polar2Complex{Base: element.NewBase(element.Polar2Complex)}
	e.mag = element.AddInput[float32](&e.Base, "magnitude", port.Analog, e)
	e.angleDeg = element.AddInput[float32](&e.Base, "angle", port.Analog, e)
	e.out = element.AddOutput[complex64](&e.Base, "output", port.Complex, e)
	return e
}

func (e *Polar2Complex) Update(letime.Time) {
	m, a := float64(e.mag.Get()), float64(e.angleDeg.Get())*radPerDeg
	e.out.Set(complex(float32(m*math.Cos(a)), float32(m*math.Sin(a))))
}

func (e *Polar2Complex) Output() complex64 { return e.out.Value() }

// Complex2Polar unpacks a Complex input into magnitude/angle(degrees)
// Analog outputs.
type Complex2Polar struct {
	element.Base
	in            *port.Input[complex64]
	mag, angleDeg *port.Output[float32]
}

func NewComplex2Polar() *Complex2Polar {
	e := &Complex2Polar{Base: element.NewBase(element.Complex2Polar)}
	e.in = element.AddInput[complex64](&e.Base, "input", port.Complex, e)
	e.mag = element.AddOutput[float32](&e.Base, "magnitude", port.Analog, e)
	e.angleDeg = element.AddOutput[float32](&e.Base, "angle", port.Analog, e)
	return e
}

func (e *Complex2Polar) Update(letime.Time) {
	v := e.in.Get()
	r, i := float64(real(v)), float64(imag(v))
	e.mag.Set(float32(math.Hypot(r, i)))
	e.angleDeg.Set(float32(math.Atan2(i, r) * degPerRad))
}

func (e *Complex2Polar) Magnitude() float32 { return e.mag.Value() }
func (e *Complex2Polar) Angle() float32     { return e.angleDeg.Value() }

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/elements/arithmetic"
	"github.com/tannerhollis/legraph/elements/control"
	"github.com/tannerhollis/legraph/elements/convert"
	"github.com/tannerhollis/legraph/elements/gate"
	"github.com/tannerhollis/legraph/elements/mathexpr"
	"github.com/tannerhollis/legraph/elements/mux"
	"github.com/tannerhollis/legraph/elements/node"
	"github.com/tannerhollis/legraph/elements/phasor"
	"github.com/tannerhollis/legraph/elements/sequence"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// diagSlot tracks the rolling diagnostics the engine samples around
// each element's Update call, per spec.md §4.11/§6.
type diagSlot struct {
	name        string
	lastNanos   int64
	totalNanos  int64
}

// Engine owns every element it constructs, the name→element registry,
// and the update-order-sorted execution list. See spec.md §4.11.
type Engine struct {
	name string
	log  *logrus.Entry

	byName  map[string]element.Element
	ordered []element.Element // insertion order; source of truth for iteration before sort
	sorted  []element.Element // update-order sorted, rebuilt by resort

	defaultNodeHistory uint16

	diagEnabled  bool
	diag         map[element.Element]*diagSlot
	lastTickNS   int64
	lastTickAt   time.Time
	havePrevTick bool
	totalTickNS  int64
	tickCount    uint64
}

// New constructs an empty Engine. defaultNodeHistory is used by
// NodeDigital/NodeAnalog/NodeComplex ElementTypeDefs that omit an
// explicit history-length argument.
func New(name string, defaultNodeHistory uint16) *Engine {
	if defaultNodeHistory == 0 {
		defaultNodeHistory = 1
	}
	return &Engine{
		name:               name,
		log:                logrus.WithField("engine", name),
		byName:             make(map[string]element.Element),
		defaultNodeHistory: defaultNodeHistory,
		diag:               make(map[element.Element]*diagSlot),
		diagEnabled:        true,
	}
}

// SetDiagnostics toggles per-element execution-time sampling.
func (e *Engine) SetDiagnostics(enabled bool) { e.diagEnabled = enabled }

// ElementName returns the name an element was registered under, and
// whether it was found — the reverse of Element(name).
func (e *Engine) ElementName(el element.Element) (string, bool) {
	for name, candidate := range e.byName {
		if candidate == el {
			return name, true
		}
	}
	return "", false
}

// Element looks up a previously added element by name.
func (e *Engine) Element(name string) (element.Element, bool) {
	el, ok := e.byName[name]
	return el, ok
}

// AddElement dispatches def.Type to the matching concrete constructor,
// checks name uniqueness, and inserts the result into the registry. On
// failure it returns a nil Element and a descriptive error; per
// spec.md §7 the caller decides whether to abort the whole config load
// or skip the one definition.
func (e *Engine) AddElement(def ElementTypeDef) (element.Element, error) {
	name := CopyAndClampString(def.Name)
	if _, exists := e.byName[name]; exists {
		return nil, DuplicateNameError{Name: name}
	}

	kind, ok := element.ParseKind(def.Type)
	if !ok {
		return nil, UnknownElementTypeError{Type: def.Type}
	}

	el, err := e.construct(name, kind, def)
	if err != nil {
		return nil, err
	}

	e.byName[name] = el
	e.ordered = append(e.ordered, el)
	e.sorted = nil // the next Update re-sorts so the new element runs
	e.diag[el] = &diagSlot{name: name}
	e.log.WithFields(logrus.Fields{"name": name, "type": kind.String()}).Debug("element added")
	return el, nil
}

func (e *Engine) construct(name string, kind element.Kind, def ElementTypeDef) (element.Element, error) {
	switch kind {
	case element.NodeDigital:
		h := def.U16(0)
		if h == 0 {
			h = e.defaultNodeHistory
		}
		return node.New[bool](kind, port.Digital, h), nil
	case element.NodeAnalog:
		h := def.U16(0)
		if h == 0 {
			h = e.defaultNodeHistory
		}
		return node.New[float32](kind, port.Analog, h), nil
	case element.NodeComplex:
		h := def.U16(0)
		if h == 0 {
			h = e.defaultNodeHistory
		}
		return node.New[complex64](kind, port.Complex, h), nil

	case element.AND:
		n := int(def.U16(0))
		if n < 1 {
			return nil, ArgumentRangeError{Element: name, Reason: "AND requires n >= 1"}
		}
		return gate.NewAND(n), nil
	case element.OR:
		n := int(def.U16(0))
		if n < 1 {
			return nil, ArgumentRangeError{Element: name, Reason: "OR requires n >= 1"}
		}
		return gate.NewOR(n), nil
	case element.NOT:
		return gate.NewNOT(), nil
	case element.RTrig:
		return gate.NewRTrig(), nil
	case element.FTrig:
		return gate.NewFTrig(), nil

	case element.Timer:
		return sequence.NewTimer(def.F32(0), def.F32(1)), nil
	case element.Counter:
		return sequence.NewCounter(def.U16(0)), nil
	case element.MuxDigital:
		return mux.NewDigital(int(def.U16(0))), nil
	case element.MuxAnalog:
		return mux.NewAnalog(int(def.U16(0))), nil
	case element.MuxComplex:
		return mux.NewComplex(int(def.U16(0))), nil
	case element.SER:
		return sequence.NewSER(int(def.U16(0))), nil

	case element.Rect2Polar:
		return convert.NewRect2Polar(), nil
	case element.Polar2Rect:
		return convert.NewPolar2Rect(), nil
	case element.Rect2Complex:
		return convert.NewRect2Complex(), nil
	case element.Complex2Rect:
		return convert.NewComplex2Rect(), nil
	case element.Polar2Complex:
		return convert.NewPolar2Complex(), nil
	case element.Complex2Polar:
		return convert.NewComplex2Polar(), nil
	case element.PhasorShift:
		return phasor.NewPhasorShift(float64(def.F32(0)), float64(def.F32(1))), nil

	case element.Add:
		return arithmetic.NewAdd(), nil
	case element.Subtract:
		return arithmetic.NewSubtract(), nil
	case element.Multiply:
		return arithmetic.NewMultiply(), nil
	case element.Divide:
		return arithmetic.NewDivide(), nil
	case element.Negate:
		return arithmetic.NewNegate(), nil
	case element.Abs:
		return arithmetic.NewAbs(), nil
	case element.AddComplex:
		return arithmetic.NewAddComplex(), nil
	case element.SubtractComplex:
		return arithmetic.NewSubtractComplex(), nil
	case element.MultiplyComplex:
		return arithmetic.NewMultiplyComplex(), nil
	case element.DivideComplex:
		return arithmetic.NewDivideComplex(), nil
	case element.NegateComplex:
		return arithmetic.NewNegateComplex(), nil
	case element.Magnitude:
		return arithmetic.NewMagnitude(), nil

	case element.Math:
		n := int(def.U16(1))
		if n < 0 {
			return nil, ArgumentRangeError{Element: name, Reason: "Math requires n >= 0"}
		}
		return mathexpr.New(def.Str(0), n), nil

	case element.Analog1PWinding:
		return phasor.NewAnalog1PWinding(int(def.U16(0))), nil
	case element.Analog3PWinding:
		return phasor.NewAnalog3PWinding(int(def.U16(0))), nil

	case element.PID:
		n := int(def.U16(5))
		if n < 1 {
			n = 3
		}
		return control.NewPID(def.F32(0), def.F32(1), def.F32(2), def.F32(3), def.F32(4), n), nil

	case element.Overcurrent:
		curve, ok := control.ParseCurve(def.Str(0))
		if !ok {
			return nil, ArgumentRangeError{Element: name, Reason: fmt.Sprintf("unknown overcurrent curve %q", def.Str(0))}
		}
		return control.NewOvercurrent(curve, def.F32(1), def.F32(2), def.F32(3), def.Bool(4)), nil

	default:
		return nil, UnknownElementTypeError{Type: kind.String()}
	}
}

// AddNet resolves def's output and input endpoints against the
// registry and wires them via element.Connect. Per spec.md §4.11,
// unresolved endpoints are skipped rather than aborting the whole net;
// every skip is logged and returned in the error slice.
func (e *Engine) AddNet(def NetDef) []error {
	var errs []error
	src, ok := e.byName[def.Output.Element]
	if !ok {
		err := UnknownElementError{Name: def.Output.Element}
		errs = append(errs, err)
		e.log.WithError(err).Warn("add_net: unresolved output endpoint")
		return errs
	}

	for _, in := range def.Inputs {
		dst, ok := e.byName[in.Element]
		if !ok {
			err := UnknownElementError{Name: in.Element}
			errs = append(errs, err)
			e.log.WithError(err).Warn("add_net: unresolved input endpoint")
			continue
		}
		if err := element.Connect(src, def.Output.Port, dst, in.Port); err != nil {
			errs = append(errs, err)
			e.log.WithError(err).WithFields(logrus.Fields{
				"src": def.Output.Element, "dst": in.Element,
			}).Warn("add_net: connect failed")
		}
	}

	e.resort()
	return errs
}

// resort recomputes every element's update order and re-sorts the
// execution list. Ties are resolved by a stable sort over insertion
// order, per spec.md §4.3.
func (e *Engine) resort() {
	for _, el := range e.ordered {
		element.GetOrder(el)
	}
	e.sorted = append([]element.Element(nil), e.ordered...)
	sort.SliceStable(e.sorted, func(i, j int) bool {
		return e.sorted[i].Base().Order() < e.sorted[j].Base().Order()
	})
}

// Update runs exactly one tick: every element's Update is invoked once,
// in ascending update order, given timestamp. With diagnostics enabled
// it also records per-element and whole-tick execution time and the
// gap between successive tick starts.
func (e *Engine) Update(timestamp letime.Time) {
	if e.sorted == nil {
		e.resort()
	}

	start := time.Now()
	if e.diagEnabled && e.havePrevTick {
		e.lastTickNS = start.Sub(e.lastTickAt).Nanoseconds()
	}
	e.lastTickAt = start
	e.havePrevTick = true

	for _, el := range e.sorted {
		if !e.diagEnabled {
			el.Update(timestamp)
			continue
		}
		t0 := time.Now()
		el.Update(timestamp)
		elapsed := time.Since(t0).Nanoseconds()
		slot := e.diag[el]
		slot.lastNanos = elapsed
		slot.totalNanos += elapsed
	}

	if e.diagEnabled {
		e.totalTickNS += time.Since(start).Nanoseconds()
		e.tickCount++
	}
}

// convertFloatingPoint splits num/den into an integer part and a
// milli-fractional part (thousandths), avoiding any floating-point
// arithmetic in the diagnostic printer itself, per spec.md §6.
func convertFloatingPoint(num, den int64) (whole, milli int64) {
	if den == 0 {
		return 0, 0
	}
	scaled := num * 1000 / den
	return scaled / 1000, scaled % 1000
}

// GetInfo renders a human-readable diagnostics snapshot: engine name,
// total CPU percentage (execution time over tick period), tick frequency
// (from the last gap between tick starts), and per-element name/order
// and percentage of the engine's execution time, per spec.md §6.
func (e *Engine) GetInfo() string {
	out := fmt.Sprintf("engine: %s\n", e.name)

	if e.tickCount == 0 || !e.diagEnabled {
		out += "  (no diagnostics sampled yet)\n"
		return out
	}

	avgTickNS := e.totalTickNS / int64(e.tickCount)
	var freqHz int64
	if e.lastTickNS > 0 {
		freqHz = 1_000_000_000 / e.lastTickNS
	}
	cpuWhole, cpuMilli := convertFloatingPoint(100*e.totalTickNS, e.lastTickNS*int64(e.tickCount)+1)

	out += fmt.Sprintf("  tick_count=%d avg_tick_ns=%d freq_hz=%d cpu_total=%d.%03d%%\n",
		e.tickCount, avgTickNS, freqHz, cpuWhole, cpuMilli)

	for _, el := range e.sorted {
		name, _ := e.ElementName(el)
		slot := e.diag[el]
		pctWhole, pctMilli := convertFloatingPoint(100*slot.totalNanos, e.totalTickNS+1)
		out += fmt.Sprintf("  %-8s order=%-4d last_ns=%-8d cpu=%d.%03d%%\n",
			name, el.Base().Order(), slot.lastNanos, pctWhole, pctMilli)
	}
	return out
}

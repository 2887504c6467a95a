// Package element implements the base Element contract shared by every
// computational block in the graph: lifecycle, a name-indexed port
// registry, and the topological update-order walk that the engine uses
// to sequence a tick. Concrete element kinds (AND, Timer, PID, ...) live
// in sibling packages under elements/ and embed Base.
package element

import "fmt"

// Kind enumerates every element type the engine can construct, plus
// Invalid. The numeric bands mirror the grouping the original C++
// library used (node/digital/conversion/arithmetic/protection) since the
// declarative ElementTypeDef wire format and config loader serialize
// this value.
type Kind int16

const (
	Invalid Kind = -1

	// Node elements (0-9): buffering/override elements that bridge ticks.
	NodeDigital Kind = 0
	NodeAnalog  Kind = 1
	NodeComplex Kind = 2

	// Basic digital logic (10-19).
	AND   Kind = 10
	OR    Kind = 11
	NOT   Kind = 12
	RTrig Kind = 13
	FTrig Kind = 14

	// Advanced digital logic (30-49).
	Timer      Kind = 30
	Counter    Kind = 31
	MuxDigital Kind = 32
	MuxAnalog  Kind = 33
	MuxComplex Kind = 34
	SER        Kind = 49

	// Conversions (60-68).
	Rect2Polar    Kind = 60
	Polar2Rect    Kind = 61
	PhasorShift   Kind = 62
	Complex2Rect  Kind = 64
	Complex2Polar Kind = 65
	Rect2Complex  Kind = 66
	Polar2Complex Kind = 67

	// Arithmetic (69-84).
	Add             Kind = 69
	Subtract        Kind = 70
	Multiply        Kind = 71
	Divide          Kind = 72
	Negate          Kind = 73
	Abs             Kind = 74
	AddComplex      Kind = 75
	SubtractComplex Kind = 76
	MultiplyComplex Kind = 77
	DivideComplex   Kind = 78
	NegateComplex   Kind = 79
	Magnitude       Kind = 84

	// Analog processing (80-83).
	Math            Kind = 80
	Analog1PWinding Kind = 81
	Analog3PWinding Kind = 82
	PID             Kind = 83

	// Protection (100+).
	Overcurrent Kind = 100
)

// String renders a Kind by name for diagnostics and config error
// messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int16(k))
}

var kindNames = map[Kind]string{
	Invalid: "Invalid", NodeDigital: "NodeDigital", NodeAnalog: "NodeAnalog", NodeComplex: "NodeComplex",
	AND: "AND", OR: "OR", NOT: "NOT", RTrig: "RTrig", FTrig: "FTrig",
	Timer: "Timer", Counter: "Counter", MuxDigital: "MuxDigital", MuxAnalog: "MuxAnalog", MuxComplex: "MuxComplex", SER: "SER",
	Rect2Polar: "Rect2Polar", Polar2Rect: "Polar2Rect", PhasorShift: "PhasorShift",
	Complex2Rect: "Complex2Rect", Complex2Polar: "Complex2Polar", Rect2Complex: "Rect2Complex", Polar2Complex: "Polar2Complex",
	Add: "Add", Subtract: "Subtract", Multiply: "Multiply", Divide: "Divide", Negate: "Negate", Abs: "Abs",
	AddComplex: "AddComplex", SubtractComplex: "SubtractComplex", MultiplyComplex: "MultiplyComplex",
	DivideComplex: "DivideComplex", NegateComplex: "NegateComplex", Magnitude: "Magnitude",
	Math: "Math", Analog1PWinding: "Analog1PWinding", Analog3PWinding: "Analog3PWinding", PID: "PID",
	Overcurrent: "Overcurrent",
}

// ParseKind resolves a config-file/command-protocol type name to a Kind.
// Unknown names return (Invalid, false), mirroring spec.md §7's
// ConstructionError policy.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return Invalid, false
}

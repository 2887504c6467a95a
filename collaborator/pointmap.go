package collaborator

import (
	"fmt"
	"sync"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/port"
)

// PointKind distinguishes the point classes a DNP3 (or similar SCADA
// protocol) outstation exposes: binary and analog inputs are read from
// the graph, binary and analog outputs are written into it. PointMap
// accepts bindings of every kind but only reads BinaryInput and
// AnalogInput points; it has no method that writes an output point.
type PointKind uint8

const (
	BinaryInput PointKind = iota
	AnalogInput
	BinaryOutput
	AnalogOutput
)

// Point binds one externally-numbered protocol index to a named port
// on a named element.
type Point struct {
	Index   uint16
	Kind    PointKind
	Element string
	Port    string
}

// PointMap is the generalized shape a DNP3 (or similar outstation)
// point map takes: a flat index space per point kind, each index bound
// to one graph port. This package implements the map itself; wiring it
// to an actual DNP3 stack is out of scope per spec.md §1.
type PointMap struct {
	mu  sync.RWMutex
	eng interface {
		Element(name string) (element.Element, bool)
	}
	points map[PointKind]map[uint16]Point
}

// NewPointMap constructs an empty PointMap bound to an engine-shaped
// element lookup.
func NewPointMap(eng interface {
	Element(name string) (element.Element, bool)
}) *PointMap {
	return &PointMap{
		eng: eng,
		points: map[PointKind]map[uint16]Point{
			BinaryInput:  {},
			AnalogInput:  {},
			BinaryOutput: {},
			AnalogOutput: {},
		},
	}
}

// Bind registers index within kind's index space to the named
// element/port.
func (m *PointMap) Bind(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[p.Kind][p.Index] = p
}

// PointNotBoundError reports a read/write against an index with no
// registered binding.
type PointNotBoundError struct {
	Kind  PointKind
	Index uint16
}

func (e PointNotBoundError) Error() string {
	return fmt.Sprintf("collaborator: no point bound for kind=%d index=%d", e.Kind, e.Index)
}

// ReadBinary returns the current value of a BinaryInput point.
func (m *PointMap) ReadBinary(index uint16) (bool, error) {
	p, el, err := m.resolve(BinaryInput, index)
	if err != nil {
		return false, err
	}
	out, ok := el.Base().OutputPort(p.Port)
	if !ok {
		return false, ChannelNotFoundError{Name: p.Port}
	}
	o, ok := out.(*port.Output[bool])
	if !ok {
		return false, fmt.Errorf("collaborator: point %d is not a digital output", index)
	}
	return o.Value(), nil
}

// ReadAnalog returns the current value of an AnalogInput point.
func (m *PointMap) ReadAnalog(index uint16) (float32, error) {
	p, el, err := m.resolve(AnalogInput, index)
	if err != nil {
		return 0, err
	}
	out, ok := el.Base().OutputPort(p.Port)
	if !ok {
		return 0, ChannelNotFoundError{Name: p.Port}
	}
	o, ok := out.(*port.Output[float32])
	if !ok {
		return 0, fmt.Errorf("collaborator: point %d is not an analog output", index)
	}
	return o.Value(), nil
}

func (m *PointMap) resolve(kind PointKind, index uint16) (Point, element.Element, error) {
	m.mu.RLock()
	p, ok := m.points[kind][index]
	m.mu.RUnlock()
	if !ok {
		return Point{}, nil, PointNotBoundError{Kind: kind, Index: index}
	}
	el, ok := m.eng.Element(p.Element)
	if !ok {
		return Point{}, nil, ChannelNotFoundError{Name: p.Element}
	}
	return p, el, nil
}

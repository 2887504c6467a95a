// Package collaborator implements the external-facing adapters that
// spec.md §1/§6 places deliberately outside the graph execution core:
// a Board abstraction over physical digital/analog I/O, and the ASCII
// line command protocol served over TCP or serial. Both talk to an
// engine.Engine through its named elements (Node values and overrides,
// element output ports, the diagnostics snapshot), between ticks, per the
// concurrency discipline of spec.md §5.
package collaborator

import (
	"fmt"
	"sync"

	"github.com/tannerhollis/legraph/elements/node"
	"github.com/tannerhollis/legraph/engine"
	"github.com/tannerhollis/legraph/letime"
)

// Board is the physical I/O abstraction of spec.md §1's "Board"
// collaborator: named digital/analog channels bound to an attached
// engine's Node elements.
type Board interface {
	AttachEngine(e *engine.Engine)
	Update(t letime.Time)
	ReadDigitalInput(name string) (bool, error)
	WriteDigitalOutput(name string, value bool) error
	ReadAnalogInput(name string) (float32, error)
	GetInfo() string
}

// ChannelNotFoundError reports that a Board I/O channel name has no
// matching Node bound to it.
type ChannelNotFoundError struct {
	Name string
}

func (e ChannelNotFoundError) Error() string {
	return fmt.Sprintf("collaborator: no board channel named %q", e.Name)
}

// MemoryBoard is a reference Board implementation with no physical I/O:
// digital inputs/outputs and analog inputs are plain in-memory channels
// bound by name to NodeDigital/NodeAnalog elements on the attached
// engine. It exists to exercise the Board contract in tests; `cmd/legraph`
// does not construct a Board.
type MemoryBoard struct {
	deviceName, devicePN string

	mu      sync.Mutex
	engine  *engine.Engine
	digIn   map[string]*node.Node[bool]
	digOut  map[string]*node.Node[bool]
	analogI map[string]*node.Node[float32]
}

// NewMemoryBoard constructs an empty MemoryBoard.
func NewMemoryBoard(deviceName, devicePN string) *MemoryBoard {
	return &MemoryBoard{
		deviceName: deviceName,
		devicePN:   devicePN,
		digIn:      make(map[string]*node.Node[bool]),
		digOut:     make(map[string]*node.Node[bool]),
		analogI:    make(map[string]*node.Node[float32]),
	}
}

// BindDigitalInput, BindDigitalOutput, and BindAnalogInput register a
// named channel backed by a NodeDigital/NodeAnalog element already
// present on the board's attached engine.
func (b *MemoryBoard) BindDigitalInput(name string, n *node.Node[bool]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.digIn[name] = n
}

func (b *MemoryBoard) BindDigitalOutput(name string, n *node.Node[bool]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.digOut[name] = n
}

func (b *MemoryBoard) BindAnalogInput(name string, n *node.Node[float32]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analogI[name] = n
}

// AttachEngine implements Board.
func (b *MemoryBoard) AttachEngine(e *engine.Engine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine = e
}

// Update implements Board. A MemoryBoard has no physical sampling to
// perform; Update exists so callers can drive Board and Engine from a
// single loop uniformly across Board implementations.
func (b *MemoryBoard) Update(letime.Time) {}

// ReadDigitalInput implements Board.
func (b *MemoryBoard) ReadDigitalInput(name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.digIn[name]
	if !ok {
		return false, ChannelNotFoundError{Name: name}
	}
	return n.Value(), nil
}

// WriteDigitalOutput implements Board: it writes the named output
// Node's value with a direct SetValue rather than a timed override. The
// written value stands until that Node's next Update.
func (b *MemoryBoard) WriteDigitalOutput(name string, value bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.digOut[name]
	if !ok {
		return ChannelNotFoundError{Name: name}
	}
	n.SetValue(value)
	return nil
}

// ReadAnalogInput implements Board.
func (b *MemoryBoard) ReadAnalogInput(name string) (float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.analogI[name]
	if !ok {
		return 0, ChannelNotFoundError{Name: name}
	}
	return n.Value(), nil
}

// GetInfo implements Board.
func (b *MemoryBoard) GetInfo() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("board: %s (%s) digital_in=%d digital_out=%d analog_in=%d",
		b.deviceName, b.devicePN, len(b.digIn), len(b.digOut), len(b.analogI))
}

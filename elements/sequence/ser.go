package sequence

import (
	"fmt"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/letime"
	"github.com/tannerhollis/legraph/port"
)

// EdgeKind distinguishes a rising transition from a falling one in an
// SER event record.
type EdgeKind uint8

const (
	RisingEdge EdgeKind = iota
	FallingEdge
)

func (k EdgeKind) String() string {
	if k == RisingEdge {
		return "RisingEdge"
	}
	return "FallingEdge"
}

// Event is one timestamped transition recorded by an SER.
type Event struct {
	SourceIndex int
	Kind        EdgeKind
	Time        letime.Time
}

// maxSEREvents bounds the event ring per spec.md §4.4.
const maxSEREvents = 1000

// SER (Sequence of Events Recorder) watches n digital inputs and appends
// a timestamped Event to a bounded ring whenever one of them transitions.
// It has no outputs; events are drained by ReadEvents/DropOldest.
type SER struct {
	element.Base
	ins  []*port.Input[bool]
	prev []bool

	ring  []Event
	count int // number of valid events currently in the ring
	head  int // index of the oldest event
}

// NewSER constructs an SER watching n digital inputs named in_0..in_{n-1}.
func NewSER(n int) *SER {
	if n < 1 {
		n = 1
	}
	e := &SER{Base: element.NewBase(element.SER)}
	e.ins = make([]*port.Input[bool], n)
	e.prev = make([]bool, n)
	for i := range e.ins {
		e.ins[i] = element.AddInput[bool](&e.Base, fmt.Sprintf("in_%d", i), port.Digital, e)
	}
	e.ring = make([]Event, maxSEREvents)
	return e
}

// Update implements element.Element. Per spec.md §7 StateLimit: once the
// ring is full, further transitions are silently dropped until
// DropOldest frees space — the engine never aborts a tick for this.
func (e *SER) Update(t letime.Time) {
	for i, in := range e.ins {
		cur := in.Get()
		if cur == e.prev[i] {
			continue
		}
		kind := FallingEdge
		if cur {
			kind = RisingEdge
		}
		e.append(Event{SourceIndex: i, Kind: kind, Time: t})
		e.prev[i] = cur
	}
}

func (e *SER) append(ev Event) {
	if e.count >= len(e.ring) {
		return
	}
	idx := (e.head + e.count) % len(e.ring)
	e.ring[idx] = ev
	e.count++
}

// ReadEvents returns a copy of up to max oldest events currently
// buffered, oldest first.
func (e *SER) ReadEvents(max int) []Event {
	n := e.count
	if max < n {
		n = max
	}
	out := make([]Event, n)
	for i := 0; i < n; i++ {
		out[i] = e.ring[(e.head+i)%len(e.ring)]
	}
	return out
}

// DropOldest discards the k oldest buffered events (clamped to the
// number currently present), freeing ring space.
func (e *SER) DropOldest(k int) {
	if k > e.count {
		k = e.count
	}
	e.head = (e.head + k) % len(e.ring)
	e.count -= k
}

// EventCount returns the number of events currently buffered.
func (e *SER) EventCount() int { return e.count }

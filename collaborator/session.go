package collaborator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tannerhollis/legraph/elements/node"
	"github.com/tannerhollis/legraph/elements/sequence"
	"github.com/tannerhollis/legraph/engine"
	"github.com/tannerhollis/legraph/port"
)

// session holds the per-connection state the ASCII command protocol
// needs: the engine it queries/mutates, and an interrupted callback that
// TARGET polls before each sample and stops sampling once it reports
// true.
type session struct {
	id          string
	eng         *engine.Engine
	interrupted func() bool
}

func newSession(id string, eng *engine.Engine, interrupted func() bool) *session {
	if interrupted == nil {
		interrupted = func() bool { return false }
	}
	return &session{id: id, eng: eng, interrupted: interrupted}
}

// handleLine parses one request line and returns the frames to send
// back, per spec.md §6's command keyword set.
func (s *session) handleLine(line string) []Frame {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return []Frame{badFrame("empty request")}
	}
	cmd := strings.ToUpper(fields[0])
	args := fields[1:]

	switch cmd {
	case "ECHO":
		return splitFrames(strings.Join(args, " "))
	case "ID":
		return splitFrames(s.id)
	case "STATUS", "STA":
		return splitFrames(s.eng.GetInfo())
	case "TARGET":
		return s.handleTarget(args)
	case "PULSE":
		return s.handlePulse(args)
	case "SER":
		return s.handleSER(args)
	default:
		return []Frame{badFrame(fmt.Sprintf("unknown command %q", fields[0]))}
	}
}

// handleTarget implements `TARGET <elementName> <outputSlot>
// [<repetition=1> [<delayMs=1000>]]`: samples the named output once
// per repetition, spaced delayMs apart, and returns all samples at once,
// joined by commas into one body that splitFrames cuts into
// maxPayload-sized Partial frames followed by one Complete frame.
func (s *session) handleTarget(args []string) []Frame {
	if len(args) < 2 {
		return []Frame{badFrame("usage: TARGET <element> <outputSlot> [repetition] [delayMs]")}
	}
	elName, portName := args[0], args[1]
	repetition := 1
	delayMs := 1000
	if len(args) >= 3 {
		if v, err := strconv.Atoi(args[2]); err == nil {
			repetition = v
		}
	}
	if len(args) >= 4 {
		if v, err := strconv.Atoi(args[3]); err == nil {
			delayMs = v
		}
	}

	el, ok := s.eng.Element(elName)
	if !ok {
		return []Frame{badFrame(fmt.Sprintf("no such element %q", elName))}
	}
	p, ok := el.Base().OutputPort(portName)
	if !ok {
		return []Frame{badFrame(fmt.Sprintf("no such output port %q on %q", portName, elName))}
	}

	var samples []string
	for i := 0; i < repetition; i++ {
		if s.interrupted() {
			break
		}
		v, err := formatPortValue(p)
		if err != nil {
			return []Frame{badFrame(err.Error())}
		}
		samples = append(samples, v)
		if i < repetition-1 && delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
	}
	return splitFrames(strings.Join(samples, ","))
}

// handlePulse implements `PULSE <elementName> <value> [<duration=1.0>]`:
// drives a time-bounded override into the named Node, per spec.md §4.5.
func (s *session) handlePulse(args []string) []Frame {
	if len(args) < 2 {
		return []Frame{badFrame("usage: PULSE <element> <value> [duration]")}
	}
	elName, valueStr := args[0], args[1]
	duration := 1.0
	if len(args) >= 3 {
		if v, err := strconv.ParseFloat(args[2], 64); err == nil {
			duration = v
		}
	}

	el, ok := s.eng.Element(elName)
	if !ok {
		return []Frame{badFrame(fmt.Sprintf("no such element %q", elName))}
	}

	switch n := el.(type) {
	case *node.Node[bool]:
		v, err := strconv.ParseBool(valueStr)
		if err != nil {
			return []Frame{badFrame("value is not a valid bool")}
		}
		n.OverrideValue(v, duration)
	case *node.Node[float32]:
		v, err := strconv.ParseFloat(valueStr, 32)
		if err != nil {
			return []Frame{badFrame("value is not a valid float")}
		}
		n.OverrideValue(float32(v), duration)
	default:
		return []Frame{badFrame(fmt.Sprintf("%q is not a pulsable Node", elName))}
	}
	return splitFrames("OK")
}

// handleSER implements `SER <elementName> <count>`: drains up to count
// oldest events from the named SER element.
func (s *session) handleSER(args []string) []Frame {
	if len(args) < 2 {
		return []Frame{badFrame("usage: SER <element> <count>")}
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return []Frame{badFrame("count is not a valid integer")}
	}

	el, ok := s.eng.Element(args[0])
	if !ok {
		return []Frame{badFrame(fmt.Sprintf("no such element %q", args[0]))}
	}
	ser, ok := el.(*sequence.SER)
	if !ok {
		return []Frame{badFrame(fmt.Sprintf("%q is not an SER", args[0]))}
	}

	events := ser.ReadEvents(count)
	var parts []string
	for _, ev := range events {
		parts = append(parts, fmt.Sprintf("%d:%s:%s", ev.SourceIndex, ev.Kind, ev.Time))
	}
	ser.DropOldest(len(events))
	return splitFrames(strings.Join(parts, ";"))
}

// formatPortValue renders a type-erased output port's current value as
// text, dispatching on the concrete Output[T] the port actually is.
func formatPortValue(p port.Port) (string, error) {
	switch o := p.(type) {
	case *port.Output[bool]:
		return strconv.FormatBool(o.Value()), nil
	case *port.Output[float32]:
		return strconv.FormatFloat(float64(o.Value()), 'g', -1, 32), nil
	case *port.Output[complex64]:
		v := o.Value()
		return fmt.Sprintf("%g%+gi", real(v), imag(v)), nil
	default:
		return "", fmt.Errorf("collaborator: unrecognized port value type for %q", p.Name())
	}
}

package collaborator

import (
	"strings"
	"testing"

	"github.com/tannerhollis/legraph/elements/node"
	"github.com/tannerhollis/legraph/elements/sequence"
	"github.com/tannerhollis/legraph/engine"
	"github.com/tannerhollis/legraph/letime"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New("test", 4)
	if _, err := eng.AddElement(engine.ElementTypeDef{Name: "an1", Type: "NodeAnalog"}); err != nil {
		t.Fatalf("add NodeAnalog: %v", err)
	}
	if _, err := eng.AddElement(engine.ElementTypeDef{Name: "dig1", Type: "NodeDigital"}); err != nil {
		t.Fatalf("add NodeDigital: %v", err)
	}
	if _, err := eng.AddElement(engine.ElementTypeDef{
		Name: "ser1", Type: "SER", Args: []engine.Arg{engine.UintArg(1)},
	}); err != nil {
		t.Fatalf("add SER: %v", err)
	}
	eng.Update(letime.FromSeconds(0))
	return eng
}

func TestHandleLineEchoAndID(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)

	frames := s.handleLine("ECHO hello world")
	if len(frames) != 1 || frames[0].Payload != "hello world" {
		t.Fatalf("unexpected ECHO frames: %+v", frames)
	}

	frames = s.handleLine("ID")
	if len(frames) != 1 || frames[0].Payload != "conn-1" {
		t.Fatalf("unexpected ID frames: %+v", frames)
	}
}

func TestHandleLineStatus(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handleLine("STATUS")
	if len(frames) != 1 || !strings.Contains(frames[0].Payload, "engine: test") {
		t.Fatalf("unexpected STATUS frames: %+v", frames)
	}
}

func TestHandleLineUnknownCommand(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handleLine("BOGUS")
	if len(frames) != 1 || !frames[0].Bad {
		t.Fatalf("expected a bad frame, got %+v", frames)
	}
}

func TestHandleTargetSamplesOutput(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handleTarget([]string{"an1", "output", "1", "0"})
	if len(frames) != 1 || frames[0].Category != CompleteResponse {
		t.Fatalf("unexpected TARGET frames: %+v", frames)
	}
	if frames[0].Payload != "0" {
		t.Fatalf("expected initial analog value 0, got %q", frames[0].Payload)
	}
}

func TestHandleTargetUnknownElement(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handleTarget([]string{"nope", "output"})
	if len(frames) != 1 || !frames[0].Bad {
		t.Fatalf("expected bad frame for unknown element, got %+v", frames)
	}
}

func TestHandleTargetInterrupted(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, func() bool { return true })
	frames := s.handleTarget([]string{"an1", "output", "5", "0"})
	if len(frames) != 1 {
		t.Fatalf("expected a single trailing frame, got %+v", frames)
	}
	if frames[0].Payload != "" {
		t.Fatalf("expected no samples once interrupted immediately, got %q", frames[0].Payload)
	}
}

func TestHandlePulseDigitalNode(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handlePulse([]string{"dig1", "true", "0.01"})
	if len(frames) != 1 || frames[0].Bad || frames[0].Payload != "OK" {
		t.Fatalf("unexpected PULSE frames: %+v", frames)
	}
}

func TestHandlePulseBadValue(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handlePulse([]string{"dig1", "notabool"})
	if len(frames) != 1 || !frames[0].Bad {
		t.Fatalf("expected bad frame, got %+v", frames)
	}
}

func TestHandleSERDrainsEvents(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)

	el, ok := eng.Element("dig1")
	if !ok {
		t.Fatal("dig1 not found")
	}
	serEl, ok := eng.Element("ser1")
	if !ok {
		t.Fatal("ser1 not found")
	}
	if errs := eng.AddNet(engine.NetDef{
		Output: engine.PortRef{Element: "dig1", Port: "output"},
		Inputs: []engine.PortRef{{Element: "ser1", Port: "in_0"}},
	}); len(errs) != 0 {
		t.Fatalf("wire dig1 -> ser1: %v", errs)
	}
	el.(*node.Node[bool]).OverrideValue(true, 10)
	eng.Update(letime.FromSeconds(0.01))

	frames := s.handleSER([]string{"ser1", "10"})
	if len(frames) != 1 || frames[0].Bad {
		t.Fatalf("unexpected SER frames: %+v", frames)
	}
	if !strings.Contains(frames[0].Payload, "RisingEdge") {
		t.Fatalf("expected a RisingEdge event in %q", frames[0].Payload)
	}
	if n := serEl.(*sequence.SER).EventCount(); n != 0 {
		t.Fatalf("EventCount() after SER drain = %d, want 0", n)
	}
}

func TestHandleSERNotAnSER(t *testing.T) {
	eng := newTestEngine(t)
	s := newSession("conn-1", eng, nil)
	frames := s.handleSER([]string{"an1", "10"})
	if len(frames) != 1 || !frames[0].Bad {
		t.Fatalf("expected bad frame, got %+v", frames)
	}
}

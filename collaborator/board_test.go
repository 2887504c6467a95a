package collaborator

import (
	"testing"

	"github.com/tannerhollis/legraph/element"
	"github.com/tannerhollis/legraph/elements/node"
	"github.com/tannerhollis/legraph/port"
)

func TestMemoryBoardDigitalRoundTrip(t *testing.T) {
	b := NewMemoryBoard("dev0", "PN-1")
	out := node.New[bool](element.NodeDigital, port.Digital, 1)
	b.BindDigitalOutput("relay1", out)

	if err := b.WriteDigitalOutput("relay1", true); err != nil {
		t.Fatalf("WriteDigitalOutput: %v", err)
	}
	if v := out.Value(); !v {
		t.Fatalf("expected relay1 value true, got %v", v)
	}
}

func TestMemoryBoardUnknownChannel(t *testing.T) {
	b := NewMemoryBoard("dev0", "PN-1")
	if _, err := b.ReadDigitalInput("nope"); err == nil {
		t.Fatal("expected ChannelNotFoundError")
	}
	if err := b.WriteDigitalOutput("nope", true); err == nil {
		t.Fatal("expected ChannelNotFoundError")
	}
	if _, err := b.ReadAnalogInput("nope"); err == nil {
		t.Fatal("expected ChannelNotFoundError")
	}
}

func TestMemoryBoardGetInfo(t *testing.T) {
	b := NewMemoryBoard("dev0", "PN-1")
	b.BindDigitalInput("in1", node.New[bool](element.NodeDigital, port.Digital, 1))
	b.BindAnalogInput("an1", node.New[float32](element.NodeAnalog, port.Analog, 1))
	info := b.GetInfo()
	if info == "" {
		t.Fatal("expected non-empty info string")
	}
}

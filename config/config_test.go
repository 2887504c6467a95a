package config

import (
	"strings"
	"testing"

	deep "github.com/go-test/deep"
)

const sampleYAML = `
name: test-graph
default_node_history: 4
elements:
  - name: src
    type: NodeDigital
  - name: gate1
    type: NOT
  - name: cnt1
    type: Counter
    args:
      - kind: uint
        uint: 8
nets:
  - output: src.output
    inputs:
      - gate1.input
`

func TestParseDecodesDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Document{
		Name:               "test-graph",
		DefaultNodeHistory: 4,
		Elements: []elementDoc{
			{Name: "src", Type: "NodeDigital"},
			{Name: "gate1", Type: "NOT"},
			{Name: "cnt1", Type: "Counter", Args: []argDoc{{Kind: "uint", Uint: 8}}},
		},
		Nets: []netDoc{
			{Output: "src.output", Inputs: []portRefDoc{"gate1.input"}},
		},
	}
	if diff := deep.Equal(doc, want); diff != nil {
		t.Fatalf("parsed document mismatch: %v", diff)
	}
}

func TestBuildConstructsEngineAndWires(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	eng, errs := Build(doc)
	if len(errs) != 0 {
		t.Fatalf("Build errors: %v", errs)
	}
	if _, ok := eng.Element("src"); !ok {
		t.Fatal("expected element src")
	}
	if _, ok := eng.Element("gate1"); !ok {
		t.Fatal("expected element gate1")
	}
	if _, ok := eng.Element("cnt1"); !ok {
		t.Fatal("expected element cnt1")
	}
}

func TestBuildReportsUnknownElementType(t *testing.T) {
	doc := &Document{
		Name: "bad",
		Elements: []elementDoc{
			{Name: "x", Type: "NoSuchType"},
		},
	}
	_, errs := Build(doc)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestSplitRefRejectsMissingDot(t *testing.T) {
	p := portRefDoc("noDot")
	if _, err := p.toPortRef(); err == nil {
		t.Fatal("expected error for malformed port reference")
	}
}

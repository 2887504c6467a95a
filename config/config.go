// Package config loads the declarative element/net definitions of
// spec.md §6 from a YAML document and applies them to an engine.Engine,
// the way the original library's configuration file loader builds a
// graph before the first tick.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tannerhollis/legraph/engine"
)

// argDoc is the YAML shape of one engine.Arg: exactly one of the typed
// fields is populated, selected by kind.
type argDoc struct {
	Kind  string  `yaml:"kind"`
	Str   string  `yaml:"str,omitempty"`
	Float float32 `yaml:"float,omitempty"`
	Uint  uint16  `yaml:"uint,omitempty"`
	Bool  bool    `yaml:"bool,omitempty"`
}

func (a argDoc) toArg() (engine.Arg, error) {
	switch a.Kind {
	case "string":
		return engine.StringArg(a.Str), nil
	case "float":
		return engine.FloatArg(a.Float), nil
	case "uint":
		return engine.UintArg(a.Uint), nil
	case "bool":
		return engine.BoolArg(a.Bool), nil
	default:
		return engine.Arg{}, fmt.Errorf("config: unknown arg kind %q", a.Kind)
	}
}

// elementDoc is the YAML shape of one engine.ElementTypeDef.
type elementDoc struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
	Args []argDoc `yaml:"args,omitempty"`
}

// portRefDoc is the YAML shape of one engine.PortRef: "element.port".
type portRefDoc string

func (p portRefDoc) toPortRef() (engine.PortRef, error) {
	elName, portName, ok := splitRef(string(p))
	if !ok {
		return engine.PortRef{}, fmt.Errorf("config: malformed port reference %q, want \"element.port\"", p)
	}
	return engine.PortRef{Element: elName, Port: portName}, nil
}

func splitRef(s string) (elName, portName string, ok bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// netDoc is the YAML shape of one engine.NetDef.
type netDoc struct {
	Output portRefDoc   `yaml:"output"`
	Inputs []portRefDoc `yaml:"inputs"`
}

// Document is the top-level YAML shape of a graph config file.
type Document struct {
	Name               string       `yaml:"name"`
	DefaultNodeHistory  uint16       `yaml:"default_node_history"`
	Elements           []elementDoc `yaml:"elements"`
	Nets               []netDoc     `yaml:"nets"`
}

// Parse decodes a YAML document into a Document without applying it to
// any engine.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &doc, nil
}

// Build constructs a new Engine from doc: every element definition is
// added first, then every net is wired, mirroring spec.md §6's two-pass
// construction (elements must exist before a net can reference them).
// Net wiring errors are collected and returned together rather than
// aborting after the first bad reference, matching engine.AddNet's own
// skip-and-report policy.
func Build(doc *Document) (*engine.Engine, []error) {
	eng := engine.New(doc.Name, doc.DefaultNodeHistory)
	var errs []error

	for _, ed := range doc.Elements {
		args := make([]engine.Arg, 0, len(ed.Args))
		for _, a := range ed.Args {
			arg, err := a.toArg()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			args = append(args, arg)
		}
		if _, err := eng.AddElement(engine.ElementTypeDef{Name: ed.Name, Type: ed.Type, Args: args}); err != nil {
			errs = append(errs, err)
		}
	}

	for _, nd := range doc.Nets {
		out, err := nd.Output.toPortRef()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var ins []engine.PortRef
		for _, in := range nd.Inputs {
			ref, err := in.toPortRef()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			ins = append(ins, ref)
		}
		errs = append(errs, eng.AddNet(engine.NetDef{Output: out, Inputs: ins})...)
	}

	return eng, errs
}

// Load is the convenience entry point `cmd/legraph` uses: parse then
// build in one step.
func Load(r io.Reader) (*engine.Engine, []error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, []error{err}
	}
	return Build(doc)
}

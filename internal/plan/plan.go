// Package plan loads YAML link plans and applies them to a PipeWire
// session.
//
// A plan lists links by endpoint. Endpoints are either numeric global ids
// or a "node.name:port.name" string resolved against the registry:
//
//	passive: true
//	links:
//	  - output: {node: 42, port: 57}
//	    input: {node: 48, port: 61}
//	  - output: "alsa_input.usb:capture_FL"
//	    input: "recorder:input_FL"
package plan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thesyncim/pipewire"
)

// Endpoint is one side of a link.
type Endpoint struct {
	Node uint32 `yaml:"node"`
	Port uint32 `yaml:"port"`
	// Name is "node.name:port.name"; it takes precedence over the ids.
	Name string `yaml:"name"`
}

// UnmarshalYAML accepts either a mapping or a "node:port" scalar.
func (e *Endpoint) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Name = value.Value
		return nil
	}
	type raw Endpoint
	return value.Decode((*raw)(e))
}

func (e Endpoint) String() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("%d:%d", e.Node, e.Port)
}

// split returns the node and port names of a named endpoint.
func (e Endpoint) split() (node, port string, ok bool) {
	i := strings.LastIndexByte(e.Name, ':')
	if i <= 0 || i == len(e.Name)-1 {
		return "", "", false
	}
	return e.Name[:i], e.Name[i+1:], true
}

func (e Endpoint) validate() error {
	if e.Name != "" {
		if _, _, ok := e.split(); !ok {
			return fmt.Errorf("endpoint %q: want node:port", e.Name)
		}
		return nil
	}
	if e.Node == 0 || e.Port == 0 {
		return fmt.Errorf("endpoint %s: node and port ids are required", e)
	}
	return nil
}

// Link connects an output endpoint to an input endpoint.
type Link struct {
	Output Endpoint `yaml:"output"`
	Input  Endpoint `yaml:"input"`
}

func (l Link) String() string { return l.Output.String() + " -> " + l.Input.String() }

// Plan is a set of links to create.
type Plan struct {
	// Passive overrides the link.passive setting when present.
	Passive *bool  `yaml:"passive"`
	Links   []Link `yaml:"links"`
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every endpoint of the plan.
func (p *Plan) Validate() error {
	var errs []error
	for i, l := range p.Links {
		if err := l.Output.validate(); err != nil {
			errs = append(errs, fmt.Errorf("link %d output: %w", i, err))
		}
		if err := l.Input.validate(); err != nil {
			errs = append(errs, fmt.Errorf("link %d input: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Linker creates links between resolved port ids.
type Linker interface {
	CreateLink(outNode, outPort, inNode, inPort uint32) error
}

// Resolver resolves named endpoints.
type Resolver interface {
	FindPort(nodeName, portName string, dir pipewire.Direction) (nodeID, portID uint32, err error)
}

// Apply creates every link of the plan. It keeps going after a failure and
// returns the number of links created with the joined errors.
func (p *Plan) Apply(linker Linker, resolver Resolver) (int, error) {
	var (
		created int
		errs    []error
	)
	for _, l := range p.Links {
		outNode, outPort, err := resolve(resolver, l.Output, pipewire.DirectionOutput)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l, err))
			continue
		}
		inNode, inPort, err := resolve(resolver, l.Input, pipewire.DirectionInput)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l, err))
			continue
		}
		if err := linker.CreateLink(outNode, outPort, inNode, inPort); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l, err))
			continue
		}
		created++
	}
	return created, errors.Join(errs...)
}

func resolve(r Resolver, e Endpoint, dir pipewire.Direction) (uint32, uint32, error) {
	if e.Name == "" {
		return e.Node, e.Port, nil
	}
	node, port, ok := e.split()
	if !ok {
		return 0, 0, fmt.Errorf("endpoint %q: want node:port", e.Name)
	}
	if r == nil {
		return 0, 0, fmt.Errorf("endpoint %q: no resolver", e.Name)
	}
	return r.FindPort(node, port, dir)
}

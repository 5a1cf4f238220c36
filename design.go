// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Pin names used by Design. They match the handle names of the web editor.
//
const (
	PinOut = "output"
	PinIn  = "input"
)

// InputPin returns the name of the i-th input pin (0 based) of a node of kind k.
// Single input kinds have a single pin named PinIn.
//
func InputPin(k Kind, i int) string {
	if k.MaxInputs() == 1 {
		return PinIn
	}
	return PinIn + "-" + strconv.Itoa(i+1)
}

// A Part describes one node of a circuit together with the nodes feeding it.
//
type Part struct {
	ID    string
	Kind  Kind
	State bool
	Label string
	// Comma separated list of source node IDs. See ParseSources.
	Sources string
}

// NewPart returns a Part of kind k fed by the given sources.
//
func (k Kind) NewPart(id, sources string) Part {
	return Part{ID: id, Kind: k, Sources: sources}
}

// WithLabel returns a copy of p with its Label set.
//
func (p Part) WithLabel(label string) Part {
	p.Label = label
	return p
}

// Parts is a list of parts.
//
type Parts []Part

// Circuit is a named circuit snapshot: a node set and the wires between them.
//
type Circuit struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Design builds a circuit from a list of parts. Wires are created for each
// source of each part, in order, from the source's PinOut pin to the target's
// InputPin. Parts without a Label are labelled with their ID. Nodes are laid
// out on a coarse grid, one column per logic level.
//
// A half adder could be built like this:
//
//	c, err := Design("half-adder", Parts{
//		Input.NewPart("a", ""),
//		Input.NewPart("b", ""),
//		Xor.NewPart("sum", "a, b"),
//		And.NewPart("carry", "a, b"),
//		Output.NewPart("s", "sum"),
//		Output.NewPart("c", "carry"),
//	})
//
// Design rejects duplicate or malformed IDs, unknown kinds, unknown sources,
// sources on an INPUT, OUTPUT nodes used as sources and more sources than a
// NOT or OUTPUT accepts. Gates with no source are valid and evaluate to false.
//
func Design(name string, parts Parts) (*Circuit, error) {
	c := &Circuit{
		Name:  name,
		Nodes: make([]Node, 0, len(parts)),
	}
	kinds := make(map[string]Kind, len(parts))
	for _, p := range parts {
		if !ValidID(p.ID) {
			return nil, errors.Errorf("%s: invalid part ID %q", name, p.ID)
		}
		if !p.Kind.Valid() {
			return nil, errors.Errorf("%s: part %s has invalid kind %v", name, p.ID, p.Kind)
		}
		if _, ok := kinds[p.ID]; ok {
			return nil, errors.Errorf("%s: duplicate part ID %s", name, p.ID)
		}
		kinds[p.ID] = p.Kind
	}

	col := make(map[string]int, len(parts))
	for _, p := range parts {
		srcs, err := ParseSources(p.Sources)
		if err != nil {
			return nil, errors.Wrap(err, name+": "+p.ID)
		}
		if limit := p.Kind.MaxInputs(); limit >= 0 && len(srcs) > limit {
			return nil, errors.Errorf("%s: %s %s accepts at most %d source(s), got %d", name, p.Kind, p.ID, limit, len(srcs))
		}
		x := 0
		for i, s := range srcs {
			k, ok := kinds[s]
			if !ok {
				return nil, errors.Errorf("%s: source %s of %s not found", name, s, p.ID)
			}
			if k == Output {
				return nil, errors.Errorf("%s: OUTPUT %s cannot drive %s", name, s, p.ID)
			}
			if cx, ok := col[s]; ok && cx >= x {
				x = cx + 1
			}
			c.Edges = append(c.Edges, Edge{
				ID:        "e" + strconv.Itoa(len(c.Edges)+1),
				Source:    s,
				SourcePin: PinOut,
				Target:    p.ID,
				TargetPin: InputPin(p.Kind, i),
			})
		}
		col[p.ID] = x
		label := p.Label
		if label == "" {
			label = p.ID
		}
		c.Nodes = append(c.Nodes, Node{
			ID:    p.ID,
			Kind:  p.Kind,
			State: p.Kind == Input && p.State,
			Label: label,
			X:     float64(100 + 200*x),
			Y:     float64(100 + 100*countColumn(col, x, p.ID)),
		})
	}
	return c, nil
}

// countColumn returns how many parts other than id already sit in column x.
func countColumn(col map[string]int, x int, id string) int {
	n := 0
	for k, v := range col {
		if v == x && k != id {
			n++
		}
	}
	return n
}

// Evaluate runs an evaluation pass and replaces c.Nodes with the result.
//
func (c *Circuit) Evaluate() *Result {
	r := Build(c.Nodes, c.Edges).Evaluate()
	c.Nodes = r.Nodes
	return r
}

// Clone returns a deep copy of c.
//
func (c *Circuit) Clone() *Circuit {
	return &Circuit{
		Name:  c.Name,
		Nodes: CloneNodes(c.Nodes),
		Edges: CloneEdges(c.Edges),
	}
}

// Inputs returns the IDs of the INPUT nodes in c, in node order.
//
func (c *Circuit) Inputs() []string { return idsOf(c.Nodes, Input) }

// Outputs returns the IDs of the OUTPUT nodes in c, in node order.
//
func (c *Circuit) Outputs() []string { return idsOf(c.Nodes, Output) }

func idsOf(ns []Node, k Kind) []string {
	var ids []string
	for i := range ns {
		if ns[i].Kind == k {
			ids = append(ids, ns[i].ID)
		}
	}
	return ids
}

// State returns the state of node id.
//
func (c *Circuit) State(id string) (state bool, ok bool) {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return c.Nodes[i].State, true
		}
	}
	return false, false
}

// Set sets the state of the INPUT node id. It does not re-evaluate c.
//
func (c *Circuit) Set(id string, state bool) error {
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if n.ID != id {
			continue
		}
		if n.Kind != Input {
			return errors.Errorf("%s: node %s is a %s, not an INPUT", c.Name, id, n.Kind)
		}
		n.State = state
		return nil
	}
	return errors.Errorf("%s: node %s not found", c.Name, id)
}

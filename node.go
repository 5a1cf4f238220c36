// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A Node is a circuit component.
//
// For Input nodes, State is set by the user and never changed by the
// evaluator. For all other kinds, State and Inputs are overwritten on every
// evaluation pass.
//
type Node struct {
	ID    string `json:"id" validate:"required,max=64"`
	Kind  Kind   `json:"kind"`
	State bool   `json:"state"`
	// Inputs holds the values seen on each input pin during the last
	// evaluation, in wire order. Display only.
	Inputs []bool `json:"inputs,omitempty"`

	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Clone returns a copy of n that does not share its Inputs slice.
//
func (n Node) Clone() Node {
	if n.Inputs != nil {
		n.Inputs = append([]bool(nil), n.Inputs...)
	}
	return n
}

// An Edge is a wire from the output pin of Source to an input pin of Target.
//
type Edge struct {
	ID        string `json:"id" validate:"max=64"`
	Source    string `json:"source" validate:"required"`
	SourcePin string `json:"sourcePin,omitempty" validate:"max=64"`
	Target    string `json:"target" validate:"required"`
	TargetPin string `json:"targetPin,omitempty" validate:"max=64"`
}

// CloneNodes returns a deep copy of ns.
//
func CloneNodes(ns []Node) []Node {
	if ns == nil {
		return nil
	}
	out := make([]Node, len(ns))
	for i := range ns {
		out[i] = ns[i].Clone()
	}
	return out
}

// CloneEdges returns a copy of es.
//
func CloneEdges(es []Edge) []Edge {
	if es == nil {
		return nil
	}
	return append([]Edge(nil), es...)
}

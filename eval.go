// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Result is the outcome of an evaluation pass.
//
type Result struct {
	// Nodes has the same length, order and IDs as the evaluated snapshot,
	// with State and Inputs updated.
	Nodes []Node
	// CycleBreaks counts how many times a wire was resolved to false because
	// its source was already being evaluated on the current path.
	CycleBreaks int
	// Evaluations counts gate and output computations, including repeated
	// computations of nodes that depend on a cycle.
	Evaluations int
}

// Evaluate computes the state of every gate and output node in the circuit
// described by nodes and edges and returns an updated copy of nodes.
// The arguments are not modified.
//
// See Graph.Evaluate for the evaluation rules.
//
func Evaluate(nodes []Node, edges []Edge) []Node {
	return Build(nodes, edges).Evaluate().Nodes
}

// Evaluate runs one evaluation pass over g and returns a fresh snapshot.
//
// Every non-Input node is evaluated in node order. A node's value is computed
// from the values of the nodes feeding its input pins, in wire order:
//
//	AND:    all inputs true
//	OR:     any input true
//	NOT:    !in[0]
//	NAND:   !AND
//	NOR:    !OR
//	XOR:    odd number of true inputs
//	XNOR:   even number of true inputs
//	OUTPUT: in[0]
//
// A node with no incoming wire evaluates to false, whatever its kind. Input
// nodes keep their State. Wires from unknown nodes carry false, as do nodes
// of an unknown Kind.
//
// Cycles do not prevent termination: when evaluation reaches a node that is
// already being evaluated on the current path, that wire resolves to false.
// The path is tracked per call chain so that a source shared by several
// gates (fan-out) is never mistaken for a cycle. The resulting states may not
// satisfy every gate equation of a cyclic circuit.
//
// Evaluate is safe for concurrent use as long as the slices g was built from
// are not modified.
//
func (g *Graph) Evaluate() *Result {
	ev := evaluator{
		g:    g,
		out:  CloneNodes(g.nodes),
		path: make(map[string]struct{}),
		memo: make(map[string]bool),
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Kind == Input || g.index[n.ID] != i {
			// inputs are authoritative and shadowed duplicates are left alone.
			continue
		}
		ev.eval(n.ID)
	}
	if ev.out == nil {
		ev.out = []Node{}
	}
	return &Result{
		Nodes:       ev.out,
		CycleBreaks: ev.breaks,
		Evaluations: ev.evals,
	}
}

type evaluator struct {
	g      *Graph
	out    []Node
	path   map[string]struct{} // nodes being evaluated on the current call chain
	memo   map[string]bool     // values that did not depend on a cycle break
	breaks int
	evals  int
}

// eval returns the value of node id and whether that value is independent of
// the current path, i.e. no cycle break happened while computing it. Only such
// values are memoized: anything computed below a cycle break depends on where
// the traversal entered the cycle.
func (ev *evaluator) eval(id string) (value bool, clean bool) {
	i, ok := ev.g.index[id]
	if !ok {
		return false, true
	}
	if _, ok := ev.path[id]; ok {
		ev.breaks++
		return false, false
	}
	n := &ev.out[i]
	if n.Kind == Input {
		return n.State, true
	}
	if v, ok := ev.memo[id]; ok {
		return v, true
	}

	wires := ev.g.in[id]
	if len(wires) == 0 {
		n.State, n.Inputs = false, nil
		ev.memo[id] = false
		ev.evals++
		return false, true
	}

	ev.path[id] = struct{}{}
	ins := make([]bool, len(wires))
	clean = true
	for k, w := range wires {
		v, c := ev.eval(ev.g.edges[w].Source)
		ins[k] = v
		clean = clean && c
	}
	delete(ev.path, id)

	if n.Kind.Valid() {
		value = n.Kind.apply(ins)
	}
	n.Inputs = ins
	n.State = value
	ev.evals++
	if clean {
		ev.memo[id] = value
	}
	return value, clean
}

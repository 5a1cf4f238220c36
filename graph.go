// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// Graph is a read-only indexed view of a circuit snapshot.
//
// A Graph borrows the node and edge slices it is built from: callers must not
// modify them while the Graph is in use.
//
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int   // node ID -> position in nodes
	in    map[string][]int // target ID -> positions in edges, in insertion order
	out   map[string][]int // source ID -> positions in edges, in insertion order
	dups  []string
}

// Build indexes nodes and edges into a Graph. It runs in O(N+E) and never fails.
//
// Node IDs should be unique. If they are not, lookups resolve to the last node
// with a given ID and earlier duplicates are shadowed: they are returned
// unchanged by Evaluate. Use CheckIDs to reject such input instead.
//
// Edges may reference unknown nodes. Such sources evaluate to false.
//
func Build(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes: nodes,
		edges: edges,
		index: make(map[string]int, len(nodes)),
		in:    make(map[string][]int),
		out:   make(map[string][]int),
	}
	for i := range nodes {
		id := nodes[i].ID
		if _, ok := g.index[id]; ok {
			g.dups = append(g.dups, id)
		}
		g.index[id] = i
	}
	for i := range edges {
		e := &edges[i]
		g.in[e.Target] = append(g.in[e.Target], i)
		g.out[e.Source] = append(g.out[e.Source], i)
	}
	return g
}

// CheckIDs returns an error if any node ID is empty or appears more than once.
//
func CheckIDs(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		id := nodes[i].ID
		if id == "" {
			return errors.Errorf("node #%d has an empty ID", i)
		}
		if _, ok := seen[id]; ok {
			return errors.Errorf("duplicate node ID %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Len returns the number of nodes in g, including shadowed duplicates.
//
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns the nodes g was built from. The slice must not be modified.
//
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges g was built from. The slice must not be modified.
//
func (g *Graph) Edges() []Edge { return g.edges }

// Duplicates returns the node IDs that appear more than once, in the order the
// duplicates were found.
//
func (g *Graph) Duplicates() []string { return g.dups }

// NodeByID returns the node with the given ID.
//
func (g *Graph) NodeByID(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// IncomingSources returns the IDs of the nodes feeding id, one per incoming
// wire, in wire insertion order. A source wired twice appears twice.
//
func (g *Graph) IncomingSources(id string) []string {
	es := g.in[id]
	if len(es) == 0 {
		return nil
	}
	srcs := make([]string, len(es))
	for i, e := range es {
		srcs[i] = g.edges[e].Source
	}
	return srcs
}

// Incoming returns the wires whose target is id, in insertion order.
//
func (g *Graph) Incoming(id string) []Edge {
	return g.pick(g.in[id])
}

// Outgoing returns the wires whose source is id, in insertion order.
//
func (g *Graph) Outgoing(id string) []Edge {
	return g.pick(g.out[id])
}

func (g *Graph) pick(idx []int) []Edge {
	if len(idx) == 0 {
		return nil
	}
	es := make([]Edge, len(idx))
	for i, e := range idx {
		es[i] = g.edges[e]
	}
	return es
}

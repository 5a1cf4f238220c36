// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	ls "github.com/db47h/logicsim"
)

// MaxExhaustive is the input count above which CompareCircuits switches from
// exhaustive to random testing.
//
const MaxExhaustive = 12

// Seed seeds the random input combinations of CompareCircuits so that a
// failing comparison can be replayed.
//
var Seed int64 = 1

// fillRandom sets each input to a pseudo-random value.
func fillRandom(rnd *rand.Rand, inputs []bool) {
	for j := range inputs {
		inputs[j] = rnd.Int63()&(1<<62) != 0
	}
}

type bench struct {
	c    *ls.Circuit
	g    *ls.Graph
	ins  []int
	outs []int
}

func newBench(c *ls.Circuit) *bench {
	b := &bench{c: c.Clone()}
	b.g = ls.Build(b.c.Nodes, b.c.Edges)
	for i, n := range b.c.Nodes {
		switch n.Kind {
		case ls.Input:
			b.ins = append(b.ins, i)
		case ls.Output:
			b.outs = append(b.outs, i)
		}
	}
	return b
}

func (b *bench) ids(idx []int) []string {
	s := make([]string, len(idx))
	for j, i := range idx {
		s[j] = b.c.Nodes[i].ID
	}
	return s
}

func (b *bench) run(inputs []bool) []bool {
	for j, i := range b.ins {
		b.c.Nodes[i].State = inputs[j]
	}
	res := b.g.Evaluate().Nodes
	out := make([]bool, len(b.outs))
	for j, i := range b.outs {
		out[j] = res[i].State
	}
	return out
}

func inputString(names []string, inputs []bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteRune('=')
		if inputs[i] {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	}
	return b.String()
}

// CompareCircuits takes two circuits and compares their outputs given the same
// inputs. Both circuits must have the same INPUT and OUTPUT node IDs, in the
// same order.
//
// Circuits with up to MaxExhaustive inputs are tested for every input
// combination. Larger ones are tested with all 0, all 1 and 1<<MaxExhaustive
// random combinations drawn from Seed.
//
func CompareCircuits(t *testing.T, a, b *ls.Circuit) {
	t.Helper()

	b1, b2 := newBench(a), newBench(b)
	in1, in2 := b1.ids(b1.ins), b2.ids(b2.ins)
	out1, out2 := b1.ids(b1.outs), b2.ids(b2.outs)

	// compare specs
	if len(in1) != len(in2) {
		t.Fatalf("%s has %d inputs, %s has %d", a.Name, len(in1), b.Name, len(in2))
	}
	if len(out1) != len(out2) {
		t.Fatalf("%s has %d outputs, %s has %d", a.Name, len(out1), b.Name, len(out2))
	}
	for i := range in1 {
		if in1[i] != in2[i] {
			t.Fatalf("input #%d: %q != %q", i, in1[i], in2[i])
		}
	}
	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("output #%d: %q != %q", i, out1[i], out2[i])
		}
	}

	inputs := make([]bool, len(in1))
	check := func() {
		t.Helper()
		o1, o2 := b1.run(inputs), b2.run(inputs)
		for o := range o1 {
			if o1[o] != o2[o] {
				t.Fatalf("\nExpected %s => %s=%v\nGot %v", inputString(in1, inputs), out1[o], o1[o], o2[o])
			}
		}
	}

	start := time.Now()
	n := 0
	if len(inputs) <= MaxExhaustive {
		for i := 0; i < 1<<uint(len(inputs)); i++ {
			for j := range inputs {
				inputs[j] = i&(1<<uint(j)) != 0
			}
			check()
			n++
		}
	} else {
		rnd := rand.New(rand.NewSource(Seed))
		t.Logf("%s vs %s: random inputs, seed %d", a.Name, b.Name, Seed)
		// try all 0, then all 1
		check()
		for j := range inputs {
			inputs[j] = true
		}
		check()
		n = 2
		for i := 0; i < 1<<MaxExhaustive; i++ {
			fillRandom(rnd, inputs)
			check()
			n++
		}
	}
	t.Logf("%s vs %s: %d nodes, %d combinations in %v", a.Name, b.Name, len(a.Nodes)+len(b.Nodes), n, time.Since(start))
}

// CheckTruthTable checks the OUTPUT nodes of c against want, one column per
// output: want[o][i] is the expected value of output o for input combination
// i, where input j of combination i is bit j of i.
//
func CheckTruthTable(t *testing.T, c *ls.Circuit, want [][]bool) {
	t.Helper()
	tt, err := c.TruthTable()
	if err != nil {
		t.Fatal(err)
	}
	if len(want) != len(tt.Outputs) {
		t.Fatalf("%s: expected %d output columns, circuit has %d", c.Name, len(want), len(tt.Outputs))
	}
	for o, col := range want {
		if len(col) != len(tt.Rows) {
			t.Fatalf("%s: output %s: expected %d rows, got %d", c.Name, tt.Outputs[o], len(col), len(tt.Rows))
		}
		for i, exp := range col {
			r := tt.Rows[i]
			if got := r.Out[o]; got != exp {
				t.Errorf("%s %s => %s = %v, got %v", c.Name, inputString(tt.Inputs, r.In), tt.Outputs[o], exp, got)
			}
		}
	}
}

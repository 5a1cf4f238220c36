// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultMaxTruthInputs is the input count limit used by TruthTable when
// maxInputs <= 0.
//
const DefaultMaxTruthInputs = 12

// Row is a truth table row: input values followed by the resulting output
// values, in the column order of the Table.
//
type Row struct {
	In  []bool `json:"in"`
	Out []bool `json:"out"`
}

// Table is the truth table of a circuit.
//
type Table struct {
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	Rows    []Row    `json:"rows"`
}

// TruthTable evaluates the circuit for every combination of its INPUT node
// values and records the resulting OUTPUT node states.
//
// Inputs and outputs are taken in node order. In row i, input j is set to bit
// j of i, so the first input toggles fastest.
//
// An error is returned if the circuit has no input or no output, or more than
// maxInputs inputs. The nodes slice is not modified.
//
func TruthTable(nodes []Node, edges []Edge, maxInputs int) (*Table, error) {
	if maxInputs <= 0 {
		maxInputs = DefaultMaxTruthInputs
	}
	var ins, outs []int
	for i := range nodes {
		switch nodes[i].Kind {
		case Input:
			ins = append(ins, i)
		case Output:
			outs = append(outs, i)
		}
	}
	if len(ins) == 0 || len(outs) == 0 {
		return nil, errors.New("truth table needs at least one input and one output")
	}
	if len(ins) > maxInputs {
		return nil, errors.Errorf("too many inputs for a truth table: %d > %d", len(ins), maxInputs)
	}

	t := &Table{
		Inputs:  make([]string, len(ins)),
		Outputs: make([]string, len(outs)),
		Rows:    make([]Row, 0, 1<<uint(len(ins))),
	}
	for j, i := range ins {
		t.Inputs[j] = nodes[i].ID
	}
	for j, i := range outs {
		t.Outputs[j] = nodes[i].ID
	}

	work := CloneNodes(nodes)
	g := Build(work, edges)
	for r := 0; r < 1<<uint(len(ins)); r++ {
		row := Row{In: make([]bool, len(ins)), Out: make([]bool, len(outs))}
		for j, i := range ins {
			v := r&(1<<uint(j)) != 0
			work[i].State = v
			row.In[j] = v
		}
		res := g.Evaluate().Nodes
		for j, i := range outs {
			row.Out[j] = res[i].State
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// TruthTable returns the truth table of c.
//
func (c *Circuit) TruthTable() (*Table, error) {
	t, err := TruthTable(c.Nodes, c.Edges, 0)
	if err != nil {
		return nil, errors.Wrap(err, c.Name)
	}
	return t, nil
}

// Column returns the output column for output id, or nil if there is no such
// output.
//
func (t *Table) Column(id string) []bool {
	for j, o := range t.Outputs {
		if o != id {
			continue
		}
		col := make([]bool, len(t.Rows))
		for i := range t.Rows {
			col[i] = t.Rows[i].Out[j]
		}
		return col
	}
	return nil
}

// String renders t as a plain text table with 0/1 cells.
//
func (t *Table) String() string {
	var b strings.Builder
	for _, n := range t.Inputs {
		b.WriteString(n)
		b.WriteByte(' ')
	}
	b.WriteString("|")
	for _, n := range t.Outputs {
		b.WriteByte(' ')
		b.WriteString(n)
	}
	b.WriteByte('\n')
	for _, r := range t.Rows {
		for j, v := range r.In {
			writeBit(&b, v, len(t.Inputs[j]))
			b.WriteByte(' ')
		}
		b.WriteString("|")
		for j, v := range r.Out {
			b.WriteByte(' ')
			w := len(t.Outputs[j])
			if j == len(r.Out)-1 {
				w = 1
			}
			writeBit(&b, v, w)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeBit(b *strings.Builder, v bool, width int) {
	if v {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	for i := 1; i < width; i++ {
		b.WriteByte(' ')
	}
}

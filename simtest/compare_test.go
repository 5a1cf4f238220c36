// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest_test

import (
	"strconv"
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
)

func TestCompareCircuits(t *testing.T) {
	or, err := ls.Design("or", ls.Parts{
		ls.Input.NewPart("a", ""),
		ls.Input.NewPart("b", ""),
		ls.Or.NewPart("g", "a, b"),
		ls.Output.NewPart("out", "g"),
	})
	if err != nil {
		t.Fatal(err)
	}
	custom, err := ls.Design("custom_or", ls.Parts{
		ls.Input.NewPart("a", ""),
		ls.Input.NewPart("b", ""),
		ls.Nand.NewPart("notA", "a, a"),
		ls.Nand.NewPart("notB", "b, b"),
		ls.Nand.NewPart("g", "notA, notB"),
		ls.Output.NewPart("out", "g"),
	})
	if err != nil {
		t.Fatal(err)
	}
	simtest.CompareCircuits(t, or, custom)
}

// wide XOR vs. a chain of 2-input XORs over 14 inputs, which goes through the
// random sampling path.
func TestCompareCircuits_random(t *testing.T) {
	const n = 14
	var wide, chain ls.Parts
	var srcs []string
	for i := 0; i < n; i++ {
		id := "i" + strconv.Itoa(i)
		srcs = append(srcs, id)
		wide = append(wide, ls.Input.NewPart(id, ""))
		chain = append(chain, ls.Input.NewPart(id, ""))
	}
	wide = append(wide, ls.Xor.NewPart("x", strings.Join(srcs, ",")), ls.Output.NewPart("out", "x"))
	prev := "i0"
	for i := 1; i < n; i++ {
		id := "x" + strconv.Itoa(i)
		chain = append(chain, ls.Xor.NewPart(id, prev+", i"+strconv.Itoa(i)))
		prev = id
	}
	chain = append(chain, ls.Output.NewPart("out", prev))

	a, err := ls.Design("wide", wide)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ls.Design("chain", chain)
	if err != nil {
		t.Fatal(err)
	}
	simtest.CompareCircuits(t, a, b)
}

func TestCheckTruthTable(t *testing.T) {
	c, err := ls.Design("nor", ls.Parts{
		ls.Input.NewPart("a", ""),
		ls.Input.NewPart("b", ""),
		ls.Nor.NewPart("g", "a, b"),
		ls.Output.NewPart("out", "g"),
	})
	if err != nil {
		t.Fatal(err)
	}
	simtest.CheckTruthTable(t, c, [][]bool{{true, false, false, false}})
}

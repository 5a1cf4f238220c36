// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuitlib

import (
	ls "github.com/db47h/logicsim"
)

// BasicGates returns a two input AND gate wired to an output.
//
//	Inputs: input-1, input-2
//	Outputs: output-1
//
func BasicGates() *ls.Circuit {
	return mustDesign("basic-gates",
		In("input-1", false).WithLabel("Input A"),
		In("input-2", false).WithLabel("Input B"),
		And("and-1", "input-1, input-2").WithLabel("AND"),
		Out("output-1", "and-1").WithLabel("Output"),
	)
}

// HalfAdder returns a half adder.
//
//	Inputs: input-a, input-b
//	Outputs: output-sum, output-carry
//	Function: sum = a ^ b; carry = a && b
//
func HalfAdder() *ls.Circuit {
	return mustDesign("half-adder",
		In("input-a", false).WithLabel("A"),
		In("input-b", false).WithLabel("B"),
		Xor("xor-1", "input-a, input-b").WithLabel("XOR"),
		And("and-1", "input-a, input-b").WithLabel("AND"),
		Out("output-sum", "xor-1").WithLabel("Sum"),
		Out("output-carry", "and-1").WithLabel("Carry"),
	)
}

// FullAdder returns a full adder made of two half adders.
//
//	Inputs: input-a, input-b, input-cin
//	Outputs: output-sum, output-cout
//	Function: sum = a ^ b ^ cin; cout = at least two of a, b and cin
//
func FullAdder() *ls.Circuit {
	return mustDesign("full-adder",
		In("input-a", false).WithLabel("A"),
		In("input-b", false).WithLabel("B"),
		In("input-cin", false).WithLabel("Carry in"),
		Xor("xor-1", "input-a, input-b"),
		And("and-1", "input-a, input-b"),
		Xor("xor-2", "xor-1, input-cin"),
		And("and-2", "xor-1, input-cin"),
		Or("or-1", "and-1, and-2"),
		Out("output-sum", "xor-2").WithLabel("Sum"),
		Out("output-cout", "or-1").WithLabel("Carry out"),
	)
}

// SRLatch returns a set-reset latch made of two cross-coupled NOR gates.
//
//	Inputs: input-s, input-r
//	Outputs: output-q, output-qn
//
// There is no clock: each evaluation breaks the feedback loop, so the latch
// does not hold its state when both inputs are low. With s=1, r=0 it reads
// q=1, qn=0 and with s=0, r=1 it reads q=0, qn=1.
//
func SRLatch() *ls.Circuit {
	return mustDesign("sr-latch",
		In("input-s", false).WithLabel("Set"),
		In("input-r", false).WithLabel("Reset"),
		Nor("nor-1", "input-r, nor-2").WithLabel("NOR"),
		Nor("nor-2", "input-s, nor-1").WithLabel("NOR"),
		Out("output-q", "nor-1").WithLabel("Q"),
		Out("output-qn", "nor-2").WithLabel("Q̄"),
	)
}

// Mux returns a 2 to 1 multiplexer.
//
//	Inputs: input-a, input-b, input-sel
//	Outputs: output-1
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() *ls.Circuit {
	return mustDesign("multiplexer",
		In("input-a", false).WithLabel("Input A"),
		In("input-b", false).WithLabel("Input B"),
		In("input-sel", false).WithLabel("Select"),
		Not("not-1", "input-sel").WithLabel("NOT"),
		And("and-1", "input-a, not-1").WithLabel("AND"),
		And("and-2", "input-b, input-sel").WithLabel("AND"),
		Or("or-1", "and-1, and-2").WithLabel("OR"),
		Out("output-1", "or-1").WithLabel("Output"),
	)
}

// DMux returns a 1 to 2 demultiplexer.
//
//	Inputs: input-in, input-sel
//	Outputs: output-a, output-b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() *ls.Circuit {
	return mustDesign("demultiplexer",
		In("input-in", false).WithLabel("In"),
		In("input-sel", false).WithLabel("Select"),
		Not("not-1", "input-sel"),
		And("and-1", "input-in, not-1"),
		And("and-2", "input-in, input-sel"),
		Out("output-a", "and-1").WithLabel("A"),
		Out("output-b", "and-2").WithLabel("B"),
	)
}

// Parity3 returns a 3 bit parity checker using multi-input XOR and XNOR gates.
//
//	Inputs: input-a, input-b, input-c
//	Outputs: output-odd, output-even
//
func Parity3() *ls.Circuit {
	return mustDesign("parity-3",
		In("input-a", false).WithLabel("A"),
		In("input-b", false).WithLabel("B"),
		In("input-c", false).WithLabel("C"),
		Xor("xor-1", "input-a, input-b, input-c").WithLabel("XOR"),
		Xnor("xnor-1", "input-a, input-b, input-c").WithLabel("XNOR"),
		Out("output-odd", "xor-1").WithLabel("Odd"),
		Out("output-even", "xnor-1").WithLabel("Even"),
	)
}

// Difficulty grades examples for the editor's example picker.
//
type Difficulty string

// Difficulty levels.
//
const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Example is an entry of the example catalog.
//
type Example struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	// Build returns a new copy of the example circuit.
	Build func() *ls.Circuit `json:"-"`
}

var catalog = []Example{
	{"basic-gates", "Basic Logic Gates", "Simple demonstration of an AND gate with inputs and outputs.", Beginner, BasicGates},
	{"half-adder", "Half Adder", "A circuit that adds two single binary digits and outputs the sum and carry.", Intermediate, HalfAdder},
	{"full-adder", "Full Adder", "Two half adders chained to add three binary digits.", Intermediate, FullAdder},
	{"sr-latch", "SR Latch", "A basic memory circuit using NOR gates that can store one bit of information.", Advanced, SRLatch},
	{"multiplexer", "2-to-1 Multiplexer", "A circuit that selects one of two inputs based on a control signal.", Intermediate, Mux},
	{"demultiplexer", "1-to-2 Demultiplexer", "A circuit that routes its input to one of two outputs based on a control signal.", Intermediate, DMux},
	{"parity-3", "3-bit Parity", "Odd and even parity of three inputs with multi-input XOR and XNOR gates.", Beginner, Parity3},
}

// Catalog returns the list of example circuits.
//
func Catalog() []Example {
	return append([]Example(nil), catalog...)
}

// Lookup returns the catalog entry with the given ID.
//
func Lookup(id string) (Example, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Example{}, false
}

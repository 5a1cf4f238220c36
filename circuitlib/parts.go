// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circuitlib provides part constructors and a library of example
// circuits for logicsim.
//
package circuitlib

import (
	ls "github.com/db47h/logicsim"
)

// In returns an INPUT part with the given initial state.
//
func In(id string, state bool) ls.Part {
	p := ls.Input.NewPart(id, "")
	p.State = state
	return p
}

// Out returns an OUTPUT part fed by src.
//
//	Inputs: in
//	Function: state = in
//
func Out(id, src string) ls.Part { return ls.Output.NewPart(id, src) }

// Not returns a NOT gate fed by src.
//
//	Inputs: in
//	Function: out = !in
//
func Not(id, src string) ls.Part { return ls.Not.NewPart(id, src) }

// And returns an AND gate fed by the comma separated list of sources srcs.
//
//	Inputs: input-1, input-2, ...
//	Function: out = in1 && in2 && ...
//
func And(id, srcs string) ls.Part { return ls.And.NewPart(id, srcs) }

// Nand returns a NAND gate.
//
//	Inputs: input-1, input-2, ...
//	Function: out = !(in1 && in2 && ...)
//
func Nand(id, srcs string) ls.Part { return ls.Nand.NewPart(id, srcs) }

// Or returns an OR gate.
//
//	Inputs: input-1, input-2, ...
//	Function: out = in1 || in2 || ...
//
func Or(id, srcs string) ls.Part { return ls.Or.NewPart(id, srcs) }

// Nor returns a NOR gate.
//
//	Inputs: input-1, input-2, ...
//	Function: out = !(in1 || in2 || ...)
//
func Nor(id, srcs string) ls.Part { return ls.Nor.NewPart(id, srcs) }

// Xor returns a XOR gate. It is true when an odd number of its inputs are.
//
func Xor(id, srcs string) ls.Part { return ls.Xor.NewPart(id, srcs) }

// Xnor returns a XNOR gate. It is true when an even number of its inputs are.
//
func Xnor(id, srcs string) ls.Part { return ls.Xnor.NewPart(id, srcs) }

// mustDesign is for the fixed circuits of this package, which are known to be
// valid.
func mustDesign(name string, parts ...ls.Part) *ls.Circuit {
	c, err := ls.Design(name, parts)
	if err != nil {
		panic(err)
	}
	return c
}

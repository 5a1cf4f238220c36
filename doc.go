/*
Package logicsim provides the evaluation engine of an interactive logic circuit
editor.

A circuit is a set of nodes (inputs, outputs and the AND, OR, NOT, NAND, NOR,
XOR and XNOR gates) connected by directed wires. The host editor owns the
circuit and calls Evaluate after every edit or input toggle; Evaluate returns a
fresh copy of the nodes with the state of every gate and output updated.

Evaluation is a single recursive pass from every gate and output towards the
inputs. It is total: wires from unknown nodes carry false, and wiring cycles
are broken by resolving the revisited wire to false, so a cyclic circuit
always evaluates in finite time. No clock or propagation delay is simulated.

Circuits can also be described in Go with Design, and TruthTable enumerates
every input combination of a circuit. Package circuitlib provides a small
library of example circuits built that way.

*/
package logicsim

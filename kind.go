// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the type of a circuit node.
//
type Kind int

// Node kinds. The set is closed: the evaluator handles exactly these.
//
const (
	Input Kind = iota
	Output
	And
	Or
	Not
	Nand
	Nor
	Xor
	Xnor

	kindCount
)

var kindNames = [...]string{
	Input:  "INPUT",
	Output: "OUTPUT",
	And:    "AND",
	Or:     "OR",
	Not:    "NOT",
	Nand:   "NAND",
	Nor:    "NOR",
	Xor:    "XOR",
	Xnor:   "XNOR",
}

// node type names used by the web editor front-end.
var kindAliases = map[string]Kind{
	"inputnode":  Input,
	"outputnode": Output,
	"andgate":    And,
	"orgate":     Or,
	"notgate":    Not,
	"nandgate":   Nand,
	"norgate":    Nor,
	"xorgate":    Xor,
	"xnorgate":   Xnor,
}

// Kinds returns all node kinds in declaration order.
//
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// Valid reports whether k is one of the declared kinds.
//
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

// IsGate reports whether k is a boolean gate (neither Input nor Output).
//
func (k Kind) IsGate() bool { return k.Valid() && k != Input && k != Output }

// MaxInputs returns the maximum number of functional input wires for k, or -1
// if unbounded.
//
func (k Kind) MaxInputs() int {
	switch k {
	case Input:
		return 0
	case Output, Not:
		return 1
	}
	return -1
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s. The match is case insensitive and
// accepts the front-end node type names (andGate, inputNode, ...).
//
func ParseKind(s string) (Kind, error) {
	t := strings.TrimSpace(s)
	for k, n := range kindNames {
		if strings.EqualFold(n, t) {
			return Kind(k), nil
		}
	}
	if k, ok := kindAliases[strings.ToLower(t)]; ok {
		return k, nil
	}
	return 0, errors.Errorf("unknown node kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
//
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("invalid node kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// apply computes the output of a node of kind k given the values on its input
// pins. ins must not be empty.
func (k Kind) apply(ins []bool) bool {
	switch k {
	case And:
		return allSet(ins)
	case Or:
		return anySet(ins)
	case Not:
		return !ins[0]
	case Nand:
		return !allSet(ins)
	case Nor:
		return !anySet(ins)
	case Xor:
		return countSet(ins)&1 == 1
	case Xnor:
		return countSet(ins)&1 == 0
	case Output:
		return ins[0]
	case Input:
		panic("apply called on an INPUT node")
	}
	panic("unknown node kind " + k.String())
}

func allSet(ins []bool) bool {
	for _, v := range ins {
		if !v {
			return false
		}
	}
	return true
}

func anySet(ins []bool) bool {
	for _, v := range ins {
		if v {
			return true
		}
	}
	return false
}

func countSet(ins []bool) int {
	n := 0
	for _, v := range ins {
		if v {
			n++
		}
	}
	return n
}

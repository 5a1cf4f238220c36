// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim prints the truth tables of the example circuits, or
// evaluates one of them for given input values.
//
//	logicsim -list
//	logicsim -example half-adder
//	logicsim -example sr-latch -set input-s=1,input-r=0
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/db47h/logicsim/circuitlib"
	"github.com/pkg/errors"
)

func list(w io.Writer) {
	for _, e := range circuitlib.Catalog() {
		fmt.Fprintf(w, "%-14s %-13s %s\n", e.ID, e.Difficulty, e.Name)
	}
}

// parseInputs parses "id=1,id=0" assignments.
func parseInputs(s string) (map[string]bool, error) {
	in := make(map[string]bool)
	if strings.TrimSpace(s) == "" {
		return in, nil
	}
	for _, kv := range strings.Split(s, ",") {
		i := strings.IndexByte(kv, '=')
		if i < 0 {
			return nil, errors.Errorf("invalid assignment %q, expected id=0 or id=1", kv)
		}
		id, v := strings.TrimSpace(kv[:i]), strings.TrimSpace(kv[i+1:])
		switch v {
		case "1", "true":
			in[id] = true
		case "0", "false":
			in[id] = false
		default:
			return nil, errors.Errorf("invalid value %q for %s", v, id)
		}
	}
	return in, nil
}

func run(w io.Writer, example, set string) error {
	e, ok := circuitlib.Lookup(example)
	if !ok {
		return errors.Errorf("unknown example %q, use -list", example)
	}
	c := e.Build()
	if set == "" {
		t, err := c.TruthTable()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n\n%s", e.Name, t)
		return nil
	}
	in, err := parseInputs(set)
	if err != nil {
		return err
	}
	for id, v := range in {
		if err = c.Set(id, v); err != nil {
			return err
		}
	}
	r := c.Evaluate()
	for _, n := range c.Nodes {
		v := 0
		if n.State {
			v = 1
		}
		fmt.Fprintf(w, "%-14s %-6s %d\n", n.ID, n.Kind, v)
	}
	if r.CycleBreaks > 0 {
		fmt.Fprintf(w, "(%d feedback wire(s) read as 0)\n", r.CycleBreaks)
	}
	return nil
}

func main() {
	var (
		listFlag = flag.Bool("list", false, "list example circuits")
		example  = flag.String("example", "", "example circuit `id`")
		set      = flag.String("set", "", "input values, like a=1,b=0. Without -set, print the truth table")
	)
	flag.Parse()
	log.SetFlags(0)

	switch {
	case *listFlag:
		list(os.Stdout)
	case *example != "":
		if err := run(os.Stdout, *example, *set); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

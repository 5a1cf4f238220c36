// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	ls "github.com/db47h/logicsim"
)

// Fingerprint hashes the parts of a circuit that determine its evaluation:
// node IDs, kinds and input states, and the wiring. Gate states, labels and
// positions are not included.
//
func Fingerprint(nodes []ls.Node, edges []ls.Edge) uint64 {
	d := xxhash.New()
	for i := range nodes {
		n := &nodes[i]
		d.WriteString(n.ID)
		d.WriteString("\x00")
		d.WriteString(strconv.Itoa(int(n.Kind)))
		if n.Kind == ls.Input && n.State {
			d.WriteString("\x001")
		}
		d.WriteString("\x01")
	}
	d.WriteString("\x02")
	for i := range edges {
		e := &edges[i]
		for _, s := range [...]string{e.ID, e.Source, e.SourcePin, e.Target, e.TargetPin} {
			d.WriteString(s)
			d.WriteString("\x00")
		}
		d.WriteString("\x01")
	}
	return d.Sum64()
}

// ETag formats a fingerprint as a strong HTTP entity tag.
//
func ETag(fp uint64) string {
	return `"` + strconv.FormatUint(fp, 16) + `"`
}

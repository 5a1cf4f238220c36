// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ParseSources parses a comma separated list of node IDs, like "a, b, c".
// IDs are made of letters, digits and the characters '_', '-' and '.'.
// Blank input yields an empty list.
//
//	ParseSources("a, b") // returns []string{"a", "b"}
//
func ParseSources(list string) ([]string, error) {
	var out []string
	pos := skipSpace(list, 0)
	if pos == len(list) {
		return nil, nil
	}
	for {
		end := scanID(list, pos)
		if end == pos {
			return nil, parseError(list, pos, "expected node ID")
		}
		out = append(out, list[pos:end])
		pos = skipSpace(list, end)
		if pos == len(list) {
			return out, nil
		}
		if list[pos] != ',' {
			return nil, parseError(list, pos, "expected comma or end of input")
		}
		pos = skipSpace(list, pos+1)
	}
}

func isIDRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

// ValidID reports whether id is a well formed node ID.
//
func ValidID(id string) bool {
	return id != "" && scanID(id, 0) == len(id)
}

func scanID(s string, pos int) int {
	for pos < len(s) {
		r, sz := utf8.DecodeRuneInString(s[pos:])
		if !isIDRune(r) {
			break
		}
		pos += sz
	}
	return pos
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, sz := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += sz
	}
	return pos
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"github.com/pkg/errors"
)

// Errors returned by sessions and workspaces, possibly wrapped. Use
// errors.Cause to test for them.
//
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate ID")
	ErrInvalidWire  = errors.New("invalid wire")
	ErrInvalidNode  = errors.New("invalid node")
	ErrNotInput     = errors.New("not an input node")
	ErrTooLarge     = errors.New("circuit too large")
	ErrNoTruthTable = errors.New("no truth table")
)

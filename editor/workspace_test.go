// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor_test

import (
	"context"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuitlib"
	"github.com/db47h/logicsim/editor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	ctx := context.Background()
	m := &recorder{}
	w := editor.NewWorkspace(editor.Options{Metrics: m})

	s1, err := w.Create(ctx, "empty", nil)
	require.NoError(t, err)
	s2, err := w.Create(ctx, "mux", circuitlib.Mux())
	require.NoError(t, err)
	assert.Equal(t, 2, m.sessions)
	assert.Len(t, s2.Snapshot().Nodes, 8)

	got, err := w.Get(s2.ID())
	require.NoError(t, err)
	assert.Same(t, s2, got)

	list := w.List()
	require.Len(t, list, 2)
	assert.Equal(t, s1.ID(), list[0].ID)
	assert.Equal(t, "mux", list[1].Name)
	assert.Equal(t, 8, list[1].Nodes)
	assert.Equal(t, uint64(1), list[1].Revision)

	require.NoError(t, w.Delete(s1.ID()))
	assert.Equal(t, 1, m.sessions)
	_, err = w.Get(s1.ID())
	assert.Equal(t, editor.ErrNotFound, errors.Cause(err))
	assert.Equal(t, editor.ErrNotFound, errors.Cause(w.Delete(s1.ID())))
}

func TestWorkspace_limits(t *testing.T) {
	ctx := context.Background()
	w := editor.NewWorkspace(editor.Options{MaxNodes: 4})
	_, err := w.Create(ctx, "too big", circuitlib.FullAdder())
	assert.Equal(t, editor.ErrTooLarge, errors.Cause(err))
	assert.Empty(t, w.List())

	nodes := []ls.Node{{ID: "a", Kind: ls.Input, State: true}, {ID: "o", Kind: ls.Output}}
	r, err := w.Evaluate(ctx, nodes, []ls.Edge{{Source: "a", Target: "o"}, {Source: "ghost", Target: "o"}})
	require.NoError(t, err)
	assert.True(t, r.Nodes[1].State)
	assert.Equal(t, []bool{true, false}, r.Nodes[1].Inputs)

	_, err = w.Evaluate(ctx, make([]ls.Node, 5), nil)
	assert.Equal(t, editor.ErrTooLarge, errors.Cause(err))
}

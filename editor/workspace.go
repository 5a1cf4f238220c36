// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"context"
	"sort"
	"sync"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Workspace manages a set of sessions by ID.
//
type Workspace struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
	seq      uint64
}

// NewWorkspace returns an empty workspace. opts applies to every session.
//
func NewWorkspace(opts Options) *Workspace {
	return &Workspace{
		opts:     opts.withDefaults(),
		sessions: make(map[string]*Session),
	}
}

// Create creates a new session. If c is not nil, the session is loaded with a
// copy of it.
//
func (w *Workspace) Create(ctx context.Context, name string, c *ls.Circuit) (*Session, error) {
	s := NewSession(name, w.opts)
	if c != nil {
		if err := s.Load(ctx, c.Nodes, c.Edges); err != nil {
			return nil, errors.Wrapf(err, "load %s", c.Name)
		}
	}
	w.mu.Lock()
	w.seq++
	s.seq = w.seq
	w.sessions[s.id] = s
	n := len(w.sessions)
	w.mu.Unlock()

	w.opts.Metrics.Sessions(n)
	w.opts.Logger.Info("session created", zap.String("session", s.id), zap.String("name", name))
	return s, nil
}

// Get returns session id.
//
func (w *Workspace) Get(id string) (*Session, error) {
	w.mu.RLock()
	s, ok := w.sessions[id]
	w.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "session %s", id)
	}
	return s, nil
}

// Delete removes session id.
//
func (w *Workspace) Delete(id string) error {
	w.mu.Lock()
	_, ok := w.sessions[id]
	delete(w.sessions, id)
	n := len(w.sessions)
	w.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrNotFound, "session %s", id)
	}
	w.opts.Metrics.Sessions(n)
	w.opts.Logger.Info("session deleted", zap.String("session", id))
	return nil
}

// List describes all sessions, oldest first.
//
func (w *Workspace) List() []Info {
	w.mu.RLock()
	ss := make([]*Session, 0, len(w.sessions))
	for _, s := range w.sessions {
		ss = append(ss, s)
	}
	w.mu.RUnlock()

	sort.Slice(ss, func(i, j int) bool { return ss[i].seq < ss[j].seq })
	infos := make([]Info, len(ss))
	for i, s := range ss {
		infos[i] = s.Info()
	}
	return infos
}

// Evaluate evaluates a circuit that is not attached to any session, with the
// workspace's limits, metrics and tracing.
//
func (w *Workspace) Evaluate(ctx context.Context, nodes []ls.Node, edges []ls.Edge) (*ls.Result, error) {
	_, span := w.opts.Tracer.Start(ctx, "editor.evaluate")
	defer span.End()
	if len(nodes) > w.opts.MaxNodes {
		return nil, errors.Wrapf(ErrTooLarge, "%d nodes, limit is %d", len(nodes), w.opts.MaxNodes)
	}
	start := time.Now()
	r := ls.Build(nodes, edges).Evaluate()
	w.opts.Metrics.Evaluation(time.Since(start), r)
	return r, nil
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"context"
	"sync"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Default limits.
//
const (
	DefaultMaxNodes = 500
)

// Options configures sessions. The zero value is usable.
//
type Options struct {
	// MaxNodes limits the number of nodes in a session. <= 0 means
	// DefaultMaxNodes.
	MaxNodes int
	// MaxTruthInputs limits the number of inputs for truth tables. <= 0 means
	// logicsim.DefaultMaxTruthInputs.
	MaxTruthInputs int
	Logger         *zap.Logger
	Metrics        Metrics
	Tracer         trace.Tracer
}

func (o Options) withDefaults() Options {
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxTruthInputs <= 0 {
		o.MaxTruthInputs = ls.DefaultMaxTruthInputs
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer("github.com/db47h/logicsim/editor")
	}
	return o
}

// Snapshot is a read-only copy of a session's circuit.
//
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Revision    uint64    `json:"revision"`
	Fingerprint uint64    `json:"fingerprint"`
	Nodes       []ls.Node `json:"nodes"`
	Edges       []ls.Edge `json:"edges"`
	CycleBreaks int       `json:"cycleBreaks"`
}

// Session holds one circuit being edited. Every successful edit re-evaluates
// the circuit and increments the revision. A Session is safe for concurrent
// use; edits are serialized.
//
type Session struct {
	id      string
	name    string
	created time.Time
	seq     uint64 // creation order within a workspace
	opts    Options
	log     *zap.Logger

	mu     sync.Mutex
	nodes  []ls.Node
	edges  []ls.Edge
	rev    uint64
	fp     uint64
	breaks int
}

// NewSession returns an empty session.
//
func NewSession(name string, opts Options) *Session {
	opts = opts.withDefaults()
	id := uuid.NewString()
	s := &Session{
		id:      id,
		name:    name,
		created: time.Now(),
		opts:    opts,
		log:     opts.Logger.With(zap.String("session", id)),
		nodes:   []ls.Node{},
		edges:   []ls.Edge{},
	}
	s.fp = Fingerprint(s.nodes, s.edges)
	return s
}

// ID returns the session ID.
//
func (s *Session) ID() string { return s.id }

// Name returns the session name.
//
func (s *Session) Name() string { return s.name }

// edit runs fn under the session lock within a trace span. If fn succeeds,
// the circuit is re-evaluated and the revision bumped.
func (s *Session) edit(ctx context.Context, op string, fn func() error, attrs ...attribute.KeyValue) error {
	_, span := s.opts.Tracer.Start(ctx, "editor."+op,
		trace.WithAttributes(append(attrs, attribute.String("session.id", s.id))...))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn()
	s.opts.Metrics.Edit(op, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Debug("edit rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	s.evaluate()
	s.rev++
	s.fp = Fingerprint(s.nodes, s.edges)
	span.SetAttributes(
		attribute.Int64("session.revision", int64(s.rev)),
		attribute.Int("circuit.nodes", len(s.nodes)),
		attribute.Int("circuit.cycle_breaks", s.breaks),
	)
	s.log.Debug("edit", zap.String("op", op), zap.Uint64("revision", s.rev))
	return nil
}

func (s *Session) evaluate() {
	start := time.Now()
	r := ls.Build(s.nodes, s.edges).Evaluate()
	s.opts.Metrics.Evaluation(time.Since(start), r)
	if r.CycleBreaks > 0 && s.breaks == 0 {
		s.log.Warn("circuit has feedback loops, some wires were read as false",
			zap.Int("cycle_breaks", r.CycleBreaks))
	}
	s.nodes, s.breaks = r.Nodes, r.CycleBreaks
}

func (s *Session) nodeIndex(id string) int {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) edgeIndex(id string) int {
	for i := range s.edges {
		if s.edges[i].ID == id {
			return i
		}
	}
	return -1
}

// AddNode adds a node of the given kind at position (x, y). An empty label
// defaults to the kind name.
//
func (s *Session) AddNode(ctx context.Context, kind ls.Kind, label string, x, y float64) (n ls.Node, err error) {
	err = s.edit(ctx, "add_node", func() error {
		if !kind.Valid() {
			return errors.Wrapf(ErrInvalidNode, "kind %v", kind)
		}
		if len(s.nodes) >= s.opts.MaxNodes {
			return errors.Wrapf(ErrTooLarge, "limit of %d nodes reached", s.opts.MaxNodes)
		}
		if label == "" {
			label = kind.String()
		}
		n = ls.Node{ID: uuid.NewString(), Kind: kind, Label: label, X: x, Y: y}
		s.nodes = append(s.nodes, n)
		return nil
	}, attribute.String("node.kind", kind.String()))
	return n, err
}

// RemoveNode removes node id and all wires connected to it.
//
func (s *Session) RemoveNode(ctx context.Context, id string) error {
	return s.edit(ctx, "remove_node", func() error {
		i := s.nodeIndex(id)
		if i < 0 {
			return errors.Wrapf(ErrNotFound, "node %s", id)
		}
		s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
		edges := s.edges[:0]
		for _, e := range s.edges {
			if e.Source != id && e.Target != id {
				edges = append(edges, e)
			}
		}
		s.edges = edges
		return nil
	}, attribute.String("node.id", id))
}

// Connect wires the output of node src to an input pin of node dst. An empty
// srcPin defaults to logicsim.PinOut and an empty dstPin to the next free
// input pin of dst.
//
// Connect fails if either node does not exist, if dst is an INPUT or src an
// OUTPUT, if an identical wire exists, or if dst is a NOT or OUTPUT that is
// already wired.
//
func (s *Session) Connect(ctx context.Context, src, srcPin, dst, dstPin string) (e ls.Edge, err error) {
	err = s.edit(ctx, "connect", func() error {
		si, di := s.nodeIndex(src), s.nodeIndex(dst)
		if si < 0 {
			return errors.Wrapf(ErrNotFound, "source node %s", src)
		}
		if di < 0 {
			return errors.Wrapf(ErrNotFound, "target node %s", dst)
		}
		sk, dk := s.nodes[si].Kind, s.nodes[di].Kind
		if sk == ls.Output {
			return errors.Wrapf(ErrInvalidWire, "%s %s has no output pin", sk, src)
		}
		if dk == ls.Input {
			return errors.Wrapf(ErrInvalidWire, "%s %s has no input pin", dk, dst)
		}
		wired := 0
		used := make(map[string]bool)
		for _, x := range s.edges {
			if x.Target == dst {
				wired++
				used[x.TargetPin] = true
			}
		}
		if limit := dk.MaxInputs(); limit >= 0 && wired >= limit {
			return errors.Wrapf(ErrInvalidWire, "%s %s accepts at most %d wire(s)", dk, dst, limit)
		}
		if srcPin == "" {
			srcPin = ls.PinOut
		}
		if dstPin == "" {
			i := 0
			for used[ls.InputPin(dk, i)] {
				i++
			}
			dstPin = ls.InputPin(dk, i)
		}
		for _, x := range s.edges {
			if x.Source == src && x.SourcePin == srcPin && x.Target == dst && x.TargetPin == dstPin {
				return errors.Wrapf(ErrInvalidWire, "%s -> %s.%s already exists", src, dst, dstPin)
			}
		}
		e = ls.Edge{ID: uuid.NewString(), Source: src, SourcePin: srcPin, Target: dst, TargetPin: dstPin}
		s.edges = append(s.edges, e)
		return nil
	}, attribute.String("edge.source", src), attribute.String("edge.target", dst))
	return e, err
}

// Disconnect removes wire id.
//
func (s *Session) Disconnect(ctx context.Context, id string) error {
	return s.edit(ctx, "disconnect", func() error {
		i := s.edgeIndex(id)
		if i < 0 {
			return errors.Wrapf(ErrNotFound, "edge %s", id)
		}
		s.edges = append(s.edges[:i], s.edges[i+1:]...)
		return nil
	}, attribute.String("edge.id", id))
}

func (s *Session) input(id string) (*ls.Node, error) {
	i := s.nodeIndex(id)
	if i < 0 {
		return nil, errors.Wrapf(ErrNotFound, "node %s", id)
	}
	n := &s.nodes[i]
	if n.Kind != ls.Input {
		return nil, errors.Wrapf(ErrNotInput, "node %s is a %s", id, n.Kind)
	}
	return n, nil
}

// Toggle flips the state of INPUT node id and returns the new state.
//
func (s *Session) Toggle(ctx context.Context, id string) (state bool, err error) {
	err = s.edit(ctx, "toggle", func() error {
		n, err := s.input(id)
		if err != nil {
			return err
		}
		n.State = !n.State
		state = n.State
		return nil
	}, attribute.String("node.id", id))
	return state, err
}

// SetInput sets the state of INPUT node id.
//
func (s *Session) SetInput(ctx context.Context, id string, state bool) error {
	return s.edit(ctx, "set_input", func() error {
		n, err := s.input(id)
		if err != nil {
			return err
		}
		n.State = state
		return nil
	}, attribute.String("node.id", id), attribute.Bool("node.state", state))
}

// Load replaces the session's circuit. Node IDs must be unique and every wire
// must connect existing nodes. Wires without an ID get one.
//
func (s *Session) Load(ctx context.Context, nodes []ls.Node, edges []ls.Edge) error {
	return s.edit(ctx, "load", func() error {
		if len(nodes) > s.opts.MaxNodes {
			return errors.Wrapf(ErrTooLarge, "%d nodes, limit is %d", len(nodes), s.opts.MaxNodes)
		}
		if err := ls.CheckIDs(nodes); err != nil {
			return errors.Wrap(ErrDuplicateID, err.Error())
		}
		kinds := make(map[string]ls.Kind, len(nodes))
		for _, n := range nodes {
			if !n.Kind.Valid() {
				return errors.Wrapf(ErrInvalidNode, "node %s: kind %v", n.ID, n.Kind)
			}
			kinds[n.ID] = n.Kind
		}
		es := ls.CloneEdges(edges)
		seen := make(map[string]struct{}, len(es))
		wired := make(map[string]int, len(nodes))
		for i := range es {
			e := &es[i]
			if e.ID == "" {
				e.ID = uuid.NewString()
			}
			if _, ok := seen[e.ID]; ok {
				return errors.Wrapf(ErrDuplicateID, "edge %s", e.ID)
			}
			seen[e.ID] = struct{}{}
			sk, ok := kinds[e.Source]
			if !ok {
				return errors.Wrapf(ErrInvalidWire, "edge %s: unknown source %s", e.ID, e.Source)
			}
			dk, ok := kinds[e.Target]
			if !ok {
				return errors.Wrapf(ErrInvalidWire, "edge %s: unknown target %s", e.ID, e.Target)
			}
			if sk == ls.Output || dk == ls.Input {
				return errors.Wrapf(ErrInvalidWire, "edge %s: %s -> %s", e.ID, sk, dk)
			}
			wired[e.Target]++
			if limit := dk.MaxInputs(); limit >= 0 && wired[e.Target] > limit {
				return errors.Wrapf(ErrInvalidWire, "edge %s: %s %s accepts at most %d wire(s)", e.ID, dk, e.Target, limit)
			}
		}
		s.nodes = ls.CloneNodes(nodes)
		if s.nodes == nil {
			s.nodes = []ls.Node{}
		}
		s.edges = es
		if s.edges == nil {
			s.edges = []ls.Edge{}
		}
		return nil
	}, attribute.Int("circuit.nodes", len(nodes)), attribute.Int("circuit.edges", len(edges)))
}

// Snapshot returns a copy of the current circuit.
//
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:          s.id,
		Name:        s.name,
		Revision:    s.rev,
		Fingerprint: s.fp,
		Nodes:       ls.CloneNodes(s.nodes),
		Edges:       ls.CloneEdges(s.edges),
		CycleBreaks: s.breaks,
	}
}

// TruthTable returns the truth table of the current circuit.
//
func (s *Session) TruthTable(ctx context.Context) (*ls.Table, error) {
	_, span := s.opts.Tracer.Start(ctx, "editor.truth_table",
		trace.WithAttributes(attribute.String("session.id", s.id)))
	defer span.End()

	s.mu.Lock()
	nodes, edges := ls.CloneNodes(s.nodes), ls.CloneEdges(s.edges)
	s.mu.Unlock()

	t, err := ls.TruthTable(nodes, edges, s.opts.MaxTruthInputs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrNoTruthTable, err.Error())
	}
	span.SetAttributes(attribute.Int("truth_table.rows", len(t.Rows)))
	return t, nil
}

// Info is a short description of a session.
//
type Info struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Revision uint64    `json:"revision"`
	Nodes    int       `json:"nodes"`
	Edges    int       `json:"edges"`
	Created  time.Time `json:"created"`
}

// Info returns a short description of s.
//
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:       s.id,
		Name:     s.name,
		Revision: s.rev,
		Nodes:    len(s.nodes),
		Edges:    len(s.edges),
		Created:  s.created,
	}
}

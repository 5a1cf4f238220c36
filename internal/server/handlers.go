// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package server

import (
	"encoding/json"
	"net/http"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuitlib"
	"github.com/db47h/logicsim/editor"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

type createCircuitRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Example string `json:"example" validate:"max=64"`
}

type loadRequest struct {
	Nodes []ls.Node `json:"nodes" validate:"dive"`
	Edges []ls.Edge `json:"edges" validate:"dive"`
}

type addNodeRequest struct {
	Kind  *ls.Kind `json:"kind" validate:"required"`
	Label string   `json:"label" validate:"max=64"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
}

type connectRequest struct {
	Source    string `json:"source" validate:"required"`
	SourcePin string `json:"sourcePin" validate:"max=64"`
	Target    string `json:"target" validate:"required"`
	TargetPin string `json:"targetPin" validate:"max=64"`
}

type stateRequest struct {
	State *bool `json:"state" validate:"required"`
}

type evaluateRequest struct {
	Nodes []ls.Node `json:"nodes" validate:"required,dive"`
	Edges []ls.Edge `json:"edges" validate:"dive"`
}

type evaluateResponse struct {
	Nodes       []ls.Node `json:"nodes"`
	CycleBreaks int       `json:"cycleBreaks"`
	Evaluations int       `json:"evaluations"`
}

type nodeResponse struct {
	Node    ls.Node         `json:"node"`
	Circuit editor.Snapshot `json:"circuit"`
}

type edgeResponse struct {
	Edge    ls.Edge         `json:"edge"`
	Circuit editor.Snapshot `json:"circuit"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listExamples(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, circuitlib.Catalog())
}

func (h *handlers) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.ws.Evaluate(r.Context(), req.Nodes, req.Edges)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, evaluateResponse{
		Nodes:       res.Nodes,
		CycleBreaks: res.CycleBreaks,
		Evaluations: res.Evaluations,
	})
}

func (h *handlers) createCircuit(w http.ResponseWriter, r *http.Request) {
	var req createCircuitRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	var c *ls.Circuit
	if req.Example != "" {
		ex, ok := circuitlib.Lookup(req.Example)
		if !ok {
			h.fail(w, r, errors.Wrapf(editor.ErrNotFound, "example %s", req.Example))
			return
		}
		c = ex.Build()
		if req.Name == "" {
			req.Name = ex.Name
		}
	}
	s, err := h.ws.Create(r.Context(), req.Name, c)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/circuits/"+s.ID())
	respondSnapshot(w, http.StatusCreated, s.Snapshot())
}

func (h *handlers) listCircuits(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.ws.List())
}

// session returns the session named in the URL or writes an error.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	s, err := h.ws.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *handlers) getCircuit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	etag := editor.ETag(snap.Fingerprint)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respondSnapshot(w, http.StatusOK, snap)
}

func (h *handlers) loadCircuit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req loadRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := s.Load(r.Context(), req.Nodes, req.Edges); err != nil {
		h.fail(w, r, err)
		return
	}
	respondSnapshot(w, http.StatusOK, s.Snapshot())
}

func (h *handlers) deleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Delete(chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) truthTable(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	t, err := s.TruthTable(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *handlers) addNode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req addNodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := s.AddNode(r.Context(), *req.Kind, req.Label, req.X, req.Y)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap := s.Snapshot()
	w.Header().Set("ETag", editor.ETag(snap.Fingerprint))
	respond(w, http.StatusCreated, nodeResponse{Node: n, Circuit: snap})
}

func (h *handlers) removeNode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveNode(r.Context(), chi.URLParam(r, "nodeID")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondSnapshot(w, http.StatusOK, s.Snapshot())
}

func (h *handlers) toggle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.Toggle(r.Context(), chi.URLParam(r, "nodeID")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondSnapshot(w, http.StatusOK, s.Snapshot())
}

func (h *handlers) setState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req stateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := s.SetInput(r.Context(), chi.URLParam(r, "nodeID"), *req.State); err != nil {
		h.fail(w, r, err)
		return
	}
	respondSnapshot(w, http.StatusOK, s.Snapshot())
}

func (h *handlers) connect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req connectRequest
	if !h.decode(w, r, &req) {
		return
	}
	e, err := s.Connect(r.Context(), req.Source, req.SourcePin, req.Target, req.TargetPin)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap := s.Snapshot()
	w.Header().Set("ETag", editor.ETag(snap.Fingerprint))
	respond(w, http.StatusCreated, edgeResponse{Edge: e, Circuit: snap})
}

func (h *handlers) disconnect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Disconnect(r.Context(), chi.URLParam(r, "edgeID")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondSnapshot(w, http.StatusOK, s.Snapshot())
}

// decode reads a JSON request body into v and validates it. It writes a 400
// response and returns false on failure.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// fail maps editor errors to HTTP status codes.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case editor.ErrNotFound:
		status = http.StatusNotFound
	case editor.ErrDuplicateID:
		status = http.StatusConflict
	case editor.ErrInvalidWire, editor.ErrInvalidNode, editor.ErrNotInput:
		status = http.StatusBadRequest
	case editor.ErrTooLarge, editor.ErrNoTruthTable:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	respondError(w, status, err.Error())
}

func respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondSnapshot(w http.ResponseWriter, status int, s editor.Snapshot) {
	w.Header().Set("ETag", editor.ETag(s.Fingerprint))
	respond(w, status, s)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

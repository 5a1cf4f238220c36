// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/editor"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newClient(t *testing.T, opts editor.Options) *client {
	m := metrics.NewCollector("logicsim")
	opts.Metrics = m
	h := server.NewRouter(server.Options{
		Workspace: editor.NewWorkspace(opts),
		Logger:    zap.NewNop(),
		Metrics:   m,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body interface{}, out interface{}) *http.Response {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp
}

func stateOf(t *testing.T, s editor.Snapshot, id string) bool {
	t.Helper()
	for _, n := range s.Nodes {
		if n.ID == id {
			return n.State
		}
	}
	t.Fatalf("node %s not found", id)
	return false
}

func TestHealth(t *testing.T) {
	c := newClient(t, editor.Options{})
	var body map[string]string
	resp := c.do("GET", "/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestEditFlow(t *testing.T) {
	c := newClient(t, editor.Options{})

	var snap editor.Snapshot
	resp := c.do("POST", "/api/v1/circuits", map[string]string{"name": "xor"}, &snap)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "xor", snap.Name)
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	base := "/api/v1/circuits/" + snap.ID

	var ids []string
	for _, k := range []string{"INPUT", "inputNode", "xorGate", "OUTPUT"} {
		var nr struct {
			Node ls.Node `json:"node"`
		}
		resp = c.do("POST", base+"/nodes", map[string]interface{}{"kind": k, "x": 10, "y": 20}, &nr)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, nr.Node.ID)
	}
	a, b, x, q := ids[0], ids[1], ids[2], ids[3]

	var edges []string
	for _, w := range [][2]string{{a, x}, {b, x}, {x, q}} {
		var er struct {
			Edge ls.Edge `json:"edge"`
		}
		resp = c.do("POST", base+"/edges", map[string]string{"source": w[0], "target": w[1]}, &er)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		edges = append(edges, er.Edge.ID)
	}

	resp = c.do("POST", base+"/nodes/"+a+"/toggle", nil, &snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, stateOf(t, snap, q))
	assert.Equal(t, uint64(8), snap.Revision)

	resp = c.do("PUT", base+"/nodes/"+b+"/state", map[string]bool{"state": true}, &snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, stateOf(t, snap, q))

	var tt ls.Table
	resp = c.do("GET", base+"/truth-table", nil, &tt)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []bool{false, true, true, false}, tt.Column(q))

	resp = c.do("DELETE", base+"/edges/"+edges[1], nil, &snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, stateOf(t, snap, q))

	resp = c.do("DELETE", base+"/nodes/"+x, nil, &snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, snap.Nodes, 3)
	assert.Empty(t, snap.Edges)

	// conditional GET
	resp = c.do("GET", base, nil, &snap)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	req, _ := http.NewRequest("GET", c.srv.URL+base, nil)
	req.Header.Set("If-None-Match", etag)
	r2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	r2.Body.Close()
	assert.Equal(t, http.StatusNotModified, r2.StatusCode)

	var list []editor.Info
	c.do("GET", "/api/v1/circuits", nil, &list)
	require.Len(t, list, 1)
	assert.Equal(t, snap.ID, list[0].ID)

	resp = c.do("DELETE", base, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = c.do("GET", base, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExamples(t *testing.T) {
	c := newClient(t, editor.Options{})
	var list []map[string]interface{}
	resp := c.do("GET", "/api/v1/examples", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, list)
	assert.Equal(t, "basic-gates", list[0]["id"])

	var snap editor.Snapshot
	resp = c.do("POST", "/api/v1/circuits", map[string]string{"example": "half-adder"}, &snap)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Half Adder", snap.Name)
	assert.Len(t, snap.Nodes, 6)

	resp = c.do("POST", "/api/v1/circuits/"+snap.ID+"/nodes/input-a/toggle", nil, &snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, stateOf(t, snap, "output-sum"))

	var e map[string]string
	resp = c.do("POST", "/api/v1/circuits", map[string]string{"example": "nope"}, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, e["error"], "nope")
}

func TestLoad(t *testing.T) {
	c := newClient(t, editor.Options{})
	var snap editor.Snapshot
	c.do("POST", "/api/v1/circuits", nil, &snap)
	base := "/api/v1/circuits/" + snap.ID

	body := `{"nodes":[{"id":"s","kind":"inputNode","state":true},{"id":"q","kind":"norGate"},{"id":"nq","kind":"norGate"}],
		"edges":[{"source":"s","target":"nq"},{"source":"q","target":"nq"},{"source":"nq","target":"q"}]}`
	req, _ := http.NewRequest("PUT", c.srv.URL+base, strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Positive(t, snap.CycleBreaks)
	assert.Len(t, snap.Edges, 3)

	var e map[string]string
	resp = c.do("PUT", base, map[string]interface{}{
		"nodes": []ls.Node{{ID: "a", Kind: ls.Input}, {ID: "a", Kind: ls.And}},
	}, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestErrors(t *testing.T) {
	c := newClient(t, editor.Options{MaxNodes: 2, MaxTruthInputs: 1})
	var snap editor.Snapshot
	c.do("POST", "/api/v1/circuits", nil, &snap)
	base := "/api/v1/circuits/" + snap.ID

	var nr struct {
		Node ls.Node `json:"node"`
	}
	c.do("POST", base+"/nodes", map[string]interface{}{"kind": "NOT"}, &nr)
	not := nr.Node.ID
	c.do("POST", base+"/nodes", map[string]interface{}{"kind": "INPUT"}, &nr)
	in := nr.Node.ID

	td := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown circuit", "GET", "/api/v1/circuits/nope", nil, http.StatusNotFound},
		{"bad kind", "POST", base + "/nodes", map[string]interface{}{"kind": "LATCH"}, http.StatusBadRequest},
		{"missing kind", "POST", base + "/nodes", map[string]interface{}{"label": "x"}, http.StatusBadRequest},
		{"unknown field", "POST", base + "/nodes", map[string]interface{}{"kind": "AND", "color": "red"}, http.StatusBadRequest},
		{"too many nodes", "POST", base + "/nodes", map[string]interface{}{"kind": "AND"}, http.StatusUnprocessableEntity},
		{"missing target", "POST", base + "/edges", map[string]string{"source": in}, http.StatusBadRequest},
		{"wire into input", "POST", base + "/edges", map[string]string{"source": not, "target": in}, http.StatusBadRequest},
		{"unknown node", "POST", base + "/edges", map[string]string{"source": "zz", "target": not}, http.StatusNotFound},
		{"toggle gate", "POST", base + "/nodes/" + not + "/toggle", nil, http.StatusBadRequest},
		{"state missing", "PUT", base + "/nodes/" + in + "/state", map[string]string{}, http.StatusBadRequest},
		{"remove unknown", "DELETE", base + "/nodes/zz", nil, http.StatusNotFound},
		{"disconnect unknown", "DELETE", base + "/edges/zz", nil, http.StatusNotFound},
		{"no truth table", "GET", base + "/truth-table", nil, http.StatusUnprocessableEntity},
		{"load node without id", "PUT", base, map[string]interface{}{
			"nodes": []map[string]interface{}{{"kind": "INPUT"}},
		}, http.StatusBadRequest},
		{"load wire without source", "PUT", base, map[string]interface{}{
			"nodes": []map[string]interface{}{{"id": "a", "kind": "INPUT"}, {"id": "o", "kind": "OUTPUT"}},
			"edges": []map[string]interface{}{{"target": "o"}},
		}, http.StatusBadRequest},
		{"evaluate node without id", "POST", "/api/v1/evaluate", map[string]interface{}{
			"nodes": []map[string]interface{}{{"kind": "AND"}},
		}, http.StatusBadRequest},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			var e map[string]string
			resp := c.do(d.method, d.path, d.body, &e)
			assert.Equal(t, d.status, resp.StatusCode)
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestEvaluate(t *testing.T) {
	c := newClient(t, editor.Options{})
	body := map[string]interface{}{
		"nodes": []map[string]interface{}{
			{"id": "a", "kind": "INPUT", "state": true},
			{"id": "n", "kind": "NOT"},
			{"id": "o", "kind": "OUTPUT"},
		},
		"edges": []map[string]string{
			{"id": "e1", "source": "a", "target": "n"},
			{"id": "e2", "source": "n", "target": "o"},
			{"id": "e3", "source": "ghost", "target": "n"},
		},
	}
	var res struct {
		Nodes       []ls.Node `json:"nodes"`
		CycleBreaks int       `json:"cycleBreaks"`
	}
	resp := c.do("POST", "/api/v1/evaluate", body, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, res.Nodes, 3)
	assert.Equal(t, []bool{true, false}, res.Nodes[1].Inputs)
	assert.False(t, res.Nodes[1].State)
	assert.False(t, res.Nodes[2].State)
	assert.Zero(t, res.CycleBreaks)
}

func TestMetricsEndpoint(t *testing.T) {
	c := newClient(t, editor.Options{})
	c.do("POST", "/api/v1/circuits", map[string]string{"example": "sr-latch"}, nil)
	resp, err := http.Get(c.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `logicsim_edits_total{op="load",status="ok"} 1`)
	assert.Contains(t, string(b), "logicsim_http_requests_total")
}

// Package docstoretest provides an in-memory document store served over
// httptest, speaking the same REST dialect as the real store.
package docstoretest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type Request struct {
	Method string
	Path   string
	Body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	root     map[string]any
	requests []Request
	failures map[string]int
	keySeq   int
}

// NewServer starts a fake store that is closed when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		root:     map[string]any{},
		failures: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Set stores value (any JSON-marshalable value) at path.
func (s *Server) Set(t *testing.T, path string, value any) {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal %s: %s", path, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %s: %s", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(splitPath(path), v)
}

// Value returns the JSON-decoded value stored at path, or nil.
func (s *Server) Value(path string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(splitPath(path))
}

// Fail makes every request with the given method to path answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+strings.Trim(path, "/")] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request{}, s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(strings.Trim(r.URL.Path, "/"), ".json")
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{Method: r.Method, Path: path, Body: string(body)})
	if status, ok := s.failures[r.Method+" "+path]; ok {
		http.Error(w, `{"error":"injected failure"}`, status)
		return
	}

	segments := splitPath(path)
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.get(segments))
	case http.MethodPut:
		v, ok := decode(w, body)
		if !ok {
			return
		}
		s.set(segments, v)
		writeJSON(w, v)
	case http.MethodPatch:
		v, ok := decode(w, body)
		if !ok {
			return
		}
		fields, isMap := v.(map[string]any)
		if !isMap {
			http.Error(w, `{"error":"patch body must be an object"}`, http.StatusBadRequest)
			return
		}
		for k, fv := range fields {
			s.set(append(append([]string{}, segments...), k), fv)
		}
		writeJSON(w, v)
	case http.MethodPost:
		v, ok := decode(w, body)
		if !ok {
			return
		}
		s.keySeq++
		key := fmt.Sprintf("-K%06d", s.keySeq)
		s.set(append(append([]string{}, segments...), key), v)
		writeJSON(w, map[string]string{"name": key})
	case http.MethodDelete:
		s.delete(segments)
		writeJSON(w, nil)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) get(segments []string) any {
	var cur any = s.root
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

func (s *Server) set(segments []string, v any) {
	if len(segments) == 0 {
		if m, ok := v.(map[string]any); ok {
			s.root = m
		}
		return
	}
	cur := s.root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	last := segments[len(segments)-1]
	if v == nil {
		delete(cur, last)
		return
	}
	cur[last] = v
}

func (s *Server) delete(segments []string) {
	if len(segments) == 0 {
		s.root = map[string]any{}
		return
	}
	s.set(segments, nil)
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func decode(w http.ResponseWriter, body []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return nil, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Package server handles the HTTP API for the versioned key-value store.
// Conditional-request semantics live here: preconditions carried in If-Match
// and If-None-Match headers are evaluated against the store's entity tags,
// and only writes whose precondition holds reach the store.
package server

import (
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/ASHISH26940/selenekv/internal/etag"
	"github.com/ASHISH26940/selenekv/internal/store"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-metrics"
)

// DataStore is the interface our server needs to interact with the storage
// layer. By depending on an interface, we can easily mock the store in our
// tests.
type DataStore interface {
	Get(key string) (store.Entry, bool)
	GetTag(key string) (etag.Tag, bool)
	Put(key string, state []byte) (etag.Tag, error)
	ListKeysWithPrefix(prefix string) iter.Seq[string]
	Clear()
}

// Server is the HTTP front end for the versioned key-value store.
type Server struct {
	store  DataStore
	logger hclog.Logger
	router *http.ServeMux
}

// New creates a new Server instance. A nil logger discards all output.
func New(store DataStore, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		store:  store,
		logger: logger,
		router: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// ServeHTTP makes our Server a standard http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// registerRoutes sets up the HTTP routing for the server.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/kv/", s.handleKV)
	s.router.HandleFunc("/keys", s.handleKeys)
	s.router.HandleFunc("/admin/clear", s.handleClear)
}

// handleKV is the main dispatcher for all /kv/ requests. The path below the
// /kv prefix, leading slash included, is the resource identifier.
func (s *Server) handleKV(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/kv")
	if key == "" || key == "/" {
		http.Error(w, "Key is missing", http.StatusBadRequest)
		return
	}

	reqID := uuid.NewString()
	defer metrics.MeasureSince([]string{"http", strings.ToLower(r.Method)}, time.Now())
	s.logger.Debug("handling request", "method", r.Method, "key", key, "request_id", reqID)

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r, key)
	case http.MethodHead:
		s.handleHead(w, key)
	case http.MethodPut:
		s.handlePut(w, r, key, reqID)
	default:
		// The store has no per-key removal; DELETE lands here on purpose.
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet serves read requests. A matching If-None-Match means the caller
// already holds the current version and only the tag is sent back.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, key string) {
	entry, ok := s.store.Get(key)
	if !ok {
		metrics.IncrCounter([]string{"http", "miss"}, 1)
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}

	if header := r.Header.Get("If-None-Match"); header != "" {
		if !etag.NoneMatch(header, entry.Tag, true) {
			w.Header().Set("ETag", etag.Quote(entry.Tag))
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("ETag", etag.Quote(entry.Tag))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(entry.State)
}

// handleHead serves tag-only lookups: the status and ETag of a GET without
// the payload, for callers that only need the current version token.
func (s *Server) handleHead(w http.ResponseWriter, key string) {
	tag, ok := s.store.GetTag(key)
	if !ok {
		metrics.IncrCounter([]string{"http", "miss"}, 1)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("ETag", etag.Quote(tag))
	w.WriteHeader(http.StatusOK)
}

// handlePut serves write requests. The request body is stored verbatim as
// the new state. If-Match and If-None-Match preconditions are checked
// against the current tag first; a failed precondition leaves the store
// untouched.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request, key, reqID string) {
	state, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	current, exists := s.store.GetTag(key)

	if header := r.Header.Get("If-Match"); header != "" {
		if !etag.Match(header, current, exists) {
			s.rejectPrecondition(w, key, reqID)
			return
		}
	}
	if header := r.Header.Get("If-None-Match"); header != "" {
		if !etag.NoneMatch(header, current, exists) {
			s.rejectPrecondition(w, key, reqID)
			return
		}
	}

	tag, err := s.store.Put(key, state)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.logger.Info("stored state", "key", key, "etag", string(tag), "request_id", reqID)
	w.Header().Set("ETag", etag.Quote(tag))
	if exists {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
}

// rejectPrecondition reports a conditional write whose guard did not hold.
func (s *Server) rejectPrecondition(w http.ResponseWriter, key, reqID string) {
	metrics.IncrCounter([]string{"http", "precondition_failed"}, 1)
	s.logger.Info("rejected conditional write", "key", key, "request_id", reqID)
	http.Error(w, "Precondition failed", http.StatusPreconditionFailed)
}

// handleKeys serves namespace listings: every key starting with the prefix
// query parameter, in insertion order. An empty prefix lists everything.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer metrics.MeasureSince([]string{"http", "list"}, time.Now())

	keys := make([]string, 0)
	for key := range s.store.ListKeysWithPrefix(r.URL.Query().Get("prefix")) {
		keys = append(keys, key)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(keys); err != nil {
		s.logger.Error("failed to encode key listing", "error", err)
	}
}

// handleClear serves the administrative reset: every entry is dropped.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.store.Clear()
	metrics.IncrCounter([]string{"http", "clear"}, 1)
	s.logger.Info("store cleared")
	w.WriteHeader(http.StatusNoContent)
}

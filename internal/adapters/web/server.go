// Package web exposes a read-only JSON view of a scanned tree over HTTP on
// localhost. The serve command keeps the backing index fresh via the file
// watcher; handlers only ever read snapshots.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/marek/symq/internal/domain/outline"
	"github.com/marek/symq/internal/ports"
)

// Server serves the JSON API over HTTP.
type Server struct {
	index     *Index
	languages []string
	listener  net.Listener
	httpSrv   *http.Server
	port      int
	started   time.Time
	stopOnce  sync.Once
}

// NewServer creates an HTTP server over the given index. languages is the
// static list reported by /v1/langs.
func NewServer(index *Index, languages []string) *Server {
	return &Server{index: index, languages: languages}
}

// DefaultAddr computes a root-specific loopback address: port
// 17000 + (hash(abs root) % 1000), so two symq instances on different trees
// rarely collide.
func DefaultAddr(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	h := sha256.Sum256([]byte(abs))
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return fmt.Sprintf("127.0.0.1:%d", 17000+int(n%1000))
}

// Start begins listening on addr ("127.0.0.1:0" picks an ephemeral port).
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/files", s.handleFiles)
	mux.HandleFunc("GET /v1/symbols", s.handleSymbols)
	mux.HandleFunc("GET /v1/outline", s.handleOutline)
	mux.HandleFunc("GET /v1/langs", s.handleLangs)

	s.httpSrv = &http.Server{Handler: mux}
	go s.httpSrv.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

type healthResponse struct {
	Status string `json:"status"`
	Root   string `json:"root"`
	Files  int    `json:"files"`
	Errors int    `json:"errors"`
	Uptime string `json:"uptime"`
}

type filesResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

type symbolsResponse struct {
	Path     string         `json:"path"`
	Language string         `json:"language"`
	Symbols  []ports.Symbol `json:"symbols"`
}

type langsResponse struct {
	Languages []string `json:"languages"`
	Count     int      `json:"count"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	snap := s.index.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Root:   s.index.Root(),
		Files:  len(snap.Results),
		Errors: len(snap.Errors),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	snap := s.index.Snapshot()
	paths := snap.Paths()
	writeJSON(w, http.StatusOK, filesResponse{Files: paths, Count: len(paths)})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}
	snap := s.index.Snapshot()
	fr, ok := snap.Results[rel]
	if !ok {
		if msg, failed := snap.Errors[rel]; failed {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		writeError(w, http.StatusNotFound, "unknown path")
		return
	}
	writeJSON(w, http.StatusOK, symbolsResponse{Path: rel, Language: fr.Language, Symbols: fr.Symbols})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	snap := s.index.Snapshot()
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, outline.Markdown(snap))
}

func (s *Server) handleLangs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, langsResponse{Languages: s.languages, Count: len(s.languages)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

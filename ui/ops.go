package ui

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"pregame/domain/copyedit"
	"pregame/internal/config"
)

const pingTimeout = 2 * time.Second

// OpsServer is the internal ops/debug server: health probes, pprof, and a
// read-only view of the active voice-lint table. Never exposed publicly.
type OpsServer struct {
	db  *sqlx.DB
	cfg config.OpsConfig
}

// NewOpsServer creates the ops server
func NewOpsServer(db *sqlx.DB, cfg config.OpsConfig) *OpsServer {
	return &OpsServer{db: db, cfg: cfg}
}

// Run starts the ops server and blocks
func (s *OpsServer) Run() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/api/lint/table", s.handleLintTable)

	r.HandleFunc("/debug/pprof/", pprof.Index)
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)

	addr := ":" + s.cfg.Port
	log.Printf("[Ops] Listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady checks the database; readiness fails while the pool cannot
// reach Postgres
func (s *OpsServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		http.Error(w, "database unreachable: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// handleLintTable exposes the active voice-lint table so support can see
// exactly which phrasing rewrites a given build applies
func (s *OpsServer) handleLintTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(copyedit.TableInfo())
}

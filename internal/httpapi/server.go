// Package httpapi hosts the engine behind a REST surface: validation,
// upstream resolution, completion, migration, and workflow CRUD backed
// by the configured store.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fieldline/conduit"
	"github.com/fieldline/conduit/internal/metrics"
	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/persist"
	"github.com/fieldline/conduit/pkg/upstream"
)

// Server wires the engine and metrics into a chi router.
type Server struct {
	engine  *conduit.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *conduit.Engine, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	s := &Server{engine: engine, metrics: m, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Handle("/metrics", m.Handler())

	r.Post("/workflows/validate", s.validateWorkflow)
	r.Post("/workflows/upstream", s.upstreamCandidates)
	r.Post("/workflows/complete", s.complete)
	r.Post("/migrations/job", s.migrateJob)

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.listWorkflows)
		r.Put("/{id}", s.saveWorkflow)
		r.Get("/{id}", s.getWorkflow)
		r.Delete("/{id}", s.deleteWorkflow)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":        "conduit-http",
		"version":    conduit.Version,
		"node_types": s.engine.Catalog().Types(),
	})
}

// validateWorkflow accepts a persisted workflow document and returns
// the full diagnostic report.
func (s *Server) validateWorkflow(w http.ResponseWriter, r *http.Request) {
	var doc persist.Workflow
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("validate: invalid request body", "error", err)
		return
	}

	started := time.Now()
	report := s.engine.Validate(persist.Deserialize(doc))
	s.metrics.ObserveValidation(report.HasErrors(), time.Since(started).Seconds())

	s.writeJSON(w, http.StatusOK, map[string]any{
		"issues":  report.Issues,
		"summary": report.Summary(),
		"valid":   !report.HasErrors(),
	})
}

type upstreamRequest struct {
	NodeID   string           `json:"node_id"`
	Workflow persist.Workflow `json:"workflow"`
	Query    string           `json:"query,omitempty"`
}

// upstreamCandidates lists the expression candidates visible from a node.
func (s *Server) upstreamCandidates(w http.ResponseWriter, r *http.Request) {
	var body upstreamRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("upstream: invalid request body", "error", err)
		return
	}
	if body.NodeID == "" {
		http.Error(w, "node_id is required", http.StatusBadRequest)
		return
	}

	s.metrics.UpstreamQueries.Inc()
	cands := upstream.Filter(
		s.engine.Upstream(body.NodeID, persist.Deserialize(body.Workflow)),
		body.Query,
	)
	s.writeJSON(w, http.StatusOK, map[string]any{"candidates": cands})
}

type completeRequest struct {
	NodeID   string           `json:"node_id"`
	Workflow persist.Workflow `json:"workflow"`
	Text     string           `json:"text"`
	Cursor   int              `json:"cursor"`
}

// complete returns the candidates matching the expression being typed
// at the cursor. Outside an open placeholder the list is empty.
func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	var body completeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("complete: invalid request body", "error", err)
		return
	}
	if body.Cursor < 0 || body.Cursor > len(body.Text) {
		http.Error(w, "cursor out of range", http.StatusBadRequest)
		return
	}

	cands := s.engine.Complete(body.NodeID, persist.Deserialize(body.Workflow), body.Text, body.Cursor)
	s.writeJSON(w, http.StatusOK, map[string]any{"candidates": cands})
}

// migrateJob converts a legacy flat job into a workflow document and
// reports how the result validates.
func (s *Server) migrateJob(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("migrate: invalid request body", "error", err)
		return
	}

	migrated, report, err := s.engine.MigrateJob(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Migration error: %v", err), http.StatusUnprocessableEntity)
		s.logger.Warn("migrate: rejected job", "error", err)
		return
	}
	s.metrics.Migrations.Inc()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"workflow": persist.Serialize(migrated),
		"issues":   report.Issues,
		"summary":  report.Summary(),
	})
}

func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("list failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"workflows": ids})
}

func (s *Server) saveWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc persist.Workflow
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("save: invalid request body", "error", err)
		return
	}

	wf := persist.Deserialize(doc)
	wf.ID = id
	if err := s.engine.Save(r.Context(), wf); err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.logger.Error("save failed", "workflow_id", id, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	wf, err := s.engine.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, graph.ErrWorkflowNotFound) {
			http.Error(w, "Workflow not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("load failed", "workflow_id", id, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, persist.Serialize(wf))
}

func (s *Server) deleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.engine.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("delete failed", "workflow_id", id, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

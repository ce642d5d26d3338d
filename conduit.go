package conduit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/expr"
	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/migrate"
	"github.com/fieldline/conduit/pkg/persist"
	"github.com/fieldline/conduit/pkg/ports"
	"github.com/fieldline/conduit/pkg/upstream"
	"github.com/fieldline/conduit/pkg/validate"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "0.3.0-dev"

// Engine is the high-level entry point for the Conduit library.
// It binds a node-type catalog and an optional workflow store behind a
// simplified API for consumers.
type Engine struct {
	catalog      *catalog.Registry
	catalogFiles []string
	store        ports.WorkflowStore
	env          map[string]string
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the builtin node-type catalog.
func WithCatalog(reg *catalog.Registry) Option {
	return func(e *Engine) {
		e.catalog = reg
	}
}

// WithCatalogFiles merges YAML catalog files over the builtin types.
// Files are loaded in New, so load errors surface there.
func WithCatalogFiles(paths ...string) Option {
	return func(e *Engine) {
		e.catalogFiles = append(e.catalogFiles, paths...)
	}
}

// WithStore attaches a workflow store for Save/Load/Delete/List.
func WithStore(store ports.WorkflowStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithEnv sets the environment map used when resolving $env references.
// Without it, resolution reads the process environment.
func WithEnv(env map[string]string) Option {
	return func(e *Engine) {
		e.env = env
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a Conduit Engine with the builtin catalog unless
// options override it.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if len(eng.catalogFiles) > 0 {
		if eng.catalog != nil {
			return nil, fmt.Errorf("WithCatalog and WithCatalogFiles are mutually exclusive")
		}
		reg, err := catalog.LoadRegistry(eng.catalogFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.catalog = reg
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Builtin()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return eng, nil
}

// Catalog returns the node-type catalog the engine validates against.
func (e *Engine) Catalog() *catalog.Registry {
	return e.catalog
}

// Validate checks the workflow against the catalog and returns the
// full diagnostic report.
func (e *Engine) Validate(w *graph.Workflow) validate.Report {
	report := validate.Validate(w, e.catalog)
	s := report.Summary()
	e.logger.Debug("workflow validated",
		"workflow_id", w.ID,
		"errors", s.Errors,
		"warnings", s.Warnings,
	)
	return report
}

// Upstream returns the expression candidates visible from the given
// node, globals last.
func (e *Engine) Upstream(nodeID string, w *graph.Workflow) []upstream.Candidate {
	return upstream.Resolve(nodeID, w, e.catalog)
}

// Complete returns the upstream candidates matching the expression
// being typed at cursor, or nil when the cursor is not inside an open
// placeholder.
func (e *Engine) Complete(nodeID string, w *graph.Workflow, text string, cursor int) []upstream.Candidate {
	_, filter, ok := expr.ActiveExpression(text, cursor)
	if !ok {
		return nil
	}
	return upstream.Filter(e.Upstream(nodeID, w), filter)
}

// Resolve renders every placeholder in template against the runtime
// context. Missing references resolve to "" and are reported as
// warnings; resolution never fails.
func (e *Engine) Resolve(template string, ctx expr.Context) (string, []expr.Warning) {
	if ctx.Env == nil {
		ctx.Env = e.environ()
	}
	return expr.Resolve(template, ctx)
}

func (e *Engine) environ() map[string]string {
	if e.env != nil {
		return e.env
	}
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Serialize converts a workflow to its persisted JSON bytes.
func (e *Engine) Serialize(w *graph.Workflow) ([]byte, error) {
	return persist.Encode(w)
}

// Deserialize parses persisted JSON bytes into a workflow.
func (e *Engine) Deserialize(data []byte) (*graph.Workflow, error) {
	return persist.Decode(data)
}

// MigrateJob converts a legacy flat job document into a workflow and
// validates the result against the catalog.
func (e *Engine) MigrateJob(data []byte) (*graph.Workflow, validate.Report, error) {
	job, err := migrate.DecodeJob(data)
	if err != nil {
		return nil, validate.Report{}, fmt.Errorf("failed to decode legacy job: %w", err)
	}
	w := migrate.Migrate(job)
	return w, validate.Validate(w, e.catalog), nil
}

// Save persists the workflow through the configured store.
func (e *Engine) Save(ctx context.Context, w *graph.Workflow) error {
	if e.store == nil {
		return fmt.Errorf("no workflow store configured")
	}
	return e.store.Save(ctx, w)
}

// Load retrieves a workflow from the configured store.
// Returns graph.ErrWorkflowNotFound if it does not exist.
func (e *Engine) Load(ctx context.Context, id string) (*graph.Workflow, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no workflow store configured")
	}
	return e.store.Load(ctx, id)
}

// Delete removes a workflow from the configured store.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("no workflow store configured")
	}
	return e.store.Delete(ctx, id)
}

// List returns the stored workflow IDs.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no workflow store configured")
	}
	return e.store.List(ctx)
}

// Store returns the configured workflow store, or nil.
func (e *Engine) Store() ports.WorkflowStore {
	return e.store
}

// Package mcp exposes the engine as a Model Context Protocol server so
// agent tooling can validate workflows, resolve upstream candidates,
// and migrate legacy jobs over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fieldline/conduit"
	"github.com/fieldline/conduit/pkg/persist"
	"github.com/fieldline/conduit/pkg/upstream"
	"github.com/fieldline/conduit/pkg/validate"
)

// ValidateResponse is the structured result of the validate_workflow tool.
type ValidateResponse struct {
	Valid   bool             `json:"valid" jsonschema_description:"True when no error-severity issues were found"`
	Issues  []validate.Issue `json:"issues" jsonschema_description:"All findings, errors and warnings alike"`
	Summary validate.Summary `json:"summary" jsonschema_description:"Issue counts per severity"`
}

// UpstreamResponse is the structured result of the resolve_upstream tool.
type UpstreamResponse struct {
	Candidates []upstream.Candidate `json:"candidates" jsonschema_description:"Referenceable data sources, globals last"`
}

// MigrateResponse is the structured result of the migrate_job tool.
type MigrateResponse struct {
	Workflow persist.Workflow `json:"workflow" jsonschema_description:"The migrated workflow document"`
	Issues   []validate.Issue `json:"issues" jsonschema_description:"How the migrated workflow validates"`
}

// Server wraps the Conduit Engine and exposes it as an MCP Server.
type Server struct {
	engine    *conduit.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *conduit.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("conduit-mcp", strings.TrimSpace(conduit.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_workflow
	validateTool := mcp.NewTool("validate_workflow",
		mcp.WithDescription("Validate a workflow document against the node-type catalog. Returns every structural, type, platform and reachability finding."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("The persisted workflow JSON document")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: resolve_upstream
	upstreamTool := mcp.NewTool("resolve_upstream",
		mcp.WithDescription("List the data sources a node's expressions may reference: direct-predecessor outputs plus the $input and $env globals."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("The persisted workflow JSON document")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("The node whose parameters are being edited")),
		mcp.WithString("query", mcp.Description("Optional case-insensitive filter over labels and expressions")),
		mcp.WithOutputSchema[UpstreamResponse](),
	)
	s.mcpServer.AddTool(upstreamTool, mcp.NewStructuredToolHandler(s.handleUpstream))

	// TOOL: migrate_job
	migrateTool := mcp.NewTool("migrate_job",
		mcp.WithDescription("Convert a legacy flat job document into a workflow graph and report how the result validates."),
		mcp.WithString("job", mcp.Required(), mcp.Description("The legacy job JSON document")),
		mcp.WithOutputSchema[MigrateResponse](),
	)
	s.mcpServer.AddTool(migrateTool, mcp.NewStructuredToolHandler(s.handleMigrate))
}

// Handler methods for structured tools

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	raw, _ := args["workflow"].(string)

	w, err := s.engine.Deserialize([]byte(raw))
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("invalid workflow document: %w", err)
	}

	report := s.engine.Validate(w)
	return ValidateResponse{
		Valid:   !report.HasErrors(),
		Issues:  report.Issues,
		Summary: report.Summary(),
	}, nil
}

func (s *Server) handleUpstream(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UpstreamResponse, error) {
	raw, _ := args["workflow"].(string)
	nodeID, _ := args["node_id"].(string)
	query, _ := args["query"].(string)

	if nodeID == "" {
		return UpstreamResponse{}, fmt.Errorf("node_id is required")
	}
	w, err := s.engine.Deserialize([]byte(raw))
	if err != nil {
		return UpstreamResponse{}, fmt.Errorf("invalid workflow document: %w", err)
	}

	cands := upstream.Filter(s.engine.Upstream(nodeID, w), query)
	return UpstreamResponse{Candidates: cands}, nil
}

func (s *Server) handleMigrate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MigrateResponse, error) {
	raw, _ := args["job"].(string)

	w, report, err := s.engine.MigrateJob([]byte(raw))
	if err != nil {
		return MigrateResponse{}, fmt.Errorf("migration failed: %w", err)
	}

	return MigrateResponse{
		Workflow: persist.Serialize(w),
		Issues:   report.Issues,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: conduit://catalog
	s.mcpServer.AddResource(mcp.NewResource("conduit://catalog", "Node Type Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		types := s.engine.Catalog().Types()
		defs := make([]any, 0, len(types))
		for _, nodeType := range types {
			if def, ok := s.engine.Catalog().Definition(nodeType); ok {
				defs = append(defs, def)
			}
		}
		jsonBytes, err := json.Marshal(defs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "conduit://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

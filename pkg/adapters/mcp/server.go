// Package mcp exposes the defaulting engine as Model Context Protocol tools.
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

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/adapters/file"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/ports"
	"github.com/aretw0/indicator/pkg/schema"
)

// SchemaURI is the resource holding the trace schema.
const SchemaURI = "indicator://schema"

// Engine defines the interface required by the MCP server.
type Engine interface {
	SupplyAll(ctx context.Context, doc *domain.Document) ([]*indicator.Result, error)
	Lint(traceIn map[string]any) error
	Schema() schema.Object
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	source    ports.DocumentSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. source may be nil, in which
// case the document tools are not registered.
func NewServer(engine Engine, source ports.DocumentSource) *Server {
	s := &Server{
		engine:    engine,
		source:    source,
		mcpServer: server.NewMCPServer("indicator-mcp", strings.TrimSpace(indicator.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: supply_defaults
	supplyTool := mcp.NewTool("supply_defaults",
		mcp.WithDescription("Resolve an indicator document (or a single bare trace) into fully populated traces. Malformed values are replaced and listed."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document as JSON or YAML: {layout, traces} or one trace")),
		mcp.WithBoolean("private", mcp.Description("Keep internal keys such as _hasGauge in the output")),
		mcp.WithOutputSchema[dto.Report](),
	)
	s.mcpServer.AddTool(supplyTool, mcp.NewStructuredToolHandler(s.handleSupplyDefaults))

	// TOOL: lint_document
	lintTool := mcp.NewTool("lint_document",
		mcp.WithDescription("List the values of a document that defaulting would replace or ignore, without resolving it."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document as JSON or YAML")),
		mcp.WithOutputSchema[dto.LintReport](),
	)
	s.mcpServer.AddTool(lintTool, mcp.NewStructuredToolHandler(s.handleLint))

	if s.source == nil {
		return
	}

	// TOOL: list_documents
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the IDs of the stored indicator documents."),
	), s.handleListDocuments)

	// TOOL: resolve_document
	resolveTool := mcp.NewTool("resolve_document",
		mcp.WithDescription("Resolve a stored document by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
		mcp.WithBoolean("private", mcp.Description("Keep internal keys in the output")),
		mcp.WithOutputSchema[dto.Report](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolveDocument))
}

// Handler methods for structured tools

func (s *Server) handleSupplyDefaults(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.Report, error) {
	doc, err := parseDocument(args)
	if err != nil {
		return dto.Report{}, err
	}
	return s.resolve(ctx, doc, args)
}

func (s *Server) handleLint(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.LintReport, error) {
	doc, err := parseDocument(args)
	if err != nil {
		return dto.LintReport{}, err
	}
	return dto.Lint(s.engine, doc.ID, doc.Traces), nil
}

func (s *Server) handleResolveDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.Report, error) {
	id, _ := args["id"].(string)
	doc, err := s.source.Get(ctx, id)
	if err != nil {
		return dto.Report{}, fmt.Errorf("lookup failed: %w", err)
	}
	return s.resolve(ctx, doc, args)
}

func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.source.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) resolve(ctx context.Context, doc *domain.Document, args map[string]interface{}) (dto.Report, error) {
	results, err := s.engine.SupplyAll(ctx, doc)
	if err != nil {
		return dto.Report{}, fmt.Errorf("defaults failed: %w", err)
	}
	private, _ := args["private"].(bool)
	return dto.NewReport(doc.ID, results, private), nil
}

func parseDocument(args map[string]interface{}) (*domain.Document, error) {
	raw, _ := args["document"].(string)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("document is required")
	}
	// YAML is a superset of JSON, so one parser serves both.
	doc, err := file.Parse([]byte(raw), file.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

func (s *Server) registerResources() {
	// EXPOSE: indicator://schema
	s.mcpServer.AddResource(mcp.NewResource(SchemaURI, "Indicator Trace Schema",
		mcp.WithResourceDescription("Every attribute a trace may set, with its type and default."),
		mcp.WithMIMEType("application/json"),
	), s.readSchema)
}

func (s *Server) readSchema(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.engine.Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SchemaURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/internal/presentation/graph"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultDiagram is used when a tool call names no diagram.
const DefaultDiagram = "default"

const uriPrefix = "tessera://diagram/"

// EngageArgs are the arguments of the engage_node tool.
type EngageArgs struct {
	Diagram    string `json:"diagram,omitempty"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Descriptor string `json:"descriptor"`
}

// RemoveArgs are the arguments of the remove_node tool.
type RemoveArgs struct {
	Diagram string `json:"diagram,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// DiagramArgs select a diagram.
type DiagramArgs struct {
	Diagram string `json:"diagram,omitempty"`
}

// Server wraps the diagram service and exposes it as an MCP Server.
type Server struct {
	sessions  ports.DiagramService
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions ports.DiagramService, opts ...Option) *Server {
	s := &Server{
		sessions: sessions,
		mcpServer: server.NewMCPServer("tessera-mcp", strings.TrimSpace(tessera.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on port until ctx is done.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: engage_node
	s.mcpServer.AddTool(mcp.NewTool("engage_node",
		mcp.WithDescription("Place a shape on the attachment point at (x, y). New attachment points appear around it."),
		mcp.WithString("diagram", mcp.Description("Diagram ID (default: \"default\")")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Grid column, positive to the east")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Grid row, positive to the north")),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description("Shape outline to place")),
		mcp.WithOutputSchema[domain.ChangeSet](),
	), mcp.NewStructuredToolHandler(s.handleEngage))

	// TOOL: remove_node
	s.mcpServer.AddTool(mcp.NewTool("remove_node",
		mcp.WithDescription("Remove the shape at (x, y) together with the attachment points that no longer lead anywhere."),
		mcp.WithString("diagram", mcp.Description("Diagram ID (default: \"default\")")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Grid column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Grid row")),
		mcp.WithOutputSchema[domain.ChangeSet](),
	), mcp.NewStructuredToolHandler(s.handleRemove))

	// TOOL: get_diagram
	s.mcpServer.AddTool(mcp.NewTool("get_diagram",
		mcp.WithDescription("Get every node of a diagram and its bound. Creates the diagram if it does not exist."),
		mcp.WithString("diagram", mcp.Description("Diagram ID (default: \"default\")")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleGetDiagram))
}

// Handler methods for structured tools

func (s *Server) handleEngage(ctx context.Context, request mcp.CallToolRequest, args EngageArgs) (domain.ChangeSet, error) {
	id := diagramID(args.Diagram)
	cs, err := s.sessions.Engage(ctx, id, args.X, args.Y, args.Descriptor)
	if err != nil {
		s.logger.Warn("MCP engage rejected", "diagram", id, "x", args.X, "y", args.Y, "err", err)
		return domain.ChangeSet{}, err
	}
	return cs, nil
}

func (s *Server) handleRemove(ctx context.Context, request mcp.CallToolRequest, args RemoveArgs) (domain.ChangeSet, error) {
	id := diagramID(args.Diagram)
	cs, err := s.sessions.Remove(ctx, id, args.X, args.Y)
	if err != nil {
		s.logger.Warn("MCP remove rejected", "diagram", id, "x", args.X, "y", args.Y, "err", err)
		return domain.ChangeSet{}, err
	}
	return cs, nil
}

func (s *Server) handleGetDiagram(ctx context.Context, request mcp.CallToolRequest, args DiagramArgs) (domain.Snapshot, error) {
	return s.sessions.LoadOrCreate(ctx, diagramID(args.Diagram))
}

func (s *Server) registerResources() {
	// EXPOSE: tessera://diagram/default
	s.mcpServer.AddResource(mcp.NewResource(uriPrefix+DefaultDiagram, "Default Diagram",
		mcp.WithResourceDescription("Nodes and bound of the default diagram"),
		mcp.WithMIMEType("application/json"),
	), s.readDiagram)

	// EXPOSE: tessera://diagram/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(uriPrefix+"{id}", "Diagram",
		mcp.WithTemplateDescription("Nodes and bound of a named diagram"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readDiagram)

	// EXPOSE: tessera://diagram/{id}/mermaid
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(uriPrefix+"{id}/mermaid", "Diagram Flowchart",
		mcp.WithTemplateDescription("Mermaid flowchart of a named diagram"),
		mcp.WithTemplateMIMEType("text/plain"),
	), s.readMermaid)
}

func (s *Server) readDiagram(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(request.Params.URI, uriPrefix)
	snap, err := s.sessions.LoadOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram %s: %w", id, err)
	}
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readMermaid(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimSuffix(strings.TrimPrefix(request.Params.URI, uriPrefix), "/mermaid")
	snap, err := s.sessions.Snapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram %s: %w", id, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     graph.GenerateMermaid(snap, nil),
		},
	}, nil
}

func diagramID(id string) string {
	if id == "" {
		return DefaultDiagram
	}
	return id
}

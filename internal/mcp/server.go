// Package mcp provides an MCP (Model Context Protocol) server for tscat.
// This allows AI agents to query extracted catalogs through MCP tools
// instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dylan-gluck/cognee-agent/internal/config"
	"github.com/dylan-gluck/cognee-agent/internal/extract"
	"github.com/dylan-gluck/cognee-agent/internal/store"
)

// Server wraps the MCP server with tscat-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	store        *store.Store
	cfg          *config.Config
	tscatDir     string
	projectRoot  string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// DefaultTools is the default set of tools to expose
var DefaultTools = []string{"tscat_extract", "tscat_files", "tscat_find"}

// AllTools lists all available tools
var AllTools = []string{"tscat_extract", "tscat_files", "tscat_find", "tscat_catalog"}

// New creates a new MCP server for tscat
func New(cfg Config) (*Server, error) {
	tscatDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("tscat not initialized: run 'tscat init && tscat extract' first")
	}
	projectRoot := filepath.Dir(tscatDir)

	appCfg, err := config.Load(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	storeDB, err := store.Open(tscatDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"tscat",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		store:        storeDB,
		cfg:          appCfg,
		tscatDir:     tscatDir,
		projectRoot:  projectRoot,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			storeDB.Close()
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "tscat_extract":
		return s.registerExtractTool()
	case "tscat_files":
		return s.registerFilesTool()
	case "tscat_find":
		return s.registerFindTool()
	case "tscat_catalog":
		return s.registerCatalogTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "tscat serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Close closes the server and its resources
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// registerExtractTool registers the tscat_extract tool
func (s *Server) registerExtractTool() error {
	tool := mcp.NewTool("tscat_extract",
		mcp.WithDescription("Extract a declaration catalog from a TypeScript/TSX file. Returns imports, exports, functions, classes, methods, interfaces, type aliases, and enums with source spans."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the project root"),
		),
		mcp.WithString("mode",
			mcp.Description("Extraction mode: detailed (default) or raw"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the catalog to .tscat/catalog.db"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleExtract)
	return nil
}

// registerFilesTool registers the tscat_files tool
func (s *Server) registerFilesTool() error {
	tool := mcp.NewTool("tscat_files",
		mcp.WithDescription("List all cataloged files with their record counts."),
	)

	s.mcpServer.AddTool(tool, s.handleFiles)
	return nil
}

// registerFindTool registers the tscat_find tool
func (s *Server) registerFindTool() error {
	tool := mcp.NewTool("tscat_find",
		mcp.WithDescription("Search declaration records across all cataloged files."),
		mcp.WithString("pattern",
			mcp.Description("Name pattern (SQL LIKE syntax, e.g. 'use%')"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by record type: import, export, function, class, method, interface, type_alias, enum"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 50)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFind)
	return nil
}

// registerCatalogTool registers the tscat_catalog tool
func (s *Server) registerCatalogTool() error {
	tool := mcp.NewTool("tscat_catalog",
		mcp.WithDescription("Load the stored catalog for a previously extracted file."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the project root"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleCatalog)
	return nil
}

func (s *Server) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}
	path = s.resolvePath(path)

	opts := s.extractOptions()
	if modeArg, ok := args["mode"].(string); ok && modeArg != "" {
		mode, err := extract.ParseMode(modeArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Mode = mode
	}

	cat, err := extract.Extract(s.projectRoot, path, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if save, _ := args["save"].(bool); save {
		if err := s.store.SaveCatalog(cat); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save catalog: %v", err)), nil
		}
	}

	return jsonResult(cat)
}

func (s *Server) handleFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	entries, err := s.store.ListFiles()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entries)
}

func (s *Server) handleFind(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	pattern, _ := args["pattern"].(string)
	recordType, _ := args["type"].(string)

	limit := 50
	if l, ok := args["limit"].(float64); ok {
		limit = int(l)
	}

	entries, err := s.store.FindRecords(recordType, pattern)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return jsonResult(entries)
}

func (s *Server) handleCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	cat, err := s.store.GetCatalog(s.resolvePath(path))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog for %s: %v", path, err)), nil
	}
	return jsonResult(cat)
}

func (s *Server) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.projectRoot, path)
}

func (s *Server) extractOptions() extract.Options {
	opts := extract.DefaultOptions()
	if mode, err := extract.ParseMode(s.cfg.Extract.Mode); err == nil {
		opts.Mode = mode
	}
	opts.ReexportImports = s.cfg.ReexportImportsEnabled()
	return opts
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/docs"
	"github.com/jcdickinson/ferrisdoc/internal/render"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	docs      *docs.Service
	format    config.Format
	theme     render.Theme
}

func NewServer(cfg *config.Config, svc *docs.Service) (*Server, error) {
	// Tool results are plain text, so terminal output carries no escape codes.
	theme, err := render.NewTheme(lipgloss.NewRenderer(io.Discard), cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("building theme: %w", err)
	}

	s := &Server{docs: svc, format: cfg.Output.Format, theme: theme}
	if s.format == "" {
		s.format = config.FormatMarkdown
	}

	mcpServer := server.NewMCPServer(
		"ferrisdoc",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s, nil
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	formats := make([]string, len(config.Formats))
	for i, f := range config.Formats {
		formats[i] = string(f)
	}

	mcpServer.AddTool(
		mcp.NewTool("parse_page",
			mcp.WithDescription("Parse a rustdoc HTML page and render its documentation."),
			mcp.WithString("path",
				mcp.Description("Local path, .zst file or http(s) URL of a rustdoc item page"),
				mcp.Required(),
			),
			mcp.WithString("format",
				mcp.Description("Output format (default markdown)"),
				mcp.Enum(formats...),
			),
			mcp.WithString("section",
				mcp.Description("Only keep sections whose heading fuzzily matches this query"),
			),
		),
		s.handleParsePage,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_sections",
			mcp.WithDescription("List the sections of a rustdoc HTML page with their kind and number of records."),
			mcp.WithString("path",
				mcp.Description("Local path, .zst file or http(s) URL of a rustdoc item page"),
				mcp.Required(),
			),
		),
		s.handleListSections,
	)
}

func (s *Server) handleParsePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	format := s.format
	if raw, ok := args["format"].(string); ok && raw != "" {
		f, err := config.ParseFormat(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	page, err := s.docs.Get(ctx, path, docs.GetOptions{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse page: %v", err)), nil
	}
	if query, _ := args["section"].(string); query != "" {
		filtered := *page
		filtered.MainContent = page.FilterSections(query)
		page = &filtered
	}

	out, err := render.String(page, format, s.theme)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render page: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleListSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	page, err := s.docs.Get(ctx, path, docs.GetOptions{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse page: %v", err)), nil
	}

	return jsonResult(page.Summary()), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	resultJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(resultJSON))
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}

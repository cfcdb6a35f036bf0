package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/docs"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

const fixture = "../rustdoc/testdata/widget.html"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Output: config.OutputConfig{Format: config.FormatMarkdown},
		Parse:  config.ParseConfig{Concurrency: 2},
		Fetch:  config.FetchConfig{TimeoutSeconds: 5},
	}
	s, err := NewServer(cfg, docs.NewService(cfg, nil))
	require.NoError(t, err)
	return s
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	res, err := s.handleParsePage(context.Background(), call("parse_page", map[string]any{"path": fixture}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "# Struct demo::Widget")
	assert.Contains(t, out, "## Trait Implementations")
}

func TestParsePage_SectionFilterAndFormat(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	res, err := s.handleParsePage(context.Background(), call("parse_page", map[string]any{
		"path":    fixture,
		"format":  "json",
		"section": "fields",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var page rustdoc.Page
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &page))
	require.Len(t, page.MainContent, 1)
	assert.Equal(t, "Fields", page.MainContent[0].Title())
}

func TestParsePage_Errors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing_path", map[string]any{}, "missing required parameter"},
		{"bad_format", map[string]any{"path": fixture, "format": "pdf"}, "unknown output format"},
		{"missing_file", map[string]any{"path": "testdata/nope.html"}, "failed to parse page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleParsePage(context.Background(), call("parse_page", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.True(t, strings.Contains(resultText(t, res), tt.want), resultText(t, res))
		})
	}
}

func TestListSections(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	res, err := s.handleListSections(context.Background(), call("list_sections", map[string]any{"path": fixture}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []rustdoc.SectionSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 6)
	assert.Equal(t, rustdoc.SectionSummary{Name: "Fields", Kind: rustdoc.SectionFields, Records: 2}, got[0])
	assert.Equal(t, rustdoc.SectionSummary{Name: "Frobnicators", Kind: rustdoc.SectionUnknown, Records: 1}, got[5])
}

func TestJSONResult(t *testing.T) {
	t.Parallel()

	res := jsonResult(map[string]int{"records": 2})
	require.False(t, res.IsError)
	assert.JSONEq(t, `{"records": 2}`, resultText(t, res))

	res = jsonResult(make(chan int))
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "failed to encode result")
}

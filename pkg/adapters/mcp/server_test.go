package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/pkg/adapters/memory"
	"github.com/aretw0/indicator/pkg/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	source, err := memory.NewFromRaw(map[string]map[string]any{
		"cpu": {"mode": "gauge", "value": 80},
	})
	require.NoError(t, err)
	return NewServer(indicator.New(), source)
}

func TestHandleSupplyDefaults(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("JSON", func(t *testing.T) {
		report, err := s.handleSupplyDefaults(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"document": `{"mode": "delta", "value": 5, "delta": {"reference": 4, "position": "middle"}}`,
		})
		require.NoError(t, err)
		require.Len(t, report.Traces, 1)
		assert.Equal(t, "delta", report.Traces[0].Mode)
		require.Len(t, report.Traces[0].Replaced, 1)
		assert.Equal(t, "delta.position", report.Traces[0].Replaced[0].Path)
		assert.NotContains(t, report.Traces[0].Out, "_hasDelta")
	})

	t.Run("YAML With Private Keys", func(t *testing.T) {
		report, err := s.handleSupplyDefaults(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"document": "traces:\n  - mode: gauge\n  - mode: number\n",
			"private":  true,
		})
		require.NoError(t, err)
		require.Len(t, report.Traces, 2)
		assert.Equal(t, true, report.Traces[0].Out["_hasGauge"])
	})

	t.Run("Missing Document", func(t *testing.T) {
		_, err := s.handleSupplyDefaults(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
		assert.Error(t, err)
	})

	t.Run("Empty Document", func(t *testing.T) {
		_, err := s.handleSupplyDefaults(ctx, mcp.CallToolRequest{}, map[string]interface{}{"document": "{}"})
		assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	})
}

func TestHandleLint(t *testing.T) {
	s := newTestServer(t)
	report, err := s.handleLint(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"document": `{"mode": "gauge", "gauge": {"shape": "pie"}}`,
	})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "gauge.shape", report.Issues[0].Path)
}

func TestDocumentTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleListDocuments(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `["cpu"]`, text.Text)

	report, err := s.handleResolveDocument(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "cpu"})
	require.NoError(t, err)
	assert.Equal(t, "cpu", report.Document)
	gauge := report.Traces[0].Out["gauge"].(map[string]any)
	axis := gauge["axis"].(map[string]any)
	assert.Equal(t, []any{0.0, 120.0}, axis["range"])

	_, err = s.handleResolveDocument(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "nope"})
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestReadSchema(t *testing.T) {
	s := newTestServer(t)
	contents, err := s.readSchema(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, SchemaURI, text.URI)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &doc))
	assert.Contains(t, doc, "delta")
}

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/internal/dto"
)

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(dto.Report{
		Document: "cpu",
		Traces: []dto.TraceReport{
			{
				Index: 0,
				Mode:  "gauge",
				Out: map[string]any{
					"value": 42.0,
					"gauge": map[string]any{"shape": "angular", "axis": map[string]any{"range": []any{0.0, 63.0}}},
				},
				Replaced: []dto.Replacement{{Path: "gauge.shape", Input: "pie", Output: "angular"}},
			},
			{Index: 1, Mode: "number", Out: map[string]any{}},
		},
	})

	assert.True(t, strings.HasPrefix(md, "# cpu\n"))
	assert.Contains(t, md, "## Trace 0: `gauge`")
	assert.Contains(t, md, "| gauge.axis.range | `[0 63]` |")
	assert.Contains(t, md, "- **gauge.shape**: `pie` became `angular`")
	assert.Contains(t, md, "No values replaced.")
	assert.NotContains(t, md, "delta.font.size")
}

func TestLintMarkdown(t *testing.T) {
	assert.Contains(t, LintMarkdown(dto.LintReport{Valid: true}), "No issues found.")

	md := LintMarkdown(dto.LintReport{
		Document: "board",
		Issues: []dto.Issue{
			{Trace: 2, Path: "mode", Message: "no valid flag"},
			{Trace: 0, Message: "boom"},
		},
	})
	assert.Contains(t, md, "# board")
	assert.Less(t, strings.Index(md, "## Trace 0"), strings.Index(md, "## Trace 2"))
	assert.Contains(t, md, "- **mode**: no valid flag")
	assert.Contains(t, md, "- boom")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestBannerAndStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")

	assert.Contains(t, Status(true, "clean"), "clean")
	assert.Contains(t, Status(false, "broken"), "broken")
}

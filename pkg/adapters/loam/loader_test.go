package loam

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/internal/testutils"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/ports/tests"
)

func TestWorkspace_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docCPU := core.Document{
		ID: "cpu.md",
		Content: `---
id: cpu
title: CPU load
trace:
  mode: number+gauge
  value: 42
---
Five minute average.`,
	}
	docHealth := core.Document{
		ID: "health.md",
		Content: `---
id: health
layout:
  grid:
    rows: 1
    columns: 2
traces:
  - value: 1
    domain:
      column: 0
  - value: 2
    domain:
      column: 1
---`,
	}
	require.NoError(t, repo.Save(ctx, docCPU))
	require.NoError(t, repo.Save(ctx, docHealth))

	workspace := New(repo)
	tests.DocumentSourceContractTest(t, workspace, map[string]int{"cpu": 1, "health": 2})
}

func TestWorkspace_Get(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFixtures(t, tmpDir, map[string]string{
		"mem.json": `{"id": "mem.json", "trace": {"mode": "gauge", "value": 7}}`,
		"board.yaml": `layout:
  paper_bgcolor: black
traces:
  - mode: delta
    delta:
      reference: 3
`,
		"empty.md": `---
title: nothing here
---
Notes only.`,
	})
	workspace := New(repo)
	ctx := context.Background()

	t.Run("Normalizes ID", func(t *testing.T) {
		doc, err := workspace.Get(ctx, "mem")
		require.NoError(t, err)
		assert.Equal(t, "mem", doc.ID)
		require.Len(t, doc.Traces, 1)
		assert.Equal(t, "gauge", doc.Traces[0]["mode"])
	})

	t.Run("Nested Maps Are String Keyed", func(t *testing.T) {
		doc, err := workspace.Get(ctx, "board")
		require.NoError(t, err)
		assert.Equal(t, "board", doc.ID)
		delta, ok := doc.Traces[0]["delta"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 3, delta["reference"])

		layout, err := doc.ResolvedLayout()
		require.NoError(t, err)
		assert.Equal(t, "black", layout.PaperBgColor)
	})

	t.Run("No Traces", func(t *testing.T) {
		_, err := workspace.Get(ctx, "empty")
		assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := workspace.Get(ctx, "nope")
		assert.True(t, errors.Is(err, domain.ErrTraceNotFound))
	})
}

func TestWorkspace_SaveAndNotes(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	workspace := New(repo)
	ctx := context.Background()

	doc := &domain.Document{
		ID:     "disk",
		Layout: map[string]any{"width": 400},
		Traces: []map[string]any{{
			"mode":  "gauge",
			"value": 93,
			"title": map[string]any{"text": "2024"},
			"gauge": map[string]any{"axis": map[string]any{"tickvals": []any{0, 50.5, 100}}},
		}},
	}
	require.NoError(t, workspace.Save(ctx, doc, "Root volume usage."))

	raw, err := os.ReadFile(filepath.Join(dir, "disk.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "value: 93\n")

	got, err := workspace.Get(ctx, "disk")
	require.NoError(t, err)
	require.Len(t, got.Traces, 1)
	trace := got.Traces[0]
	assert.EqualValues(t, 93, trace["value"])
	assert.IsType(t, float64(0), trace["value"])
	assert.Equal(t, "2024", trace["title"].(map[string]any)["text"], "quoted strings stay strings")
	tickvals := trace["gauge"].(map[string]any)["axis"].(map[string]any)["tickvals"].([]any)
	assert.EqualValues(t, []any{0.0, 50.5, 100.0}, tickvals)
	assert.EqualValues(t, 400, got.Layout["width"])

	notes, err := workspace.Notes(ctx, "disk")
	require.NoError(t, err)
	assert.Equal(t, "Root volume usage.", notes)

	assert.ErrorIs(t, workspace.Save(ctx, &domain.Document{ID: "x"}, ""), domain.ErrEmptyDocument)
	assert.Error(t, workspace.Save(ctx, &domain.Document{}, ""))
}

func TestWorkspace_List_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"foo.md": `---
id: foo
trace:
  value: 1
---`,
		"foo.json": `{"id": "foo", "trace": {"value": 2}}`,
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	workspace := New(repo)
	_, err := workspace.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "cpu", trimExtension("cpu.md"))
	assert.Equal(t, "boards/cpu", trimExtension("boards/cpu.yaml"))
	assert.Equal(t, "cpu", trimExtension("cpu"))
}

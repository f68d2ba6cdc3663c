package dto_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/domain"
)

func TestNewReport(t *testing.T) {
	eng := indicator.New()
	results, err := eng.SupplyAll(context.Background(), &domain.Document{Traces: []map[string]any{
		{"mode": "gauge", "gauge": map[string]any{"shape": "pie"}},
		{"mode": "number"},
	}})
	require.NoError(t, err)

	report := dto.NewReport("board", results, false)
	assert.Equal(t, "board", report.Document)
	require.Len(t, report.Traces, 2)
	assert.Equal(t, "gauge", report.Traces[0].Mode)
	assert.NotContains(t, report.Traces[0].Out, "_hasGauge")
	assert.Equal(t, []dto.Replacement{{Path: "gauge.shape", Input: "pie", Output: "angular"}}, report.Traces[0].Replaced)
	assert.Empty(t, report.Traces[1].Replaced)

	private := dto.NewReport("board", results, true)
	assert.Contains(t, private.Traces[0].Out, "_hasGauge")
}

func TestLint(t *testing.T) {
	eng := indicator.New()

	clean := dto.Lint(eng, "ok", []map[string]any{{"mode": "delta"}})
	assert.True(t, clean.Valid)
	assert.Empty(t, clean.Issues)

	report := dto.Lint(eng, "bad", []map[string]any{{"mode": "delta"}, {"value": "high"}})
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, 1, report.Issues[0].Trace)
	assert.Equal(t, "value", report.Issues[0].Path)
}

func TestLintReport_AddIssues_PlainError(t *testing.T) {
	report := dto.LintReport{Valid: true}
	report.AddIssues(0, nil)
	assert.True(t, report.Valid)

	report.AddIssues(2, errors.New("boom"))
	assert.False(t, report.Valid)
	assert.Equal(t, []dto.Issue{{Trace: 2, Message: "boom"}}, report.Issues)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/adapters/memory"
	"github.com/aretw0/indicator/pkg/ports"
)

// MockWatcher for testing
type MockWatcher struct {
	WatchFunc func(ctx context.Context) (<-chan string, error)
}

func (m *MockWatcher) Watch(ctx context.Context) (<-chan string, error) {
	return m.WatchFunc(ctx)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	source, err := memory.NewFromRaw(map[string]map[string]any{
		"cpu":   {"mode": "number+gauge", "value": 42},
		"board": {"traces": []any{map[string]any{"value": 1}, map[string]any{"value": "x"}}},
	})
	require.NoError(t, err)
	return NewHandler(&Server{Engine: indicator.New(), Source: source})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostDefaults(t *testing.T) {
	h := newTestHandler(t)

	t.Run("Bare Trace", func(t *testing.T) {
		w := do(t, h, "POST", "/defaults", `{"mode": "gauge", "value": 10, "gauge": {"shape": "pie"}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var report dto.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		require.Len(t, report.Traces, 1)
		tr := report.Traces[0]
		assert.Equal(t, "gauge", tr.Mode)
		assert.NotContains(t, tr.Out, "_hasGauge")
		gauge := tr.Out["gauge"].(map[string]any)
		assert.Equal(t, "angular", gauge["shape"])
		axis := gauge["axis"].(map[string]any)
		assert.Equal(t, []any{0.0, 15.0}, axis["range"])
		require.Len(t, tr.Replaced, 1)
		assert.Equal(t, "gauge.shape", tr.Replaced[0].Path)
	})

	t.Run("Private Keys", func(t *testing.T) {
		w := do(t, h, "POST", "/defaults?private=true", `{"mode": "gauge"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"_hasGauge":true`)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		w := do(t, h, "POST", "/defaults", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty Document", func(t *testing.T) {
		w := do(t, h, "POST", "/defaults", `{"traces": []}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed Layout", func(t *testing.T) {
		w := do(t, h, "POST", "/defaults", `{"layout": {"font": 3}, "traces": [{}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostLint(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, "POST", "/lint", `{"traces": [{"mode": "gauge"}, {"mode": "dial", "size": 3}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report dto.LintReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 2)
	assert.Equal(t, 1, report.Issues[0].Trace)
	assert.Equal(t, "mode", report.Issues[0].Path)
	assert.Equal(t, "size", report.Issues[1].Path)
}

func TestDocuments(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents": ["board", "cpu"]}`, w.Body.String())

	w = do(t, h, "GET", "/documents/cpu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"cpu"`)

	w = do(t, h, "GET", "/documents/board/defaults", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report dto.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "board", report.Document)
	require.Len(t, report.Traces, 2)
	assert.Empty(t, report.Traces[0].Replaced)
	require.Len(t, report.Traces[1].Replaced, 1)
	assert.Equal(t, "value", report.Traces[1].Replaced[0].Path)

	w = do(t, h, "GET", "/documents/missing/defaults", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoSource(t *testing.T) {
	h := NewHandler(&Server{Engine: indicator.New()})
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/documents", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/documents/x", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/events", "").Code)
}

func TestInfoHealthSchema(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Contains(t, w.Body.String(), indicator.Version)

	w = do(t, h, "GET", "/schema", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc, "mode")
	assert.Contains(t, doc, "gauge")

	w = do(t, h, "OPTIONS", "/defaults", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	h := NewHandler(&Server{
		Engine: indicator.New(),
		Watcher: &MockWatcher{WatchFunc: func(ctx context.Context) (<-chan string, error) {
			ch := make(chan string, 1)
			ch <- "cpu"
			close(ch)
			return ch, nil
		}},
	})

	w := do(t, h, "GET", "/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "data: cpu")
}

func TestMount(t *testing.T) {
	h := Mount(newTestHandler(t), "/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("metrics"))
	}))
	w := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, "metrics", w.Body.String())
}

// readOnly hides the write side of a source.
type readOnly struct{ ports.DocumentSource }

func TestPutDeleteDocument(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "PUT", "/documents/mem", `{"id": "ignored", "mode": "delta", "value": 5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"id":"mem"`)

	w = do(t, h, "GET", "/documents", "")
	assert.JSONEq(t, `{"documents": ["board", "cpu", "mem"]}`, w.Body.String())

	w = do(t, h, "GET", "/documents/mem/defaults", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mode":"delta"`)

	w = do(t, h, "PUT", "/documents/mem", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "DELETE", "/documents/mem", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/documents/mem", "").Code)
}

func TestPutDocument_ReadOnly(t *testing.T) {
	source, err := memory.NewSource()
	require.NoError(t, err)
	h := NewHandler(&Server{Engine: indicator.New(), Source: readOnly{source}})

	w := do(t, h, "PUT", "/documents/x", `{"mode": "gauge"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	h = NewHandler(&Server{Engine: indicator.New()})
	assert.Equal(t, http.StatusNotFound, do(t, h, "DELETE", "/documents/x", "").Code)
}

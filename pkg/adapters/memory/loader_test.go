package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/pkg/adapters/memory"
	"github.com/aretw0/indicator/pkg/domain"
	contract "github.com/aretw0/indicator/pkg/ports/tests"
)

func TestSource_Contract(t *testing.T) {
	source, err := memory.NewFromRaw(map[string]map[string]any{
		"cpu":    {"mode": "gauge", "value": 40},
		"health": {"traces": []any{map[string]any{"value": 1}, map[string]any{"value": 2}}},
	})
	require.NoError(t, err)

	contract.DocumentSourceContractTest(t, source, map[string]int{"cpu": 1, "health": 2})
}

func TestSource_Put(t *testing.T) {
	source, err := memory.NewSource()
	require.NoError(t, err)

	assert.ErrorIs(t, source.Put(&domain.Document{}), domain.ErrMissingID)
	assert.ErrorIs(t, source.Put(nil), domain.ErrMissingID)

	require.NoError(t, source.Put(&domain.Document{ID: "a", Traces: []map[string]any{{}}}))
	require.NoError(t, source.Put(&domain.Document{ID: "a", Traces: []map[string]any{{}, {}}}))

	doc, err := source.Get(t.Context(), "a")
	require.NoError(t, err)
	assert.Len(t, doc.Traces, 2)
}

func TestSource_StoreContract(t *testing.T) {
	source, err := memory.NewSource()
	require.NoError(t, err)
	contract.DocumentStoreContractTest(t, source)
}

func TestNewFromRaw_Invalid(t *testing.T) {
	_, err := memory.NewFromRaw(map[string]map[string]any{"empty": {}})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

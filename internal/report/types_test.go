package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRow_DecodesMixedScalars(t *testing.T) {
	payload := `{
		"manifest_number": "M-0042",
		"date_dispatched": "2026-01-09T08:15:00",
		"driver": null,
		"invoice_number": "INV-1001",
		"customer_number": 10042,
		"value": 1520.75,
		"weight": 12
	}`

	var row DispatchRow
	require.NoError(t, json.Unmarshal([]byte(payload), &row))

	assert.Equal(t, Text("M-0042"), row.ManifestNumber)
	assert.Equal(t, Text(""), row.Driver)
	assert.Equal(t, Text("10042"), row.CustomerNumber)
	assert.Equal(t, Text("1520.75"), row.Value)
	assert.Equal(t, Text("12"), row.Weight)
	assert.Equal(t, Text(""), row.Area, "absent fields stay empty")
}

func TestText_RejectsComposites(t *testing.T) {
	var row DispatchRow
	err := json.Unmarshal([]byte(`{"driver": {"name": "Sipho"}}`), &row)
	assert.Error(t, err)
}

func TestSortDirection_Toggle(t *testing.T) {
	assert.Equal(t, SortAsc, SortDesc.Toggle())
	assert.Equal(t, SortDesc, SortAsc.Toggle())
	assert.Equal(t, SortAsc, SortDirection("").Toggle())
}

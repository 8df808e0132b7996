package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRequestDefaultsWhenOmitted(t *testing.T) {
	var req InventoryOptimizationRequest
	err := json.Unmarshal([]byte(`{"medicine_id":1,"current_stock":50,"price":4}`), &req)
	require.NoError(t, err)

	assert.Equal(t, 180, req.DaysUntilExpiry)
	assert.Equal(t, 30, req.DaysSinceLastOrder)
	assert.Equal(t, 10, req.OrderCount)
}

func TestInventoryRequestKeepsExplicitZeros(t *testing.T) {
	// 0 is a legitimate input for every defaulted field: a medicine expiring
	// today, never ordered, or ordered today. Defaults apply only to fields
	// absent from the payload.
	var req InventoryOptimizationRequest
	err := json.Unmarshal([]byte(
		`{"medicine_id":1,"current_stock":50,"days_until_expiry":0,"days_since_last_order":0,"order_count":0}`,
	), &req)
	require.NoError(t, err)

	assert.Equal(t, 0, req.DaysUntilExpiry)
	assert.Equal(t, 0, req.DaysSinceLastOrder)
	assert.Equal(t, 0, req.OrderCount)
}

func TestBatchInventoryItemsDefaultIndependently(t *testing.T) {
	var req BatchInventoryRequest
	err := json.Unmarshal([]byte(`{"medicines":[
		{"medicine_id":1,"current_stock":10},
		{"medicine_id":2,"current_stock":20,"days_until_expiry":0,"order_count":0}
	]}`), &req)
	require.NoError(t, err)
	require.Len(t, req.Medicines, 2)

	assert.Equal(t, 180, req.Medicines[0].DaysUntilExpiry)
	assert.Equal(t, 10, req.Medicines[0].OrderCount)
	assert.Equal(t, 0, req.Medicines[1].DaysUntilExpiry)
	assert.Equal(t, 0, req.Medicines[1].OrderCount)
}

package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopFront/internal/catalog"
)

func TestProductIDAcceptsStringAndNumber(t *testing.T) {
	raw := `[
		{"id": 7, "title": "Numeric", "brand": "A", "category": "MOB", "price": 10, "stock": 1},
		{"id": "p_x", "title": "String", "brand": "B", "category": "IT", "price": 20.5, "stock": 2}
	]`

	var products []catalog.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &products))
	require.Len(t, products, 2)

	assert.Equal(t, catalog.ID("7"), products[0].ID)
	assert.Equal(t, catalog.ID("p_x"), products[1].ID)
	assert.Equal(t, "20.5", products[1].Price.String())
}

func TestProductIDRejectsOtherTypes(t *testing.T) {
	var p catalog.Product
	err := json.Unmarshal([]byte(`{"id": {"nested": true}}`), &p)
	assert.Error(t, err)
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		stock int
		want  catalog.StockStatus
	}{
		{0, catalog.StockOut},
		{-1, catalog.StockOut},
		{1, catalog.StockLow},
		{3, catalog.StockLow},
		{4, catalog.StockIn},
		{50, catalog.StockIn},
	}

	for _, tc := range cases {
		p := catalog.Product{Stock: tc.stock}
		assert.Equal(t, tc.want, p.StockStatus(), "stock=%d", tc.stock)
	}
}

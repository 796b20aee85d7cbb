package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ID is an opaque product identifier. Catalog files in the wild carry both
// numeric and string ids, so it unmarshals from either and normalizes to a
// string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Product struct {
	ID       ID              `json:"id"`
	Title    string          `json:"title"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Img      string          `json:"img"`
	Features map[string]any  `json:"features,omitempty"`
}

type StockStatus string

const (
	StockOut StockStatus = "out"
	StockLow StockStatus = "low"
	StockIn  StockStatus = "in"
)

// lowStockMax is the largest stock level still shown as "last units".
const lowStockMax = 3

func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock <= lowStockMax:
		return StockLow
	default:
		return StockIn
	}
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product. The catalogue is the source of
// truth for pricing; the order flow never trusts client-supplied prices.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	InStock   bool            `json:"inStock" db:"in_stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

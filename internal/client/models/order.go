package models

import "github.com/shopspring/decimal"

// OrderLine is one purchased product of a past order. Immutable.
type OrderLine struct {
	OrderID      string          `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// Subtotal is unit price × quantity, as displayed next to each line.
func (o OrderLine) Subtotal() decimal.Decimal {
	return o.PricePerUnit.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

type OrderHistory struct {
	Username string      `json:"username"`
	Role     Role        `json:"role"`
	Lines    []OrderLine `json:"products"`
}

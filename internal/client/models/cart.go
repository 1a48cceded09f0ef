package models

import "github.com/shopspring/decimal"

type CartLine struct {
	ProductID    int64           `json:"product_id"`
	ImageURL     string          `json:"image_url"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// Consistent reports whether the line total equals unit price × quantity.
func (l CartLine) Consistent() bool {
	return l.PricePerUnit.Mul(decimal.NewFromInt(int64(l.Quantity))).Equal(l.TotalPrice)
}

// CartSnapshot is the full cart as returned by the backend. It is always
// replaced wholesale, never patched.
type CartSnapshot struct {
	Lines        []CartLine      `json:"products"`
	OverallTotal decimal.Decimal `json:"overall_total_price"`
}

func (s CartSnapshot) Empty() bool {
	return len(s.Lines) == 0
}

// ItemCount is the number of distinct lines.
func (s CartSnapshot) ItemCount() int {
	return len(s.Lines)
}

func (s CartSnapshot) SumOfLines() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.Lines {
		sum = sum.Add(l.TotalPrice)
	}
	return sum
}

// Line returns the line for productID, if present.
func (s CartSnapshot) Line(productID int64) (CartLine, bool) {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

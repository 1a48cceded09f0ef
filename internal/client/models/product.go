package models

import "github.com/shopspring/decimal"

// Product is a read-only catalog snapshot.
type Product struct {
	ID          int64           `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
}

// InStock reports whether purchase actions are allowed.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Dashboard is the response of the product listing endpoint. User is set
// when the request carried a valid session.
type Dashboard struct {
	User     *User     `json:"user,omitempty"`
	Products []Product `json:"products"`
}

// Categories are the server-side filters offered by the catalog.
var Categories = []string{"Shirts", "Pants", "Accessories", "Mobiles", "Mobile Accessories"}

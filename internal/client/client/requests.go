package client

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Role string `json:"role"`
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type cartDeleteRequest struct {
	ProductID int64 `json:"productId"`
}

// PaymentItem is one cart line as sent to the payment-create endpoint.
type PaymentItem struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

type PaymentRequest struct {
	TotalAmount decimal.Decimal
	CartItems   []PaymentItem
}

// number renders d as a bare JSON number. decimal.Decimal marshals as a
// quoted string by default and the backend expects numbers.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (p PaymentRequest) MarshalJSON() ([]byte, error) {
	type item struct {
		ProductID int64       `json:"productId"`
		Quantity  int         `json:"quantity"`
		Price     json.Number `json:"price"`
	}
	items := make([]item, 0, len(p.CartItems))
	for _, it := range p.CartItems {
		items = append(items, item{ProductID: it.ProductID, Quantity: it.Quantity, Price: number(it.Price)})
	}
	return json.Marshal(struct {
		TotalAmount json.Number `json:"totalAmount"`
		CartItems   []item      `json:"cartItems"`
	}{number(p.TotalAmount), items})
}

// Verification carries the three identifiers returned by the payment
// gateway on success.
type Verification struct {
	OrderID   string `json:"razorPayOrderId"`
	PaymentID string `json:"razorPayPaymentId"`
	Signature string `json:"razorPaySignature"`
}

type AddProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  int64
	ImageURL    string
}

func (r AddProductRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Price       json.Number `json:"price"`
		Stock       int         `json:"stock"`
		CategoryID  int64       `json:"categoryId"`
		ImageURL    string      `json:"imageUrl"`
	}{r.Name, r.Description, number(r.Price), r.Stock, r.CategoryID, r.ImageURL})
}

type productIDRequest struct {
	ProductID int64 `json:"productId"`
}

type ModifyUserRequest struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// BusinessPeriod selects one of the admin revenue reports.
type BusinessPeriod string

const (
	PeriodDaily   BusinessPeriod = "daily"
	PeriodMonthly BusinessPeriod = "monthly"
	PeriodYearly  BusinessPeriod = "yearly"
	PeriodOverall BusinessPeriod = "overall"
)

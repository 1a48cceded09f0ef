package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
)

// Client is the storefront backend contract. Every call carries the session
// cookie once one has been issued.
type Client interface {
	Close() error
	// HasSession reports whether the backend has issued a session cookie.
	// Presence only; the value is never inspected.
	HasSession() bool

	Products(ctx context.Context, category string) (*models.Dashboard, error)

	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, username, password string) (models.Role, error)
	Logout(ctx context.Context) error

	CartItems(ctx context.Context) (*models.CartSnapshot, error)
	CartCount(ctx context.Context, username string) (int, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateCart(ctx context.Context, productID int64, quantity int) error
	DeleteFromCart(ctx context.Context, productID int64) error

	CreatePayment(ctx context.Context, req PaymentRequest) (string, error)
	VerifyPayment(ctx context.Context, v Verification) error

	Orders(ctx context.Context) (*models.OrderHistory, error)

	// Admin responses are generic JSON and handed to the caller as decoded
	// values (map[string]any, []any, string, float64, bool or nil).
	AdminAddProduct(ctx context.Context, req AddProductRequest) (any, error)
	AdminDeleteProduct(ctx context.Context, productID int64) (any, error)
	AdminGetUser(ctx context.Context, userID string) (any, error)
	AdminModifyUser(ctx context.Context, req ModifyUserRequest) (any, error)
	AdminBusiness(ctx context.Context, period BusinessPeriod, params url.Values) (any, error)
}

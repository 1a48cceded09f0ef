package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/gateway"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for service unit tests. Unset results
// return zero values.
type fakeClient struct {
	mu sync.Mutex

	HasSessionRet bool
	CloseErr      error

	ProductsRet *models.Dashboard
	ProductsErr error

	RegisterErr error

	LoginRole models.Role
	LoginErr  error

	LogoutErr error

	CartRet *models.CartSnapshot
	CartErr error
	// CartHook runs inside CartItems before returning; used to hold a fetch.
	CartHook func()

	CountRet int
	CountErr error

	AddErr    error
	UpdateErr error
	DeleteErr error
	// MutationHook runs inside update/delete before returning.
	MutationHook func()

	CreateRet string
	CreateErr error
	VerifyErr error

	OrdersRet *models.OrderHistory
	OrdersErr error

	AdminRet any
	AdminErr error

	// recorded calls
	Calls            []string
	LastCategory     string
	LastRegister     client.RegisterRequest
	LastLogin        [2]string
	LastCountUser    string
	LastCartID       int64
	LastQuantity     int
	LastPayment      client.PaymentRequest
	LastVerification client.Verification
	LastAddProduct   client.AddProductRequest
	LastProductID    int64
	LastUserID       string
	LastModify       client.ModifyUserRequest
	LastPeriod       client.BusinessPeriod
	LastParams       url.Values
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Close() error     { return f.CloseErr }
func (f *fakeClient) HasSession() bool { return f.HasSessionRet }

func (f *fakeClient) Products(ctx context.Context, category string) (*models.Dashboard, error) {
	f.record("Products")
	f.LastCategory = category
	if f.ProductsErr != nil {
		return nil, f.ProductsErr
	}
	if f.ProductsRet == nil {
		return &models.Dashboard{}, nil
	}
	d := *f.ProductsRet
	return &d, nil
}

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) error {
	f.record("Register")
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (models.Role, error) {
	f.record("Login")
	f.LastLogin = [2]string{username, password}
	return f.LoginRole, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *fakeClient) CartItems(ctx context.Context) (*models.CartSnapshot, error) {
	f.record("CartItems")
	if f.CartHook != nil {
		f.CartHook()
	}
	if f.CartErr != nil {
		return nil, f.CartErr
	}
	if f.CartRet == nil {
		return &models.CartSnapshot{}, nil
	}
	s := *f.CartRet
	return &s, nil
}

func (f *fakeClient) CartCount(ctx context.Context, username string) (int, error) {
	f.record("CartCount")
	f.LastCountUser = username
	return f.CountRet, f.CountErr
}

func (f *fakeClient) AddToCart(ctx context.Context, productID int64, quantity int) error {
	f.record("AddToCart")
	f.LastCartID, f.LastQuantity = productID, quantity
	return f.AddErr
}

func (f *fakeClient) UpdateCart(ctx context.Context, productID int64, quantity int) error {
	f.record("UpdateCart")
	f.mu.Lock()
	f.LastCartID, f.LastQuantity = productID, quantity
	hook := f.MutationHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.UpdateErr
}

func (f *fakeClient) DeleteFromCart(ctx context.Context, productID int64) error {
	f.record("DeleteFromCart")
	f.mu.Lock()
	f.LastCartID = productID
	hook := f.MutationHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.DeleteErr
}

func (f *fakeClient) CreatePayment(ctx context.Context, req client.PaymentRequest) (string, error) {
	f.record("CreatePayment")
	f.LastPayment = req
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) VerifyPayment(ctx context.Context, v client.Verification) error {
	f.record("VerifyPayment")
	f.LastVerification = v
	return f.VerifyErr
}

func (f *fakeClient) Orders(ctx context.Context) (*models.OrderHistory, error) {
	f.record("Orders")
	return f.OrdersRet, f.OrdersErr
}

func (f *fakeClient) AdminAddProduct(ctx context.Context, req client.AddProductRequest) (any, error) {
	f.record("AdminAddProduct")
	f.LastAddProduct = req
	return f.AdminRet, f.AdminErr
}

func (f *fakeClient) AdminDeleteProduct(ctx context.Context, productID int64) (any, error) {
	f.record("AdminDeleteProduct")
	f.LastProductID = productID
	return f.AdminRet, f.AdminErr
}

func (f *fakeClient) AdminGetUser(ctx context.Context, userID string) (any, error) {
	f.record("AdminGetUser")
	f.LastUserID = userID
	return f.AdminRet, f.AdminErr
}

func (f *fakeClient) AdminModifyUser(ctx context.Context, req client.ModifyUserRequest) (any, error) {
	f.record("AdminModifyUser")
	f.LastModify = req
	return f.AdminRet, f.AdminErr
}

func (f *fakeClient) AdminBusiness(ctx context.Context, period client.BusinessPeriod, params url.Values) (any, error) {
	f.record("AdminBusiness")
	f.LastPeriod, f.LastParams = period, params
	return f.AdminRet, f.AdminErr
}

// ---- fake gateway ----

type fakeGateway struct {
	LoadErr    error
	OpenRet    gateway.Outcome
	OpenErr    error
	LastOpts   gateway.Options
	OpenCalls  int
	LoadCalls  int
	OnOpenHook func()
}

func (g *fakeGateway) Load(ctx context.Context) error {
	g.LoadCalls++
	return g.LoadErr
}

func (g *fakeGateway) Open(ctx context.Context, opts gateway.Options) (gateway.Outcome, error) {
	g.OpenCalls++
	g.LastOpts = opts
	if g.OnOpenHook != nil {
		g.OnOpenHook()
	}
	return g.OpenRet, g.OpenErr
}

// ---- fake preference repository ----

type fakePrefs struct {
	data   map[string]string
	GetErr error
	SetErr error
}

func newFakePrefs() *fakePrefs { return &fakePrefs{data: map[string]string{}} }

func (p *fakePrefs) Get(ctx context.Context, key string) (string, bool, error) {
	if p.GetErr != nil {
		return "", false, p.GetErr
	}
	v, ok := p.data[key]
	return v, ok, nil
}

func (p *fakePrefs) Set(ctx context.Context, key, value string) error {
	if p.SetErr != nil {
		return p.SetErr
	}
	p.data[key] = value
	return nil
}

func (p *fakePrefs) Delete(ctx context.Context, key string) error {
	delete(p.data, key)
	return nil
}

func (p *fakePrefs) List(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(p.data))
	for k, v := range p.data {
		out[k] = v
	}
	return out, nil
}

func (p *fakePrefs) Clear(ctx context.Context) error {
	p.data = map[string]string{}
	return nil
}

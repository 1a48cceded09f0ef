package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

// maxBody caps how much of a response is read into memory.
const maxBody = 4 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. timeout bounds
// each request; zero means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Jar:       jar,
			Timeout:   timeout,
		},
		log: log.With("component", "api"),
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) HasSession() bool {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == common.SessionCookieName && ck.Value != "" {
			return true
		}
	}
	return false
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// send performs one request and returns the raw response body of a 2xx
// reply. Non-2xx replies become *APIError.
func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapError(newAPIError(resp.StatusCode, raw))
	}
	return raw, nil
}

// do is send plus JSON decoding into out. An empty body leaves out untouched.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Products(ctx context.Context, category string) (*models.Dashboard, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}
	var d models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/users/register", nil, req, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.Role, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return models.Role(resp.Role), nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, struct{}{}, nil)
}

func (c *HTTPClient) CartItems(ctx context.Context) (*models.CartSnapshot, error) {
	var resp struct {
		Cart *models.CartSnapshot `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cart/items", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Cart == nil {
		return &models.CartSnapshot{}, nil
	}
	return resp.Cart, nil
}

// CartCount returns the number of cart lines. Anything but a JSON number is
// read as zero.
func (c *HTTPClient) CartCount(ctx context.Context, username string) (int, error) {
	raw, err := c.send(ctx, http.MethodGet, "/api/cart/items/count", url.Values{"username": {username}}, nil)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/api/cart/add", nil, cartItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (c *HTTPClient) UpdateCart(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPut, "/api/cart/update", nil, cartItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (c *HTTPClient) DeleteFromCart(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/delete", nil, cartDeleteRequest{ProductID: productID}, nil)
}

// CreatePayment returns the backend order identifier unmodified: a JSON
// string is unquoted, any other body is passed through as text.
func (c *HTTPClient) CreatePayment(ctx context.Context, req PaymentRequest) (string, error) {
	raw, err := c.send(ctx, http.MethodPost, "/api/payment/create", nil, req)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(raw), nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, v Verification) error {
	return c.do(ctx, http.MethodPost, "/api/payment/verify", nil, v, nil)
}

func (c *HTTPClient) Orders(ctx context.Context) (*models.OrderHistory, error) {
	var h models.OrderHistory
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// admin decodes the reply as generic JSON. A body that is not JSON is
// returned as a string.
func (c *HTTPClient) admin(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	raw, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw), nil
	}
	return v, nil
}

func (c *HTTPClient) AdminAddProduct(ctx context.Context, req AddProductRequest) (any, error) {
	return c.admin(ctx, http.MethodPost, "/admin/products/add", nil, req)
}

func (c *HTTPClient) AdminDeleteProduct(ctx context.Context, productID int64) (any, error) {
	return c.admin(ctx, http.MethodDelete, "/admin/products/delete", nil, productIDRequest{ProductID: productID})
}

func (c *HTTPClient) AdminGetUser(ctx context.Context, userID string) (any, error) {
	return c.admin(ctx, http.MethodGet, "/admin/user/getbyid", url.Values{"userId": {userID}}, nil)
}

func (c *HTTPClient) AdminModifyUser(ctx context.Context, req ModifyUserRequest) (any, error) {
	return c.admin(ctx, http.MethodPut, "/admin/user/modify", nil, req)
}

func (c *HTTPClient) AdminBusiness(ctx context.Context, period BusinessPeriod, params url.Values) (any, error) {
	switch period {
	case PeriodDaily, PeriodMonthly, PeriodYearly, PeriodOverall:
	default:
		return nil, errors.New("unknown business period " + strconv.Quote(string(period)))
	}
	return c.admin(ctx, http.MethodGet, "/admin/business/"+string(period), params, nil)
}

var _ Client = (*HTTPClient)(nil)

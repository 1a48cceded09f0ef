package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/config"
	"github.com/dmitrijs2005/shopsphere/internal/client/gateway"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

// ------------ fake storefront backend ------------

type cartEntry struct {
	productID int64
	quantity  int
}

type apiFailure struct {
	status int
	msg    string
}

// fakeBackend is an in-memory storefront served over httptest. The session
// cookie value is the username.
type fakeBackend struct {
	mu  sync.Mutex
	srv *httptest.Server

	users    map[string]models.Role
	products []models.Product
	cart     []cartEntry
	orders   []models.OrderLine
	fail     map[string]apiFailure

	requests     []string
	lastCategory string
	registered   []client.RegisterRequest
	created      []map[string]any
	verified     []client.Verification
	adminQuery   string
	adminBody    map[string]any
	adminReply   any
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		users: map[string]models.Role{
			"asha":  models.RoleCustomer,
			"root":  models.RoleAdmin,
			"ghost": "SUPPLIER",
		},
		products: []models.Product{
			{ID: 1, Name: "Linen Shirt", Description: "Breathable summer shirt", Price: decimal.RequireFromString("1500"), Stock: 4, Images: []string{"shirt.png"}},
			{ID: 2, Name: "Cargo Pants", Description: "Six pockets", Price: decimal.RequireFromString("899.50"), Stock: 0},
			{ID: 3, Name: "Phone Case", Description: "Shockproof", Price: decimal.RequireFromString("250"), Stock: 10},
		},
		fail:       map[string]apiFailure{},
		adminReply: map[string]any{"ok": true},
	}
	b.srv = httptest.NewServer(b)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) failOn(key string, status int, msg string) {
	b.mu.Lock()
	b.fail[key] = apiFailure{status, msg}
	b.mu.Unlock()
}

func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == key {
			n++
		}
	}
	return n
}

// recorded is a copy of what the backend has seen so far.
type recorded struct {
	lastCategory string
	registered   []client.RegisterRequest
	created      []map[string]any
	verified     []client.Verification
	adminQuery   string
	adminBody    map[string]any
}

func (b *fakeBackend) seen() recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return recorded{
		lastCategory: b.lastCategory,
		registered:   append([]client.RegisterRequest(nil), b.registered...),
		created:      append([]map[string]any(nil), b.created...),
		verified:     append([]client.Verification(nil), b.verified...),
		adminQuery:   b.adminQuery,
		adminBody:    b.adminBody,
	}
}

// update mutates backend state between requests.
func (b *fakeBackend) update(fn func(b *fakeBackend)) {
	b.mu.Lock()
	fn(b)
	b.mu.Unlock()
}

func (b *fakeBackend) setCart(entries ...cartEntry) {
	b.mu.Lock()
	b.cart = entries
	b.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) user(r *http.Request) string {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (b *fakeBackend) product(id int64) (models.Product, bool) {
	for _, p := range b.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (b *fakeBackend) snapshot() models.CartSnapshot {
	snap := models.CartSnapshot{Lines: []models.CartLine{}, OverallTotal: decimal.Zero}
	for _, e := range b.cart {
		p, _ := b.product(e.productID)
		total := p.Price.Mul(decimal.NewFromInt(int64(e.quantity)))
		snap.Lines = append(snap.Lines, models.CartLine{
			ProductID: p.ID, Name: p.Name, Description: p.Description,
			PricePerUnit: p.Price, Quantity: e.quantity, TotalPrice: total,
		})
		snap.OverallTotal = snap.OverallTotal.Add(total)
	}
	return snap
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	b.requests = append(b.requests, key)
	if f, ok := b.fail[key]; ok {
		writeJSON(w, f.status, map[string]string{"error": f.msg})
		return
	}

	raw, _ := io.ReadAll(r.Body)
	decode := func(v any) { _ = json.Unmarshal(raw, v) }
	username := b.user(r)

	switch key {
	case "POST /api/auth/login":
		var req struct{ Username, Password string }
		decode(&req)
		role, ok := b.users[req.Username]
		if !ok || req.Password == "wrong" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: common.SessionCookieName, Value: req.Username, Path: "/"})
		writeJSON(w, http.StatusOK, map[string]string{"role": string(role)})

	case "POST /api/auth/logout":
		http.SetCookie(w, &http.Cookie{Name: common.SessionCookieName, Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, "Logged out")

	case "POST /api/users/register":
		var req client.RegisterRequest
		decode(&req)
		if _, exists := b.users[req.Username]; exists {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username already exists"})
			return
		}
		b.registered = append(b.registered, req)
		b.users[req.Username] = models.Role(req.Role)
		writeJSON(w, http.StatusOK, map[string]any{"id": len(b.registered)})

	case "GET /api/products":
		b.lastCategory = r.URL.Query().Get("category")
		resp := map[string]any{"products": b.products}
		if username != "" {
			resp["user"] = map[string]string{"name": username, "role": string(b.users[username])}
		}
		writeJSON(w, http.StatusOK, resp)

	case "GET /api/cart/items":
		if username == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not logged in"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": b.snapshot()})

	case "GET /api/cart/items/count":
		fmt.Fprint(w, len(b.cart))

	case "POST /api/cart/add":
		var req struct {
			ProductID int64 `json:"productId"`
			Quantity  int   `json:"quantity"`
		}
		decode(&req)
		for i := range b.cart {
			if b.cart[i].productID == req.ProductID {
				b.cart[i].quantity += req.Quantity
				writeJSON(w, http.StatusOK, "Added")
				return
			}
		}
		b.cart = append(b.cart, cartEntry{req.ProductID, req.Quantity})
		writeJSON(w, http.StatusOK, "Added")

	case "PUT /api/cart/update":
		var req struct {
			ProductID int64 `json:"productId"`
			Quantity  int   `json:"quantity"`
		}
		decode(&req)
		for i := range b.cart {
			if b.cart[i].productID == req.ProductID {
				b.cart[i].quantity = req.Quantity
			}
		}
		writeJSON(w, http.StatusOK, "Updated")

	case "DELETE /api/cart/delete":
		var req struct {
			ProductID int64 `json:"productId"`
		}
		decode(&req)
		kept := b.cart[:0]
		for _, e := range b.cart {
			if e.productID != req.ProductID {
				kept = append(kept, e)
			}
		}
		b.cart = kept
		writeJSON(w, http.StatusOK, "Deleted")

	case "POST /api/payment/create":
		var req map[string]any
		decode(&req)
		b.created = append(b.created, req)
		writeJSON(w, http.StatusOK, fmt.Sprintf("order_%d", len(b.created)))

	case "POST /api/payment/verify":
		var v client.Verification
		decode(&v)
		b.verified = append(b.verified, v)
		if v.Signature == "bad" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid signature"})
			return
		}
		for _, line := range b.snapshot().Lines {
			b.orders = append(b.orders, models.OrderLine{
				OrderID: v.OrderID, ProductID: line.ProductID, Name: line.Name,
				Quantity: line.Quantity, PricePerUnit: line.PricePerUnit, TotalPrice: line.TotalPrice,
			})
		}
		b.cart = nil
		writeJSON(w, http.StatusOK, "Payment verified")

	case "GET /api/orders":
		writeJSON(w, http.StatusOK, models.OrderHistory{Username: username, Role: b.users[username], Lines: b.orders})

	default:
		if strings.HasPrefix(r.URL.Path, "/admin/") {
			b.adminQuery = r.URL.RawQuery
			b.adminBody = nil
			decode(&b.adminBody)
			writeJSON(w, http.StatusOK, b.adminReply)
			return
		}
		http.NotFound(w, r)
	}
}

// ------------ app under test ------------

type staticLoader struct{ err error }

func (l staticLoader) Load(context.Context) error { return l.err }

type testApp struct {
	*App
	out     *bytes.Buffer
	backend *fakeBackend
	waits   []time.Duration
}

type testOptions struct {
	configure func(*config.Config)
	loadErr   error
}

// newTestApp wires a real App against b. script is everything the user
// types, one line per entry; passwords are read as plain lines.
func newTestApp(t *testing.T, b *fakeBackend, script ...string) *testApp {
	t.Helper()
	return newTestAppWith(t, b, testOptions{}, script...)
}

func newTestAppWith(t *testing.T, b *fakeBackend, opts testOptions, script ...string) *testApp {
	t.Helper()
	plainTerminal(t)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = b.srv.URL
	cfg.PaymentKeyID = "rzp_test_key"
	if opts.configure != nil {
		opts.configure(cfg)
	}

	log := logging.Nop()
	api, err := client.NewHTTPClient(b.srv.URL, 5*time.Second, log)
	require.NoError(t, err)

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), dbFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reader := bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	out := &bytes.Buffer{}
	theme := NewTheme(false)
	prefs := services.NewPreferenceService(client.NewRepositories(db).Preferences, theme, log)
	gw := gateway.NewTerminal(staticLoader{err: opts.loadErr}, reader, out)

	ta := &testApp{out: out, backend: b}
	ta.App = newApp(cfg, log, api, session.NewStore(), gw, prefs, reader, out, theme)
	ta.App.wait = func(_ context.Context, d time.Duration) error {
		ta.waits = append(ta.waits, d)
		return nil
	}
	captureOutput(t, out)
	return ta
}

// plainTerminal makes GetPassword read from the shared reader.
func plainTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func captureOutput(t *testing.T, w io.Writer) {
	t.Helper()
	origLn, origP := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(w, a...) }
	printFn = func(a ...any) (int, error) { return fmt.Fprint(w, a...) }
	t.Cleanup(func() { printlnFn, printFn = origLn, origP })
}

// signIn logs in without going through the form.
func (ta *testApp) signIn(t *testing.T, username string) {
	t.Helper()
	_, err := ta.authService.Login(context.Background(), username, "secret")
	require.NoError(t, err)
	ta.out.Reset()
}

// output returns and clears everything printed so far.
func (ta *testApp) output() string {
	s := ta.out.String()
	ta.out.Reset()
	return s
}

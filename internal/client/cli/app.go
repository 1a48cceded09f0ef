package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/config"
	"github.com/dmitrijs2005/shopsphere/internal/client/gateway"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/filex"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

// dbFileName is the preference database inside the data directory.
const dbFileName = "shopsphere.db"

// App is the running storefront client: services plus the state of the
// current screen.
type App struct {
	config *config.Config
	log    logging.Logger
	out    io.Writer
	reader *bufio.Reader
	theme  *Theme
	db     *sql.DB

	store          *session.Store
	authService    services.AuthService
	catalogService services.CatalogService
	cartService    services.CartService
	paymentService services.PaymentService
	orderService   services.OrderService
	prefService    services.PreferenceService
	admin          *services.AdminConsole

	route      string
	form       formState
	filters    services.Filters
	products   []models.Product
	wishlist   models.Wishlist
	cartCount  int
	snapshot   *models.CartSnapshot
	history    *models.OrderHistory
	refreshing bool

	// reveal is set by the session listener when a user appears while the
	// dashboard shows the sign-in prompt.
	reveal      bool
	unsubscribe func()

	// wait blocks for a redirect delay; replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewApp wires the client from configuration: the local preference
// database, the HTTP API client, the session store, the services and the
// terminal payment gateway. Input is read from stdin, output goes to stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	out := io.Writer(os.Stdout)
	theme := NewTheme(isTerminal(int(os.Stdout.Fd())))

	probe := &http.Client{Timeout: c.RequestTimeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	gw := gateway.NewTerminal(gateway.NewLoader(c.CheckoutScriptURL, probe), reader, out)

	store := session.NewStore()
	repos := client.NewRepositories(db)

	a := newApp(c, log, api, store, gw, services.NewPreferenceService(repos.Preferences, theme, log), reader, out, theme)
	a.db = db
	return a, nil
}

// newApp builds the services around api and gw. Tests use it with an
// httptest backend and a scripted gateway.
func newApp(c *config.Config, log logging.Logger, api client.Client, store *session.Store, gw gateway.Gateway,
	prefs services.PreferenceService, reader *bufio.Reader, out io.Writer, theme *Theme) *App {

	cart := services.NewCartService(api, store, log)
	a := &App{
		config:         c,
		log:            log,
		out:            out,
		reader:         reader,
		theme:          theme,
		store:          store,
		authService:    services.NewAuthService(api, store, log),
		catalogService: services.NewCatalogService(api, store, log),
		cartService:    cart,
		paymentService: services.NewPaymentService(api, gw, cart, store, c.PaymentKeyID, log),
		orderService:   services.NewOrderService(api, log),
		prefService:    prefs,
		admin:          services.NewAdminConsole(api, log),
		route:          services.RouteHome,
		filters:        services.DefaultFilters(),
		wait:           sleepCtx,
	}
	cart.OnChange(a.refreshCount)
	return a
}

// Run loads preferences, shows the landing screen and runs the REPL until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	if _, err := a.prefService.Load(ctx); err != nil {
		a.log.Warn(ctx, "load preferences", "err", err)
	}

	fmt.Fprintln(a.out, a.theme.Title("Welcome to "+common.StoreName+" (type 'help' for commands)"))
	report(a.Navigate(ctx, services.RouteHome))
	runREPL(ctx, a, a.reader)
}

// Close releases the API client and the preference database.
func (a *App) Close(ctx context.Context) {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "err", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close database", "err", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) isAdmin() bool {
	u := a.store.Current()
	return u != nil && u.Role == models.RoleAdmin
}

// status is the prompt prefix: route, user and cart badge.
func (a *App) status() string {
	parts := []string{a.route}
	if name := a.store.Username(); name != "" {
		parts = append(parts, name)
		if !a.isAdmin() {
			parts = append(parts, fmt.Sprintf("cart %d", a.cartCount))
		}
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func (a *App) afterCommand(ctx context.Context) {
	if !a.reveal {
		return
	}
	if a.route == services.RouteCustomerDashboard && a.store.Authenticated() {
		report(a.enterDashboard(ctx))
		return
	}
	a.stopWatching()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// requireSession guards customer screens and commands.
func (a *App) requireSession() error {
	if !a.authService.SessionActive() {
		return alert(common.ErrorNotAuthenticated, services.MsgSignIn)
	}
	return nil
}

// refreshCount reloads the header cart badge. It runs after every cart
// change; a failure keeps the previous value.
func (a *App) refreshCount(ctx context.Context) {
	n, err := a.cartService.Count(ctx)
	if err != nil {
		a.log.Warn(ctx, "refresh cart count", "err", err)
		return
	}
	a.cartCount = n
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/common"
)

// routes is every screen reachable with "go <route>".
var routes = []string{
	services.RouteHome,
	services.RouteRegister,
	services.RouteLogin,
	services.RouteAdminLogin,
	services.RouteCustomerDashboard,
	services.RouteOrders,
	services.RouteAdminDashboard,
}

func normalizeRoute(r string) string {
	r = strings.TrimSpace(r)
	if !strings.HasPrefix(r, "/") {
		r = "/" + r
	}
	if len(r) > 1 {
		r = strings.TrimRight(r, "/")
	}
	return strings.ToLower(r)
}

// Navigate switches to route and renders its screen. Form screens prompt
// for their fields right away. Guarded screens leave the current route
// unchanged when access is refused.
func (a *App) Navigate(ctx context.Context, route string) error {
	route = normalizeRoute(route)
	if !slices.Contains(routes, route) {
		return &userError{msg: fmt.Sprintf("Unknown route: %s (known: %s)", route, strings.Join(routes, ", "))}
	}

	switch route {
	case services.RouteOrders:
		if err := a.requireSession(); err != nil {
			return err
		}
	case services.RouteAdminDashboard:
		if !a.isAdmin() {
			return alert(services.ErrAdminOnly, services.MsgAdminOnly)
		}
	}

	if a.route == services.RouteAdminDashboard && route != services.RouteAdminDashboard {
		a.admin.Close()
	}
	// the sign-in forms keep the dashboard watch so a login returns there
	if route != services.RouteCustomerDashboard && route != services.RouteLogin && route != services.RouteRegister {
		a.stopWatching()
	}
	a.route = route
	a.log.Debug(ctx, "navigate", "route", route)

	switch route {
	case services.RouteRegister:
		return a.registerForm(ctx)
	case services.RouteLogin:
		return a.loginForm(ctx, false)
	case services.RouteAdminLogin:
		return a.loginForm(ctx, true)
	case services.RouteCustomerDashboard:
		return a.enterDashboard(ctx)
	case services.RouteOrders:
		return a.showOrders(ctx)
	case services.RouteAdminDashboard:
		a.showAdminCards()
		return nil
	default:
		a.showHome()
		return nil
	}
}

func (a *App) showHome() {
	a.println(a.theme.Title("== " + strings.ToUpper(common.StoreName) + " =="))
	a.println("Shop shirts, pants, accessories and mobiles.")
	a.println(a.theme.Muted("  register      create an account"))
	a.println(a.theme.Muted("  login         sign in"))
	a.println(a.theme.Muted("  admin-login   administrator sign in"))
}

// enterDashboard probes the session. Without one the sign-in prompt is
// shown and the store is watched, so a later sign-in reveals the catalog
// without leaving the screen.
func (a *App) enterDashboard(ctx context.Context) error {
	if !a.authService.SessionActive() {
		a.println(a.theme.Title("== Customer Dashboard =="))
		a.println("Please sign in to see products. Type 'login' or 'register'.")
		a.watchSession()
		return nil
	}
	a.stopWatching()
	a.refreshCount(ctx)
	return a.showDashboard(ctx)
}

func (a *App) watchSession() {
	if a.unsubscribe != nil {
		return
	}
	a.unsubscribe = a.store.Subscribe(func(u *models.User) {
		if u != nil {
			a.reveal = true
		}
	})
}

func (a *App) stopWatching() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.reveal = false
}

// Register, Login and AdminLogin open the matching form screens.
func (a *App) Register(ctx context.Context) error {
	return a.Navigate(ctx, services.RouteRegister)
}

func (a *App) Login(ctx context.Context) error {
	return a.Navigate(ctx, services.RouteLogin)
}

func (a *App) AdminLogin(ctx context.Context) error {
	return a.Navigate(ctx, services.RouteAdminLogin)
}

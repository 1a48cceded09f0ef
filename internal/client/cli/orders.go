package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
)

const msgNoOrders = "You have no orders yet."

func (a *App) Orders(ctx context.Context) error {
	return a.Navigate(ctx, services.RouteOrders)
}

func (a *App) showOrders(ctx context.Context) error {
	if err := a.loadOrders(ctx); err != nil {
		return err
	}
	a.renderOrders()
	return nil
}

func (a *App) loadOrders(ctx context.Context) error {
	h, err := a.orderService.History(ctx)
	if err != nil {
		return alert(err, services.MsgOrdersUnavailable)
	}
	a.history = h
	return nil
}

// Refresh reloads whatever the current screen shows.
func (a *App) Refresh(ctx context.Context) error {
	switch a.route {
	case services.RouteOrders:
		if a.refreshing {
			return nil
		}
		a.refreshing = true
		defer func() { a.refreshing = false }()
		return a.showOrders(ctx)
	case services.RouteCustomerDashboard:
		return a.enterDashboard(ctx)
	case services.RouteAdminDashboard:
		a.showAdminState()
		return nil
	}
	a.println("Nothing to refresh on this screen.")
	return nil
}

func (a *App) renderOrders() {
	a.println(a.theme.Title("== Your Orders =="))
	h := a.history
	if h == nil {
		h = &models.OrderHistory{}
	}
	if h.Username != "" {
		a.printf("Customer: %s (%s)\n", h.Username, h.Role)
	}
	if len(h.Lines) == 0 {
		a.println(msgNoOrders)
		return
	}

	// group lines by order, keeping server order
	var ids []string
	groups := map[string][]models.OrderLine{}
	for _, l := range h.Lines {
		if _, ok := groups[l.OrderID]; !ok {
			ids = append(ids, l.OrderID)
		}
		groups[l.OrderID] = append(groups[l.OrderID], l)
	}
	for _, id := range ids {
		a.println(a.theme.Accent("Order " + id))
		for _, l := range groups[id] {
			a.println(fmt.Sprintf("  %-28s %3d x %10s = %s",
				l.Name, l.Quantity, money(l.PricePerUnit), a.theme.Price(money(l.Subtotal()))))
		}
	}
}

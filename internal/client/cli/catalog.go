package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/common"
)

const (
	msgProductsFailed = "Unable to load products. Please try again."
	msgNoMatches      = "No products match your filters."
	msgOpenDashboard  = "Open the dashboard first: go /customer/dashboard"
)

func categoryNames() []string {
	return models.Categories
}

func lookupCategory(s string) (string, bool) {
	for _, c := range models.Categories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}

func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// Products selects the server-side category ("all" clears it) and reloads
// the catalog, opening the dashboard if another screen is active.
func (a *App) Products(ctx context.Context, args []string) error {
	if len(args) > 0 {
		name := strings.Join(args, " ")
		if strings.EqualFold(name, "all") {
			a.filters.Category = ""
		} else {
			c, ok := lookupCategory(name)
			if !ok {
				return &userError{msg: fmt.Sprintf("Unknown category %q (choose from: %s)", name, strings.Join(categoryNames(), ", "))}
			}
			a.filters.Category = c
		}
	}

	if a.route != services.RouteCustomerDashboard {
		return a.Navigate(ctx, services.RouteCustomerDashboard)
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.showDashboard(ctx)
}

func (a *App) showDashboard(ctx context.Context) error {
	if err := a.loadProducts(ctx); err != nil {
		return err
	}
	a.renderCatalog()
	return nil
}

func (a *App) loadProducts(ctx context.Context) error {
	d, err := a.catalogService.Dashboard(ctx, a.filters.Category)
	if err != nil {
		a.products = nil
		return alert(err, msgProductsFailed)
	}
	a.products = d.Products
	return nil
}

// catalogReady is the precondition of the local filter commands.
func (a *App) catalogReady(ctx context.Context) error {
	if a.route != services.RouteCustomerDashboard {
		return &userError{msg: msgOpenDashboard}
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	if a.products == nil {
		return a.loadProducts(ctx)
	}
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if err := a.catalogReady(ctx); err != nil {
		return err
	}
	a.filters.Search = strings.Join(args, " ")
	a.renderCatalog()
	return nil
}

func (a *App) Price(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("price <min> <max>")
	}
	lo, err := decimal.NewFromString(args[0])
	if err != nil {
		return alert(common.ErrorInvalidNumber, services.MsgInvalidNumber)
	}
	hi, err := decimal.NewFromString(args[1])
	if err != nil {
		return alert(common.ErrorInvalidNumber, services.MsgInvalidNumber)
	}
	if err := a.catalogReady(ctx); err != nil {
		return err
	}
	a.filters.Min, a.filters.Max = lo, hi
	a.renderCatalog()
	return nil
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sort <default|price-low|price-high|name>")
	}
	key, err := services.ParseSortKey(strings.ToLower(args[0]))
	if err != nil {
		return &userError{msg: err.Error(), err: err}
	}
	if err := a.catalogReady(ctx); err != nil {
		return err
	}
	a.filters.Sort = key
	a.renderCatalog()
	return nil
}

// ClearFilters resets category, search, price range and sort. The catalog
// is re-fetched when a category was selected.
func (a *App) ClearFilters(ctx context.Context) error {
	if err := a.catalogReady(ctx); err != nil {
		return err
	}
	hadCategory := a.filters.Category != ""
	a.filters.Clear()
	if hadCategory {
		return a.showDashboard(ctx)
	}
	a.renderCatalog()
	return nil
}

func (a *App) productArg(ctx context.Context, args []string, use string) (models.Product, error) {
	if len(args) != 1 {
		return models.Product{}, usage(use)
	}
	id, err := services.ParseProductID(args[0])
	if err != nil {
		return models.Product{}, &userError{msg: err.Error(), err: err}
	}
	if err := a.catalogReady(ctx); err != nil {
		return models.Product{}, err
	}
	for _, p := range a.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, &userError{msg: fmt.Sprintf("Product %d is not in the catalog.", id)}
}

// View is the quick view of one product.
func (a *App) View(ctx context.Context, args []string) error {
	p, err := a.productArg(ctx, args, "view <product_id>")
	if err != nil {
		return err
	}
	a.println(a.theme.Title(p.Name))
	if p.Description != "" {
		a.println(p.Description)
	}
	a.printf("Price:  %s\n", a.theme.Price(money(p.Price)))
	a.printf("Stock:  %s\n", a.stockLabel(p))
	for _, img := range p.Images {
		a.printf("Image:  %s\n", a.theme.Muted(img))
	}
	if a.wishlist.Has(p.ID) {
		a.println("In your wishlist.")
	}
	if p.InStock() {
		a.println(a.theme.Muted(fmt.Sprintf("Type 'add %d' to add it to your cart.", p.ID)))
	}
	return nil
}

func (a *App) Wish(ctx context.Context, args []string) error {
	p, err := a.productArg(ctx, args, "wish <product_id>")
	if err != nil {
		return err
	}
	if a.wishlist.Toggle(p.ID) {
		a.printf("Added %s to your wishlist.\n", p.Name)
	} else {
		a.printf("Removed %s from your wishlist.\n", p.Name)
	}
	return nil
}

func (a *App) Wishlist(ctx context.Context) error {
	if err := a.catalogReady(ctx); err != nil {
		return err
	}
	a.println(a.theme.Title(fmt.Sprintf("== Wishlist (%d) ==", a.wishlist.Len())))
	if a.wishlist.Len() == 0 {
		a.println("Your wishlist is empty.")
		return nil
	}
	byID := make(map[int64]models.Product, len(a.products))
	for _, p := range a.products {
		byID[p.ID] = p
	}
	for _, id := range a.wishlist.IDs() {
		if p, ok := byID[id]; ok {
			a.println(a.productRow(p))
		} else {
			a.printf("  #%-4d %s\n", id, a.theme.Muted("not in the current catalog view"))
		}
	}
	return nil
}

func (a *App) stockLabel(p models.Product) string {
	if !p.InStock() {
		return a.theme.Warn("OUT OF STOCK")
	}
	return fmt.Sprintf("%d left", p.Stock)
}

func (a *App) productRow(p models.Product) string {
	heart := " "
	if a.wishlist.Has(p.ID) {
		heart = "♥"
	}
	return fmt.Sprintf("%s #%-4d %-28s %12s  %s", heart, p.ID, p.Name, a.theme.Price(money(p.Price)), a.stockLabel(p))
}

func (a *App) filterSummary() string {
	f := a.filters
	cat := f.Category
	if cat == "" {
		cat = "all"
	}
	parts := []string{"category: " + cat}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", f.Search))
	}
	parts = append(parts,
		fmt.Sprintf("price: %s-%s", f.Min.String(), f.Max.String()),
		"sort: "+string(f.Sort),
	)
	return strings.Join(parts, " | ")
}

func (a *App) renderCatalog() {
	name := a.store.Username()
	if name == "" {
		name = "guest"
	}
	a.println(a.theme.Title("== Customer Dashboard =="))
	a.printf("Signed in as %s | Cart: %d | Wishlist: %d\n", name, a.cartCount, a.wishlist.Len())
	a.println(a.theme.Muted(a.filterSummary()))

	visible := services.FilterProducts(a.products, a.filters.Criteria)
	if len(visible) == 0 {
		a.println(msgNoMatches)
		return
	}
	for _, p := range visible {
		a.println(a.productRow(p))
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/common"
)

const (
	msgCartFailed       = "Unable to load your cart. Please try again."
	msgPaymentDismissed = "Payment cancelled."
)

// Add puts one unit of a catalog product into the cart and opens the cart.
func (a *App) Add(ctx context.Context, args []string) error {
	p, err := a.productArg(ctx, args, "add <product_id>")
	if err != nil {
		return err
	}
	if err := a.cartService.Add(ctx, p); err != nil {
		return alert(err, services.MsgAddFailed)
	}
	a.printf("Added %s to your cart.\n", p.Name)
	return a.Cart(ctx)
}

// Cart fetches and shows the cart.
func (a *App) Cart(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	snap, err := a.cartService.Snapshot(ctx)
	a.snapshot = snap
	if err != nil {
		return alert(err, msgCartFailed)
	}
	a.renderCart()
	return nil
}

func (a *App) lineArg(ctx context.Context, arg string) (models.CartLine, error) {
	id, err := services.ParseProductID(arg)
	if err != nil {
		return models.CartLine{}, &userError{msg: err.Error(), err: err}
	}
	if err := a.requireSession(); err != nil {
		return models.CartLine{}, err
	}
	if a.snapshot == nil {
		snap, err := a.cartService.Snapshot(ctx)
		a.snapshot = snap
		if err != nil {
			return models.CartLine{}, alert(err, msgCartFailed)
		}
	}
	line, ok := a.snapshot.Line(id)
	if !ok {
		return models.CartLine{}, &userError{msg: fmt.Sprintf("Product %d is not in your cart.", id)}
	}
	return line, nil
}

// mutate runs one cart change and shows the re-fetched cart.
func (a *App) mutate(snap *models.CartSnapshot, err error, fallback string) error {
	if err != nil {
		return alert(err, fallback)
	}
	a.snapshot = snap
	a.renderCart()
	return nil
}

func (a *App) Increment(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("inc <product_id>")
	}
	line, err := a.lineArg(ctx, args[0])
	if err != nil {
		return err
	}
	snap, err := a.cartService.Increment(ctx, line)
	return a.mutate(snap, err, services.MsgUpdateFailed)
}

func (a *App) Decrement(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("dec <product_id>")
	}
	line, err := a.lineArg(ctx, args[0])
	if err != nil {
		return err
	}
	snap, err := a.cartService.Decrement(ctx, line)
	return a.mutate(snap, err, services.MsgUpdateFailed)
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rm <product_id>")
	}
	line, err := a.lineArg(ctx, args[0])
	if err != nil {
		return err
	}
	snap, err := a.cartService.Delete(ctx, line.ProductID)
	return a.mutate(snap, err, services.MsgRemoveFailed)
}

// Quantity sets an absolute quantity; below one removes the line.
func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("qty <product_id> <quantity>")
	}
	q, err := strconv.Atoi(args[1])
	if err != nil {
		return alert(common.ErrorInvalidNumber, services.MsgInvalidNumber)
	}
	line, err := a.lineArg(ctx, args[0])
	if err != nil {
		return err
	}
	snap, err := a.cartService.UpdateQuantity(ctx, line.ProductID, q)
	return a.mutate(snap, err, services.MsgUpdateFailed)
}

// Checkout pays for the cart through the hosted gateway.
func (a *App) Checkout(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if a.snapshot == nil {
		snap, err := a.cartService.Snapshot(ctx)
		a.snapshot = snap
		if err != nil {
			return alert(err, msgCartFailed)
		}
	}

	res, err := a.paymentService.Checkout(ctx, a.snapshot)
	if err != nil {
		return alert(err, services.MsgPaymentFailed)
	}

	switch res.Status {
	case services.CheckoutPaid:
		a.println(a.theme.Accent(services.MsgPaymentSucceeded))
		if res.Snapshot != nil {
			a.snapshot = res.Snapshot
		}
		a.renderCart()
	case services.CheckoutDismissed:
		a.println(msgPaymentDismissed)
	}
	return nil
}

func (a *App) renderCart() {
	snap := a.snapshot
	if snap == nil {
		snap = &models.CartSnapshot{}
	}
	a.println(a.theme.Title(fmt.Sprintf("== Your Cart (%d) ==", snap.ItemCount())))
	if snap.Empty() {
		a.println(services.MsgEmptyCart)
		return
	}
	for _, l := range snap.Lines {
		busy := ""
		if a.cartService.Updating(l.ProductID) {
			busy = a.theme.Muted(" (updating)")
		}
		a.printf("  #%-4d %-28s %3d x %10s = %s%s\n",
			l.ProductID, l.Name, l.Quantity, money(l.PricePerUnit), a.theme.Price(money(l.TotalPrice)), busy)
	}
	a.printf("Total: %s\n", a.theme.Price(money(snap.OverallTotal)))
	a.println(a.theme.Muted("inc|dec|rm <id>, qty <id> <n>, checkout"))
}

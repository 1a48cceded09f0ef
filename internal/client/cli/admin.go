package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopsphere/internal/client/services"
)

const adminUsage = "admin [list | select <id|n> | set <field> <value> | submit | show | close]"

// Admin drives the admin console: pick an operation card, fill its form,
// submit it and read the server's reply.
func (a *App) Admin(ctx context.Context, args []string) error {
	if a.route != services.RouteAdminDashboard {
		if err := a.Navigate(ctx, services.RouteAdminDashboard); err != nil {
			return err
		}
		if len(args) == 0 {
			return nil
		}
	}
	if len(args) == 0 {
		a.showAdminCards()
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "list":
		a.showAdminCards()
	case "select", "open":
		if len(args) != 2 {
			return usage("admin select <id|n>")
		}
		if _, err := a.admin.Select(args[1]); err != nil {
			return &userError{msg: err.Error(), err: err}
		}
		a.showAdminState()
	case "set":
		if len(args) < 2 {
			return usage("admin set <field> <value>")
		}
		value := strings.Join(args[2:], " ")
		if err := a.admin.Set(args[1], value); err != nil {
			return &userError{msg: err.Error(), err: err}
		}
		a.printf("%s = %q\n", args[1], value)
	case "submit":
		return a.adminSubmit(ctx)
	case "show":
		a.showAdminState()
	case "close":
		a.admin.Close()
		a.showAdminCards()
	default:
		return usage(adminUsage)
	}
	return nil
}

func (a *App) adminSubmit(ctx context.Context) error {
	op, ok := a.admin.Active()
	if !ok {
		return &userError{msg: "Select an operation first: admin select <id|n>", err: services.ErrNoOperation}
	}
	a.println(a.theme.Muted(a.admin.SubmitLabel() + ": " + op.Title + "..."))

	if _, err := a.admin.Submit(ctx); err != nil {
		a.println(a.theme.Warn(a.admin.ErrorText()))
		return nil
	}
	a.showAdminState()
	return nil
}

func (a *App) showAdminCards() {
	a.println(a.theme.Title("== Admin Dashboard =="))
	for i, op := range services.Operations {
		a.printf("  [%d] %-18s %s\n", i+1, op.Title, a.theme.Muted(op.Team))
		a.printf("      %s\n", op.Description)
	}
	a.println(a.theme.Muted("admin select <n> to open an operation"))
}

func (a *App) showAdminState() {
	op, ok := a.admin.Active()
	if !ok {
		a.showAdminCards()
		return
	}
	a.println(a.theme.Title("== " + op.Title + " =="))
	a.println(op.Description)

	form := a.admin.Form()
	for _, f := range a.admin.VisibleFields() {
		v, _ := form.Get(f)
		a.printf("  %-12s %s\n", f, v)
	}
	if text := a.admin.ErrorText(); text != "" {
		a.println(a.theme.Warn(text))
	}
	if resp := a.admin.Response(); resp != nil {
		a.println(a.theme.Accent("Response:"))
		a.println(services.RenderResponse(resp))
	}
	a.println(a.theme.Muted(fmt.Sprintf("admin set <field> <value>, then 'admin submit' (%s)", a.admin.SubmitLabel())))
}

package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
	"github.com/dmitrijs2005/shopsphere/internal/common"
)

// getSimpleText, getPassword and getChoice are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getChoice     = GetChoice
)

type formStatus int

const (
	formIdle formStatus = iota
	formSubmitting
	formSuccess
	formError
)

// formState tracks one auth form: idle → submitting → success | error.
type formState struct {
	status  formStatus
	message string
}

func (f *formState) begin() {
	f.status = formSubmitting
	f.message = ""
}

// done settles a submission that neither succeeded nor failed, for example
// when the context was cancelled mid-call.
func (f *formState) done() {
	if f.status == formSubmitting {
		f.status = formIdle
	}
}

func (f *formState) succeed(msg string) {
	f.status = formSuccess
	f.message = msg
}

func (f *formState) fail(msg string) {
	f.status = formError
	f.message = msg
}

const (
	msgLoginSuccess    = "Login successful! Redirecting..."
	msgRegisterSuccess = "Registration successful! Redirecting to login..."
	msgLoggedOut       = "You have been logged out."
)

// loginForm prompts for credentials and signs in. The admin variant only
// accepts ADMIN accounts. On success the banner stays for the configured
// delay before navigating to the role's screen.
func (a *App) loginForm(ctx context.Context, admin bool) error {
	title := "== Sign in =="
	if admin {
		title = "== Admin sign in =="
	}
	a.println(a.theme.Title(title))

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	login := a.authService.Login
	if admin {
		login = a.authService.AdminLogin
	}

	a.form.begin()
	defer a.form.done()

	res, err := login(ctx, username, string(password))
	if err != nil {
		ue := alert(err, services.MsgLoginFailed)
		a.form.fail(ue.Error())
		return ue
	}

	a.form.succeed(msgLoginSuccess)
	a.println(a.theme.Accent(msgLoginSuccess))
	if err := a.wait(ctx, a.config.LoginRedirectDelay); err != nil {
		return err
	}
	if a.unsubscribe != nil && res.Route == services.RouteCustomerDashboard {
		// the dashboard watch renders the catalog after this command
		a.route = res.Route
		return nil
	}
	return a.Navigate(ctx, res.Route)
}

// registerForm collects username, email, password and role, creates the
// account and then moves on to the login screen.
func (a *App) registerForm(ctx context.Context) error {
	a.println(a.theme.Title("== Create account =="))

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getChoice(a.reader, "Role",
		[]string{string(models.RoleCustomer), string(models.RoleAdmin)}, string(models.RoleCustomer), a.out)
	if err != nil {
		return &userError{msg: err.Error(), err: err}
	}

	a.form.begin()
	defer a.form.done()

	err = a.authService.Register(ctx, services.RegisterInput{
		Username: username,
		Email:    email,
		Password: string(password),
		Role:     models.Role(strings.ToUpper(role)),
	})
	if err != nil {
		ue := alert(err, services.MsgRegisterFailed)
		a.form.fail(ue.Error())
		return ue
	}

	a.form.succeed(msgRegisterSuccess)
	a.println(a.theme.Accent(msgRegisterSuccess))
	if err := a.wait(ctx, a.config.RegisterRedirectDelay); err != nil {
		return err
	}
	return a.Navigate(ctx, services.RouteLogin)
}

// Logout ends the session. Local state is dropped even when the backend
// call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout failed", "err", err)
	}

	a.products = nil
	a.snapshot = nil
	a.history = nil
	a.cartCount = 0
	a.wishlist = models.Wishlist{}
	a.filters = services.DefaultFilters()
	a.admin.Close()

	a.println(msgLoggedOut)
	return a.Navigate(ctx, services.RouteHome)
}

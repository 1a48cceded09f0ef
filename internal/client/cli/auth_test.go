package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/services"
)

func TestLogin_CustomerLandsOnDashboard(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "asha", "secret")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, services.RouteCustomerDashboard, a.route)
	assert.Equal(t, formSuccess, a.form.status)
	assert.Equal(t, "asha", a.store.Username())
	assert.Equal(t, []time.Duration{a.config.LoginRedirectDelay}, a.waits)

	out := a.output()
	assert.Contains(t, out, msgLoginSuccess)
	assert.Contains(t, out, "Linen Shirt")
	assert.Contains(t, out, "OUT OF STOCK")
}

func TestLogin_AdminRoleGoesToAdminDashboard(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "root", "secret")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, services.RouteAdminDashboard, a.route)
	assert.Contains(t, a.output(), "Monthly Business")
}

func TestLogin_ServerErrorShownVerbatim(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "asha", "wrong")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, services.RouteLogin, a.route)
	assert.Equal(t, formError, a.form.status)
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.waits)
}

func TestLogin_UnknownRoleRejected(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "ghost", "secret")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.MsgInvalidRole, err.Error())
	assert.False(t, a.isLoggedIn())
}

func TestLogin_BlankFieldsNoRequest(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "", "")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.MsgRequired, err.Error())
	assert.Zero(t, b.count("POST /api/auth/login"))
}

func TestAdminLogin_CustomerRefused(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "asha", "secret")

	err := a.AdminLogin(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.MsgAdminOnly, err.Error())
	assert.Equal(t, services.RouteAdminLogin, a.route)
	assert.False(t, a.isLoggedIn())
}

func TestRegister_ThenLoginScreen(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b,
		"neha", "neha@example.org", "pw", "",
		// login form opened after the redirect
		"neha", "pw",
	)

	require.NoError(t, a.Register(context.Background()))

	reg := b.seen().registered
	require.Len(t, reg, 1)
	assert.Equal(t, client.RegisterRequest{Username: "neha", Email: "neha@example.org", Password: "pw", Role: "CUSTOMER"}, reg[0])
	assert.Equal(t, services.RouteCustomerDashboard, a.route)
	assert.Equal(t, a.config.RegisterRedirectDelay, a.waits[0])
	assert.Contains(t, a.output(), msgRegisterSuccess)
}

func TestRegister_DuplicateUser(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "asha", "a@x.io", "pw", "customer")

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Username already exists", err.Error())
	assert.Equal(t, services.RouteRegister, a.route)
	assert.Equal(t, formError, a.form.status)
}

func TestRegister_BadRoleChoice(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b, "neha", "n@x.io", "pw", "SUPPLIER")

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option")
	assert.Empty(t, b.seen().registered)
}

func TestLogout_ClearsState(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b)
	a.signIn(t, "asha")
	a.wishlist.Toggle(1)
	a.cartCount = 2
	a.filters.Search = "shirt"

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.False(t, a.authService.SessionActive())
	assert.Zero(t, a.cartCount)
	assert.Zero(t, a.wishlist.Len())
	assert.Equal(t, services.DefaultFilters(), a.filters)
	assert.Equal(t, services.RouteHome, a.route)
	assert.Contains(t, a.output(), msgLoggedOut)
}

func TestLogout_BackendFailureStillSignsOut(t *testing.T) {
	b := newFakeBackend(t)
	a := newTestApp(t, b)
	a.signIn(t, "asha")
	b.failOn("POST /api/auth/logout", 500, "boom")

	require.NoError(t, a.Logout(context.Background()))
	assert.Nil(t, a.store.Current())
	assert.Equal(t, services.RouteHome, a.route)
}

func TestFormState_DoneSettlesSubmitting(t *testing.T) {
	var f formState
	f.begin()
	assert.Equal(t, formSubmitting, f.status)
	f.done()
	assert.Equal(t, formIdle, f.status)

	f.begin()
	f.succeed("ok")
	f.done()
	assert.Equal(t, formSuccess, f.status)
	assert.Equal(t, "ok", f.message)
}

func TestRouteForRole_MatchesScreens(t *testing.T) {
	for _, role := range []models.Role{models.RoleCustomer, models.RoleAdmin} {
		r, err := services.RouteForRole(role)
		require.NoError(t, err)
		assert.Contains(t, routes, r)
	}
}

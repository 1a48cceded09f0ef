package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

func newAuth(fc *fakeClient) (AuthService, *session.Store) {
	store := session.NewStore()
	return NewAuthService(fc, store, logging.Nop()), store
}

func TestRouteForRole(t *testing.T) {
	r, err := RouteForRole(models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, RouteCustomerDashboard, r)

	r, err = RouteForRole(models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RouteAdminDashboard, r)

	_, err = RouteForRole("SELLER")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin_CustomerPublishesSession(t *testing.T) {
	fc := &fakeClient{LoginRole: models.RoleCustomer}
	a, store := newAuth(fc)

	var published *models.User
	store.Subscribe(func(u *models.User) { published = u })

	res, err := a.Login(context.Background(), "asha", "pw")
	require.NoError(t, err)
	assert.Equal(t, RouteCustomerDashboard, res.Route)
	assert.Equal(t, [2]string{"asha", "pw"}, fc.LastLogin)
	require.NotNil(t, published)
	assert.Equal(t, models.User{Name: "asha", Role: models.RoleCustomer}, *published)
}

func TestLogin_UnknownRoleDoesNotPublish(t *testing.T) {
	fc := &fakeClient{LoginRole: "SELLER"}
	a, store := newAuth(fc)

	_, err := a.Login(context.Background(), "asha", "pw")
	require.ErrorIs(t, err, ErrInvalidRole)
	assert.False(t, store.Authenticated())
	assert.Equal(t, MsgInvalidRole, UserMessage(err, MsgLoginFailed))
}

func TestLogin_ServerErrorSurfaced(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.APIError{Status: 401, Message: "Invalid credentials"}}
	a, store := newAuth(fc)

	_, err := a.Login(context.Background(), "asha", "bad")
	require.Error(t, err)
	assert.False(t, store.Authenticated())
	assert.Equal(t, "Invalid credentials", UserMessage(err, MsgLoginFailed))
}

func TestLogin_GenericFallback(t *testing.T) {
	fc := &fakeClient{LoginErr: errors.New("decode /api/auth/login: EOF")}
	a, _ := newAuth(fc)

	_, err := a.Login(context.Background(), "asha", "pw")
	assert.Equal(t, MsgLoginFailed, UserMessage(err, MsgLoginFailed))
}

func TestLogin_RequiredFieldsCheckedBeforeCall(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newAuth(fc)

	_, err := a.Login(context.Background(), "  ", "pw")
	require.ErrorIs(t, err, common.ErrorRequiredField)
	assert.Zero(t, fc.calls("Login"))
}

func TestAdminLogin(t *testing.T) {
	t.Run("admin accepted", func(t *testing.T) {
		fc := &fakeClient{LoginRole: models.RoleAdmin}
		a, store := newAuth(fc)

		res, err := a.AdminLogin(context.Background(), "root", "pw")
		require.NoError(t, err)
		assert.Equal(t, RouteAdminDashboard, res.Route)
		assert.True(t, store.Authenticated())
	})

	t.Run("customer rejected", func(t *testing.T) {
		fc := &fakeClient{LoginRole: models.RoleCustomer}
		a, store := newAuth(fc)

		_, err := a.AdminLogin(context.Background(), "asha", "pw")
		require.ErrorIs(t, err, ErrAdminOnly)
		assert.False(t, store.Authenticated())
		assert.Equal(t, MsgAdminOnly, UserMessage(err, MsgLoginFailed))
	})
}

func TestRegister_DefaultsRoleAndSends(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newAuth(fc)

	err := a.Register(context.Background(), RegisterInput{Username: "asha", Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, client.RegisterRequest{Username: "asha", Email: "a@x.io", Password: "pw", Role: "CUSTOMER"}, fc.LastRegister)
}

func TestRegister_Errors(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.APIError{Status: 409, Message: "Username already exists"}}
	a, _ := newAuth(fc)

	err := a.Register(context.Background(), RegisterInput{Username: "asha", Email: "a@x.io", Password: "pw"})
	assert.Equal(t, "Username already exists", UserMessage(err, MsgRegisterFailed))

	err = a.Register(context.Background(), RegisterInput{Username: "asha", Password: "pw"})
	require.ErrorIs(t, err, common.ErrorRequiredField)
}

func TestLogout_AlwaysClearsSession(t *testing.T) {
	fc := &fakeClient{LogoutErr: client.ErrUnavailable}
	a, store := newAuth(fc)
	store.Set(&models.User{Name: "asha"})

	err := a.Logout(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, store.Authenticated())
}

func TestSessionActive_StoreThenCookie(t *testing.T) {
	fc := &fakeClient{}
	a, store := newAuth(fc)
	assert.False(t, a.SessionActive())

	fc.HasSessionRet = true
	assert.True(t, a.SessionActive())

	fc.HasSessionRet = false
	store.Set(&models.User{Name: "asha"})
	assert.True(t, a.SessionActive())
}

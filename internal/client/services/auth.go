// Package services contains application services for the ShopSphere client.
// This file defines the authentication service: customer and admin login,
// registration, logout and the session probe used by the dashboard.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

// Navigation targets decided by the services.
const (
	RouteHome              = "/"
	RouteRegister          = "/register"
	RouteLogin             = "/login"
	RouteAdminLogin        = "/admin"
	RouteCustomerDashboard = "/customer/dashboard"
	RouteOrders            = "/orders"
	RouteAdminDashboard    = "/admindashboard"
)

// AuthResult is a successful login.
type AuthResult struct {
	Role  models.Role
	Route string
}

// RouteForRole maps a backend role to the screen it lands on.
func RouteForRole(role models.Role) (string, error) {
	switch role {
	case models.RoleCustomer:
		return RouteCustomerDashboard, nil
	case models.RoleAdmin:
		return RouteAdminDashboard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate; publish the user only for a known role.
//   - AdminLogin: same endpoint, only ADMIN is accepted.
//   - Register: create an account; the caller then navigates to login.
//   - Logout: end the backend session; the local session is always cleared.
//   - SessionActive: session probe (store first, then cookie presence).
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	AdminLogin(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) error
	Logout(ctx context.Context) error
	SessionActive() bool
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

func required(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return common.ErrorRequiredField
		}
	}
	return nil
}

func (a *authService) login(ctx context.Context, username, password string, adminOnly bool) (*AuthResult, error) {
	if err := required(username, password); err != nil {
		return nil, err
	}

	role, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if adminOnly && role != models.RoleAdmin {
		a.log.Warn(ctx, "non-admin login on admin screen", "user", username, "role", role)
		return nil, ErrAdminOnly
	}

	route, err := RouteForRole(role)
	if err != nil {
		a.log.Warn(ctx, "login returned unknown role", "user", username, "role", role)
		return nil, err
	}

	a.store.Set(&models.User{Name: username, Role: role})
	a.log.Info(ctx, "logged in", "user", username, "role", role)
	return &AuthResult{Role: role, Route: route}, nil
}

func (a *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	return a.login(ctx, username, password, false)
}

func (a *authService) AdminLogin(ctx context.Context, username, password string) (*AuthResult, error) {
	return a.login(ctx, username, password, true)
}

func (a *authService) Register(ctx context.Context, in RegisterInput) error {
	if err := required(in.Username, in.Email, in.Password); err != nil {
		return err
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}

	err := a.client.Register(ctx, client.RegisterRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     string(in.Role),
	})
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.log.Info(ctx, "registered", "user", in.Username, "role", in.Role)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	defer a.store.Clear()
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) SessionActive() bool {
	return a.store.Authenticated() || a.client.HasSession()
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

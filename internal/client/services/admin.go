package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

type OperationID string

const (
	OpAddProduct      OperationID = "addProduct"
	OpDeleteProduct   OperationID = "deleteProduct"
	OpModifyUser      OperationID = "modifyUser"
	OpViewUser        OperationID = "viewUser"
	OpMonthlyBusiness OperationID = "monthlyBusiness"
	OpDailyBusiness   OperationID = "dailyBusiness"
	OpYearlyBusiness  OperationID = "yearlyBusiness"
	OpOverallBusiness OperationID = "overallBusiness"
)

// Operation describes one admin action card.
type Operation struct {
	ID          OperationID
	Title       string
	Description string
	Team        string
	// Fields are the form fields the operation reads.
	Fields []string
}

// Operations is the admin registry in display order.
var Operations = []Operation{
	{OpAddProduct, "Add Product", "Create a new product listing with pricing and inventory.", "Inventory Ops",
		[]string{"name", "description", "price", "stock", "categoryId", "imageUrl"}},
	{OpDeleteProduct, "Delete Product", "Remove outdated or unavailable products from catalog.", "Inventory Ops",
		[]string{"productId"}},
	{OpModifyUser, "Modify User", "Update user profiles, access levels, and credentials.", "Customer Success",
		[]string{"userId", "username", "email", "role"}},
	{OpViewUser, "View User Details", "Quickly view specific user information and roles.", "Customer Success",
		[]string{"userId"}},
	{OpMonthlyBusiness, "Monthly Business", "Analyze revenue for any month and year combination.", "Finance",
		[]string{"month", "year"}},
	{OpDailyBusiness, "Daily Business", "Track performance and volume for any specific day.", "Finance",
		[]string{"date"}},
	{OpYearlyBusiness, "Yearly Business", "Review annual revenue trends and KPIs.", "Finance",
		[]string{"year"}},
	{OpOverallBusiness, "Overall Business", "Get a snapshot of total revenue since inception.", "Executive",
		nil},
}

// LookupOperation finds an operation by id (case-insensitive) or by its
// 1-based position in Operations.
func LookupOperation(key string) (Operation, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(Operations) {
			return Operations[n-1], true
		}
		return Operation{}, false
	}
	for _, op := range Operations {
		if strings.EqualFold(string(op.ID), key) {
			return op, true
		}
	}
	return Operation{}, false
}

const (
	LabelFetchDetails = "Fetch Details"
	LabelSubmit       = "Submit"
)

// AdminConsole is the state of the admin dashboard: the open operation, its
// form, the last response and the last error. Not safe for concurrent use.
type AdminConsole struct {
	client client.Client
	log    logging.Logger

	active      *Operation
	form        models.AdminForm
	fetchedUser any
	response    any
	errText     string
	loading     bool
}

func NewAdminConsole(c client.Client, log logging.Logger) *AdminConsole {
	a := &AdminConsole{client: c, log: log}
	a.form.Reset()
	return a
}

// Select opens the operation and resets form, fetched user, response and
// error.
func (a *AdminConsole) Select(key string) (Operation, error) {
	op, ok := LookupOperation(key)
	if !ok {
		return Operation{}, fmt.Errorf("unknown admin operation %q", key)
	}
	a.active = &op
	a.reset()
	return op, nil
}

// Close leaves the current operation. State is reset the same way as Select.
func (a *AdminConsole) Close() {
	a.active = nil
	a.reset()
}

func (a *AdminConsole) reset() {
	a.form.Reset()
	a.fetchedUser = nil
	a.response = nil
	a.errText = ""
}

func (a *AdminConsole) Active() (Operation, bool) {
	if a.active == nil {
		return Operation{}, false
	}
	return *a.active, true
}

// VisibleFields are the fields the user may edit right now. For modify user
// only the id is editable until the user has been fetched.
func (a *AdminConsole) VisibleFields() []string {
	if a.active == nil {
		return nil
	}
	if a.active.ID == OpModifyUser && a.fetchedUser == nil {
		return []string{"userId"}
	}
	return a.active.Fields
}

func (a *AdminConsole) Set(field, value string) error {
	if a.active == nil {
		return ErrNoOperation
	}
	visible := slices.IndexFunc(a.VisibleFields(), func(f string) bool { return strings.EqualFold(f, field) }) >= 0
	if !visible {
		return fmt.Errorf("field %q is not part of %s", field, a.active.Title)
	}
	return a.form.Set(field, value)
}

func (a *AdminConsole) Form() models.AdminForm { return a.form }
func (a *AdminConsole) Response() any          { return a.response }
func (a *AdminConsole) FetchedUser() any       { return a.fetchedUser }
func (a *AdminConsole) ErrorText() string      { return a.errText }
func (a *AdminConsole) Loading() bool          { return a.loading }

func (a *AdminConsole) SubmitLabel() string {
	if a.active != nil && a.active.ID == OpModifyUser && a.fetchedUser == nil {
		return LabelFetchDetails
	}
	return LabelSubmit
}

// Submit runs the open operation with the current form. The response (or
// the error text) is kept on the console for rendering.
func (a *AdminConsole) Submit(ctx context.Context) (any, error) {
	if a.active == nil {
		return nil, ErrNoOperation
	}

	a.loading = true
	defer func() { a.loading = false }()
	a.errText = ""
	a.response = nil

	v, err := a.dispatch(ctx, a.active.ID)
	if err != nil {
		a.errText = AdminErrorText(err)
		a.log.Warn(ctx, "admin operation failed", "op", a.active.ID, "err", err)
		return nil, err
	}
	a.response = v
	a.log.Info(ctx, "admin operation done", "op", a.active.ID)
	return v, nil
}

func (a *AdminConsole) dispatch(ctx context.Context, id OperationID) (any, error) {
	switch id {
	case OpAddProduct:
		return a.addProduct(ctx)
	case OpDeleteProduct:
		return a.deleteProduct(ctx)
	case OpModifyUser:
		if a.fetchedUser == nil {
			return a.fetchUser(ctx)
		}
		return a.modifyUser(ctx)
	case OpViewUser:
		return a.client.AdminGetUser(ctx, a.form.UserID)
	case OpMonthlyBusiness:
		return a.client.AdminBusiness(ctx, client.PeriodMonthly, url.Values{"month": {a.form.Month}, "year": {a.form.Year}})
	case OpDailyBusiness:
		return a.client.AdminBusiness(ctx, client.PeriodDaily, url.Values{"date": {a.form.Date}})
	case OpYearlyBusiness:
		return a.client.AdminBusiness(ctx, client.PeriodYearly, url.Values{"year": {a.form.Year}})
	case OpOverallBusiness:
		return a.client.AdminBusiness(ctx, client.PeriodOverall, nil)
	}
	return nil, ErrNoOperation
}

func (a *AdminConsole) addProduct(ctx context.Context) (any, error) {
	price, err := parseDecimal("price", a.form.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseInt("stock", a.form.Stock)
	if err != nil {
		return nil, err
	}
	category, err := parseInt("categoryId", a.form.CategoryID)
	if err != nil {
		return nil, err
	}
	return a.client.AdminAddProduct(ctx, client.AddProductRequest{
		Name:        a.form.Name,
		Description: a.form.Description,
		Price:       price,
		Stock:       int(stock),
		CategoryID:  category,
		ImageURL:    a.form.ImageURL,
	})
}

func (a *AdminConsole) deleteProduct(ctx context.Context) (any, error) {
	id, err := parseInt("productId", a.form.ProductID)
	if err != nil {
		return nil, err
	}
	return a.client.AdminDeleteProduct(ctx, id)
}

// fetchUser is the first phase of modify user: it loads the record and
// pre-fills username, email and role.
func (a *AdminConsole) fetchUser(ctx context.Context) (any, error) {
	if strings.TrimSpace(a.form.UserID) == "" {
		return nil, ErrUserIDRequired
	}
	v, err := a.client.AdminGetUser(ctx, a.form.UserID)
	if err != nil {
		return nil, err
	}
	if rec, ok := v.(map[string]any); ok {
		if s, ok := rec["username"].(string); ok {
			a.form.Username = s
		}
		if s, ok := rec["email"].(string); ok {
			a.form.Email = s
		}
		if s, ok := rec["role"].(string); ok {
			a.form.Role = s
		}
	}
	if v == nil {
		v = map[string]any{}
	}
	a.fetchedUser = v
	return v, nil
}

func (a *AdminConsole) modifyUser(ctx context.Context) (any, error) {
	id, err := parseInt("userId", a.form.UserID)
	if err != nil {
		return nil, err
	}
	return a.client.AdminModifyUser(ctx, client.ModifyUserRequest{
		UserID:   id,
		Username: a.form.Username,
		Email:    a.form.Email,
		Role:     a.form.Role,
	})
}

// Empty numeric fields are sent as zero.
func parseInt(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, common.ErrorInvalidNumber)
	}
	return n, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, common.ErrorInvalidNumber)
	}
	return d, nil
}

// AdminErrorText prefers the server's reply, then the transport message.
func AdminErrorText(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		if p := apiErr.Payload(); p != "" {
			return p
		}
		return apiErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return err.Error()
	case errors.Is(err, ErrUserIDRequired):
		return MsgUserIDRequired
	case errors.Is(err, common.ErrorInvalidNumber):
		return err.Error()
	default:
		return MsgSomethingWrong
	}
}

// RenderResponse formats a generic admin reply: each element of an array
// as its own indented block, an object as one block, a scalar as text.
func RenderResponse(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		blocks := make([]string, 0, len(t))
		for _, item := range t {
			blocks = append(blocks, indentJSON(item))
		}
		return strings.Join(blocks, "\n\n")
	case map[string]any:
		return indentJSON(t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

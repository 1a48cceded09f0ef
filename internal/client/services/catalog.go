package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// SortKeys lists the accepted sort keys in display order.
var SortKeys = []SortKey{SortDefault, SortPriceLow, SortPriceHigh, SortName}

func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(100000)
)

// Criteria are the client-side catalog filters.
type Criteria struct {
	Search string
	Min    decimal.Decimal
	Max    decimal.Decimal
	Sort   SortKey
}

func DefaultCriteria() Criteria {
	return Criteria{Min: DefaultMinPrice, Max: DefaultMaxPrice, Sort: SortDefault}
}

// Filters is the full browsing state of the dashboard. Category is applied
// by the server, Criteria locally.
type Filters struct {
	Category string
	Criteria
}

func DefaultFilters() Filters {
	return Filters{Criteria: DefaultCriteria()}
}

// Clear resets category, search, price range and sort.
func (f *Filters) Clear() {
	*f = DefaultFilters()
}

func matchesSearch(p models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// FilterProducts applies search, then the inclusive price bound, then the
// sort. The input slice is never modified.
func FilterProducts(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))

	q := strings.ToLower(strings.TrimSpace(c.Search))
	for _, p := range products {
		if q != "" && !matchesSearch(p, q) {
			continue
		}
		if p.Price.LessThan(c.Min) || p.Price.GreaterThan(c.Max) {
			continue
		}
		out = append(out, p)
	}

	switch c.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b models.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b models.Product) int { return b.Price.Cmp(a.Price) })
	case SortName:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return cmp.Or(
				strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
				strings.Compare(a.Name, b.Name),
			)
		})
	}
	return out
}

// CatalogService loads the product dashboard.
type CatalogService interface {
	// Dashboard fetches products, optionally for one category. A user object
	// in the reply is published to the session store.
	Dashboard(ctx context.Context, category string) (*models.Dashboard, error)
}

type catalogService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewCatalogService(c client.Client, store *session.Store, log logging.Logger) CatalogService {
	return &catalogService{client: c, store: store, log: log}
}

func (s *catalogService) Dashboard(ctx context.Context, category string) (*models.Dashboard, error) {
	d, err := s.client.Products(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("products error: %w", err)
	}
	if d.User != nil && d.User.Name != "" {
		u := *d.User
		cur := s.store.Current()
		if cur != nil && cur.Name == u.Name {
			// the dashboard user may omit fields known from login
			u.Role = cmp.Or(u.Role, cur.Role)
			u.Email = cmp.Or(u.Email, cur.Email)
		}
		if cur == nil || *cur != u {
			s.store.Set(&u)
		}
	}
	s.log.Debug(ctx, "dashboard loaded", "category", category, "products", len(d.Products))
	return d, nil
}

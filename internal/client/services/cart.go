package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

// CartService wraps the server-side cart. Every mutation is followed by a
// full re-fetch; snapshots are never patched locally.
type CartService interface {
	// Snapshot fetches the cart. On failure it returns an empty snapshot
	// together with the error.
	Snapshot(ctx context.Context) (*models.CartSnapshot, error)
	// Refresh is Snapshot followed by the change notification.
	Refresh(ctx context.Context) (*models.CartSnapshot, error)
	// Count is the header badge: number of lines for the session user.
	Count(ctx context.Context) (int, error)

	Add(ctx context.Context, p models.Product) error
	UpdateQuantity(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error)
	Increment(ctx context.Context, line models.CartLine) (*models.CartSnapshot, error)
	Decrement(ctx context.Context, line models.CartLine) (*models.CartSnapshot, error)
	Delete(ctx context.Context, productID int64) (*models.CartSnapshot, error)

	// OnChange registers fn to run after every successful mutation.
	OnChange(fn func(ctx context.Context))
	// Updating reports whether a mutation for productID is in flight.
	Updating(productID int64) bool
}

type cartService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger

	fetches singleflight.Group
	guard   *KeyedGuard[int64]

	mu        sync.Mutex
	listeners []func(ctx context.Context)
}

func NewCartService(c client.Client, store *session.Store, log logging.Logger) CartService {
	return &cartService{client: c, store: store, log: log, guard: NewKeyedGuard[int64]()}
}

func (s *cartService) Snapshot(ctx context.Context) (*models.CartSnapshot, error) {
	v, err, shared := s.fetches.Do("cart", func() (any, error) {
		return s.client.CartItems(ctx)
	})
	if err != nil {
		s.log.Warn(ctx, "cart fetch failed", "err", err)
		return &models.CartSnapshot{}, fmt.Errorf("cart error: %w", err)
	}
	if shared {
		s.log.Debug(ctx, "cart fetch coalesced")
	}
	snap := v.(*models.CartSnapshot)
	if !snap.SumOfLines().Equal(snap.OverallTotal) {
		s.log.Warn(ctx, "cart total differs from sum of lines",
			"overall", snap.OverallTotal.String(), "sum", snap.SumOfLines().String())
	}
	// shared callers must not see each other's mutations
	cp := *snap
	cp.Lines = append([]models.CartLine(nil), snap.Lines...)
	return &cp, nil
}

func (s *cartService) Refresh(ctx context.Context) (*models.CartSnapshot, error) {
	snap, err := s.Snapshot(ctx)
	s.notify(ctx)
	return snap, err
}

func (s *cartService) Count(ctx context.Context) (int, error) {
	username := s.store.Username()
	if username == "" {
		return 0, nil
	}
	n, err := s.client.CartCount(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("cart count error: %w", err)
	}
	return n, nil
}

func (s *cartService) Add(ctx context.Context, p models.Product) error {
	if !p.InStock() {
		return ErrOutOfStock
	}
	release, ok := s.guard.TryAcquire(p.ID)
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.client.AddToCart(ctx, p.ID, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrAddFailed, err)
	}
	s.log.Info(ctx, "added to cart", "product_id", p.ID)
	s.notify(ctx)
	return nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error) {
	if quantity < 1 {
		return s.Delete(ctx, productID)
	}
	release, ok := s.guard.TryAcquire(productID)
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	if err := s.client.UpdateCart(ctx, productID, quantity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	s.log.Info(ctx, "cart quantity updated", "product_id", productID, "quantity", quantity)
	return s.afterMutation(ctx), nil
}

func (s *cartService) Increment(ctx context.Context, line models.CartLine) (*models.CartSnapshot, error) {
	return s.UpdateQuantity(ctx, line.ProductID, line.Quantity+1)
}

func (s *cartService) Decrement(ctx context.Context, line models.CartLine) (*models.CartSnapshot, error) {
	return s.UpdateQuantity(ctx, line.ProductID, line.Quantity-1)
}

func (s *cartService) Delete(ctx context.Context, productID int64) (*models.CartSnapshot, error) {
	release, ok := s.guard.TryAcquire(productID)
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	if err := s.client.DeleteFromCart(ctx, productID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoveFailed, err)
	}
	s.log.Info(ctx, "removed from cart", "product_id", productID)
	return s.afterMutation(ctx), nil
}

// afterMutation re-fetches and notifies. A failed re-fetch does not fail the
// mutation; the caller sees an empty snapshot as the storefront did.
func (s *cartService) afterMutation(ctx context.Context) *models.CartSnapshot {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.log.Warn(ctx, "cart re-fetch after mutation failed", "err", err)
	}
	s.notify(ctx)
	return snap
}

func (s *cartService) OnChange(fn func(ctx context.Context)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *cartService) notify(ctx context.Context) {
	s.mu.Lock()
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range ls {
		fn(ctx)
	}
}

func (s *cartService) Updating(productID int64) bool {
	return s.guard.Held(productID)
}

// ParseProductID parses a product id typed by the user.
func ParseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/gateway"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/client/session"
	"github.com/dmitrijs2005/shopsphere/internal/common"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

const (
	PaymentCurrency    = "INR"
	PaymentDescription = "Secure payment via Razorpay"
	DefaultPrefillName = "ShopSphere Customer"
	PaymentNoteAddress = "ShopSphere HQ"
)

type CheckoutStatus int

const (
	CheckoutPaid CheckoutStatus = iota + 1
	CheckoutDismissed
)

// CheckoutResult is a finished checkout. Snapshot is the re-fetched cart
// after a successful payment, nil otherwise.
type CheckoutResult struct {
	Status   CheckoutStatus
	OrderID  string
	Snapshot *models.CartSnapshot
}

// PaymentService runs the checkout against the hosted gateway.
type PaymentService interface {
	Checkout(ctx context.Context, snap *models.CartSnapshot) (*CheckoutResult, error)
	Processing() bool
}

type paymentService struct {
	client  client.Client
	gateway gateway.Gateway
	cart    CartService
	store   *session.Store
	keyID   string
	log     logging.Logger

	processing atomic.Bool

	mu sync.Mutex
	// pendingOrder is an order created by a checkout that did not complete.
	pendingOrder string
}

func NewPaymentService(c client.Client, gw gateway.Gateway, cart CartService, store *session.Store, keyID string, log logging.Logger) PaymentService {
	return &paymentService{client: c, gateway: gw, cart: cart, store: store, keyID: keyID, log: log}
}

func (s *paymentService) Processing() bool {
	return s.processing.Load()
}

func (s *paymentService) Checkout(ctx context.Context, snap *models.CartSnapshot) (*CheckoutResult, error) {
	if s.keyID == "" {
		return nil, ErrMissingKey
	}
	if snap == nil || snap.Empty() {
		return nil, ErrEmptyCart
	}
	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrPaymentInProgress
	}
	defer s.processing.Store(false)

	if err := s.gateway.Load(ctx); err != nil {
		s.log.Error(ctx, "gateway load failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}

	orderID, err := s.createOrder(ctx, snap)
	if err != nil {
		return nil, err
	}

	outcome, err := s.gateway.Open(ctx, s.options(orderID, snap))
	if err != nil {
		s.log.Error(ctx, "gateway open failed", "order_id", orderID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrCheckoutStart, err)
	}

	switch o := outcome.(type) {
	case gateway.Dismissed:
		s.log.Info(ctx, "checkout dismissed", "order_id", orderID)
		return &CheckoutResult{Status: CheckoutDismissed, OrderID: orderID}, nil

	case gateway.Failed:
		s.log.Warn(ctx, "payment failed", "order_id", orderID, "description", o.Description)
		return nil, &PaymentFailedError{Description: o.Description}

	case gateway.Succeeded:
		return s.verify(ctx, o)

	default:
		return nil, fmt.Errorf("%w: unexpected gateway outcome %T", ErrCheckoutStart, outcome)
	}
}

func (s *paymentService) createOrder(ctx context.Context, snap *models.CartSnapshot) (string, error) {
	req := client.PaymentRequest{
		TotalAmount: snap.OverallTotal,
		CartItems:   make([]client.PaymentItem, 0, len(snap.Lines)),
	}
	for _, l := range snap.Lines {
		req.CartItems = append(req.CartItems, client.PaymentItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.PricePerUnit,
		})
	}

	s.mu.Lock()
	prev := s.pendingOrder
	s.mu.Unlock()
	if prev != "" {
		// the create endpoint takes no idempotency key, so a retry makes a
		// second backend order
		s.log.Warn(ctx, "creating a new payment order while a previous one is unfinished", "previous_order_id", prev)
	}

	orderID, err := s.client.CreatePayment(ctx, req)
	if err != nil {
		s.log.Error(ctx, "payment create failed", "err", err)
		return "", fmt.Errorf("%w: %w", ErrCheckoutStart, err)
	}

	s.mu.Lock()
	s.pendingOrder = orderID
	s.mu.Unlock()

	s.log.Info(ctx, "payment order created", "order_id", orderID, "total", snap.OverallTotal.String())
	return orderID, nil
}

func (s *paymentService) options(orderID string, snap *models.CartSnapshot) gateway.Options {
	prefill := gateway.Prefill{Name: DefaultPrefillName}
	if u := s.store.Current(); u != nil {
		if u.Name != "" {
			prefill.Name = u.Name
		}
		prefill.Email = u.Email
	}
	return gateway.Options{
		Key:         s.keyID,
		Amount:      models.MinorUnits(snap.OverallTotal),
		Currency:    PaymentCurrency,
		Name:        common.StoreName,
		Description: PaymentDescription,
		OrderID:     orderID,
		Prefill:     prefill,
		Notes:       map[string]string{"address": PaymentNoteAddress},
	}
}

func (s *paymentService) verify(ctx context.Context, o gateway.Succeeded) (*CheckoutResult, error) {
	err := s.client.VerifyPayment(ctx, client.Verification{
		OrderID:   o.OrderID,
		PaymentID: o.PaymentID,
		Signature: o.Signature,
	})
	if err != nil {
		s.log.Error(ctx, "payment verification failed", "order_id", o.OrderID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	s.mu.Lock()
	s.pendingOrder = ""
	s.mu.Unlock()
	s.log.Info(ctx, "payment verified", "order_id", o.OrderID, "payment_id", o.PaymentID)

	snap, err := s.cart.Refresh(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn(ctx, "cart refresh after payment failed", "err", err)
	}
	return &CheckoutResult{Status: CheckoutPaid, OrderID: o.OrderID, Snapshot: snap}, nil
}

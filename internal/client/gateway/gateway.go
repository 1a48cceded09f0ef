// Package gateway abstracts the hosted payment widget. The storefront only
// loads it, opens it with checkout options and reacts to its outcome; the
// widget itself is external.
package gateway

import (
	"context"
	"errors"
)

var ErrNotLoaded = errors.New("payment gateway not loaded")

type Prefill struct {
	Name  string
	Email string
}

// Options configure one checkout.
type Options struct {
	Key         string
	Amount      int64 // minor units
	Currency    string
	Name        string
	Description string
	OrderID     string
	Prefill     Prefill
	Notes       map[string]string
}

// Outcome is the terminal event of an opened checkout: one of Succeeded,
// Failed or Dismissed.
type Outcome interface {
	outcome()
}

// Succeeded carries the identifiers needed for server-side verification.
type Succeeded struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Failed is the widget's failure event.
type Failed struct {
	Description string
}

// Dismissed means the user closed the widget without paying.
type Dismissed struct{}

func (Succeeded) outcome() {}
func (Failed) outcome()    {}
func (Dismissed) outcome() {}

type Gateway interface {
	// Load makes the widget available. It is idempotent and cheap after the
	// first success.
	Load(ctx context.Context) error
	// Open presents the checkout and blocks until an outcome is known.
	Open(ctx context.Context, opts Options) (Outcome, error)
}

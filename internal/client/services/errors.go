package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/common"
)

var (
	ErrInvalidRole = errors.New("invalid user role")
	ErrAdminOnly   = errors.New("access denied: admin only")

	ErrOutOfStock   = errors.New("product is out of stock")
	ErrBusy         = errors.New("another change to this item is in progress")
	ErrUpdateFailed = errors.New("cart update failed")
	ErrRemoveFailed = errors.New("cart removal failed")
	ErrAddFailed    = errors.New("add to cart failed")

	ErrMissingKey         = errors.New("payment key id is not configured")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrCheckoutStart      = errors.New("payment could not be started")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrPaymentInProgress  = errors.New("a payment is already in progress")

	ErrOrdersUnavailable = errors.New("orders unavailable")

	ErrUserIDRequired = errors.New("user id required")
	ErrNoOperation    = errors.New("no admin operation selected")
)

// PaymentFailedError is a failure event reported by the payment gateway.
type PaymentFailedError struct {
	Description string
}

func (e *PaymentFailedError) Error() string {
	if e.Description == "" {
		return "payment failed"
	}
	return "payment failed: " + e.Description
}

// Display texts shown to the user for the errors above.
const (
	MsgInvalidRole        = "Invalid user role"
	MsgAdminOnly          = "Access denied. Admin only."
	MsgLoginFailed        = "Login failed. Please try again."
	MsgRegisterFailed     = "Registration failed. Please try again."
	MsgOutOfStock         = "This product is out of stock!"
	MsgAddFailed          = "Failed to add product to cart. Please try again."
	MsgUpdateFailed       = "Failed to update cart item. Please try again."
	MsgRemoveFailed       = "Failed to remove item from cart. Please try again."
	MsgBusy               = "This item is already being updated."
	MsgMissingKey         = "Payment gateway key is missing. Please contact support."
	MsgEmptyCart          = "Your cart is empty."
	MsgGatewayUnavailable = "Failed to load payment gateway. Please try again."
	MsgPaymentSucceeded   = "Payment successful! Thank you for shopping with us."
	MsgVerificationFailed = "Payment verification failed. Please contact support."
	MsgPaymentFailed      = "Payment failed. Please try again."
	MsgCheckoutStart      = "Unable to start payment. Please try again later."
	MsgPaymentInProgress  = "A payment is already being processed."
	MsgOrdersUnavailable  = "Unable to load your orders. Please try again."
	MsgUserIDRequired     = "Enter a user ID first."
	MsgSomethingWrong     = "Something went wrong. Please try again."
	MsgRequired           = "Please fill in all required fields."
	MsgInvalidNumber      = "Please enter a valid number."
	MsgSignIn             = "Please sign in to continue."
)

var messages = []struct {
	err error
	msg string
}{
	{ErrInvalidRole, MsgInvalidRole},
	{ErrAdminOnly, MsgAdminOnly},
	{ErrOutOfStock, MsgOutOfStock},
	{ErrBusy, MsgBusy},
	{ErrUpdateFailed, MsgUpdateFailed},
	{ErrRemoveFailed, MsgRemoveFailed},
	{ErrMissingKey, MsgMissingKey},
	{ErrEmptyCart, MsgEmptyCart},
	{ErrGatewayUnavailable, MsgGatewayUnavailable},
	{ErrVerificationFailed, MsgVerificationFailed},
	{ErrCheckoutStart, MsgCheckoutStart},
	{ErrPaymentInProgress, MsgPaymentInProgress},
	{ErrOrdersUnavailable, MsgOrdersUnavailable},
	{ErrUserIDRequired, MsgUserIDRequired},
	{common.ErrorRequiredField, MsgRequired},
	{common.ErrorInvalidNumber, MsgInvalidNumber},
	{common.ErrorNotAuthenticated, MsgSignIn},
}

// UserMessage turns err into the text shown to the user. Known sentinels map
// to fixed texts; otherwise the server's error field is used verbatim, then
// the transport message, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var pf *PaymentFailedError
	if errors.As(err, &pf) {
		if pf.Description != "" {
			return pf.Description
		}
		return MsgPaymentFailed
	}

	if errors.Is(err, ErrAddFailed) {
		return addFailedMessage(err)
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, client.ErrUnavailable) {
		return err.Error()
	}
	return fallback
}

// addFailedMessage mirrors the storefront's add-to-cart alert: with a server
// reply, show its error text (or the status line); without one, a generic
// retry hint.
func addFailedMessage(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return MsgAddFailed
	}
	detail := apiErr.Message
	if detail == "" {
		detail = apiErr.Error()
	}
	return fmt.Sprintf("Failed to add to cart: %s", detail)
}

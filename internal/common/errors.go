package common

import "errors"

var (
	// Precondition failures, detected before any network call.
	ErrorRequiredField = errors.New("required field is empty")
	ErrorInvalidNumber = errors.New("invalid number")

	// Session errors.
	ErrorNotAuthenticated = errors.New("not authenticated")
)

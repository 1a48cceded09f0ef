package cli

import (
	"errors"

	"github.com/dmitrijs2005/shopsphere/internal/client/services"
)

// userError is an error whose Error() is the text shown in the terminal.
// The cause stays reachable through errors.Is/As.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// alert converts err into the message the storefront would have shown in its
// alert box. fallback is used when nothing better is known.
func alert(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var ue *userError
	if errors.As(err, &ue) {
		return err
	}
	return &userError{msg: services.UserMessage(err, fallback), err: err}
}

var errUsage = errors.New("usage")

func usage(text string) error {
	return &userError{msg: "Usage: " + text, err: errUsage}
}

// Package common contains constants and sentinel errors shared by the
// ShopSphere client packages.
package common

const (
	// SessionCookieName is the backend-issued auth cookie. The client only
	// checks for its presence; the value is opaque.
	SessionCookieName = "authToken"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	// StoreName is used in payment prefill and terminal banners.
	StoreName = "ShopSphere"
)

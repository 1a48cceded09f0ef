// Package models defines the client-held projections of storefront state:
// session user, products, cart snapshots, order history and admin forms.
// None of them are authoritative; each is replaced by the next fetch.
package models

// Package cli provides the interactive ShopSphere storefront client.
//
// It wires configuration, the local preference store, the REST API client,
// the application services and a REPL whose screens mirror the storefront
// routes: landing, registration, customer and admin login, the customer
// dashboard (catalog, wishlist, cart, checkout), order history and the admin
// console.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// the context is cancelled. See App, runREPL and App.Navigate for details.
package cli

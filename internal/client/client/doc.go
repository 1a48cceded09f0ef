// Package client contains the client-side building blocks for talking to
// the ShopSphere backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with one
//     method per backend endpoint: catalog, auth, cart, payment, orders and
//     the admin operations.
//  2. A concrete REST implementation (see HTTPClient) that keeps the session
//     cookie in a jar, tags every request with an X-Request-ID, traces it
//     through otelhttp and maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Transport failures match ErrUnavailable, 401/403 responses match
// ErrUnauthorized, and every non-2xx response unwraps to *APIError.
// ServerMessage extracts the backend's error text for display.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client

// Package server provides HTTP routing, middleware, and the OAuth callback
// endpoint for the login flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # OAuth Callback Handler
//
// [CallbackHandler] implements the OAuth2 authorization code callback. The
// state parameter is validated against the in-flight [auth.Session] (CSRF
// protection) and the code is exchanged for tokens. Whatever the outcome,
// the browser is redirected to the root page; errors travel through the
// result channel to the process that started the flow, never through the
// transport. One callback is processed per flow to prevent replays.
//
// # Current Usage
//
// When the user runs `tasktube auth login`, a temporary HTTP server starts
// on the configured localhost port, handles the callback, and shuts down
// after delivering the result. `tasktube serve` runs the same router as a
// long-lived process with a status page at the root.
package server

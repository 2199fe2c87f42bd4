// Package server provides HTTP routing, middleware, and OAuth callback handling for the CLI.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handlers
//
// Two handlers share the /callback route, one per flow shape:
//
// [OAuthHandler] serves single-account flows (subscription listing, exports,
// auth checks). It validates the state parameter (CSRF protection), exchanges
// the authorization code, delivers the result through a channel, and refuses
// any further callback to prevent replay.
//
// [CallbackHandler] serves migration sessions, which authorize two accounts
// through the same endpoint. It parses each redirect into a
// [tasks.CallbackEvent] and delegates the decision to the session's
// [SessionDriver]; rejected or failed redirects leave the handler armed so
// the user can retry the same authorization link.
//
// # Current Usage
//
// When a command needs an authorization, a temporary HTTP server starts on
// the configured localhost port, serves the redirect, and shuts down once the
// command's flow completes. [RootHandler] answers every other path with a
// static reminder to continue in the terminal.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server

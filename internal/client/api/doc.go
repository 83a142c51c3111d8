// Package api contains the client-side contract for the Kamdhenuseva
// backend and its HTTP implementation.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (the Client interface) covering
//     every backend operation: the user/admin identity families
//     (register, login, logout, validate-token, profile, OTP, email
//     verification, password recovery, 2FA), cow queries and admin cow
//     mutations, and donation creation/queries.
//  2. A concrete REST implementation (HTTPClient) that keeps the session
//     cookies in a jar, tags each request with an X-Request-Id, unwraps the
//     backend's {data, message} envelope, and maps failures to sentinel
//     errors.
//
// # Error Handling
//
// Failures are exposed through *Error values carrying the HTTP status and
// the server-supplied message. errors.Is matches them against the
// sentinels ErrUnauthorized, ErrNotFound and ErrUnavailable. A response
// that cannot be decoded into its documented envelope fails with
// ErrMalformedResponse instead of propagating zero values.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; the overall request timeout is
// configured on construction.
package api

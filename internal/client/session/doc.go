// Package session implements the client-side session coordinator: one
// mutable store tracking two independent identity contexts (user, admin),
// their authentication and email-verification state, pending two-factor
// challenges, and the cached cow and donation collections.
//
// # Overview
//
// Every operation follows the same shape: mark the store loading and clear
// the shared error, call the backend through the api.Client, fold the
// response into local state on success, or record the failure's message and
// return the error on failure. Errors are surfaced on both channels on
// purpose: the shared error field feeds global UI state, the returned error
// feeds the immediate caller.
//
// Auth checks (CheckUserAuth, CheckAdminAuth, CheckUserProfile,
// CheckAdminProfile, the verification-status polls) are the silent
// exception: an unauthenticated visitor is an expected steady state, so
// their failures clear identity state without touching the error field.
//
// # Concurrency
//
// A Coordinator is safe for concurrent use. The guarantees stop at
// last-write-wins: two concurrent list fetches race and the later response
// owns the cache; the loading and error fields are shared across all
// operations, not per-operation. Callers that need ordering serialize
// their own calls.
//
// # Caching contract
//
// List fetches replace the cached collection wholesale. Mutations (cow or
// donation create/update/delete) never patch the cache; callers refetch
// explicitly after a successful mutation.
package session

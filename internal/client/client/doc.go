// Package client contains client-side building blocks for the TutorIT
// terminal client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the TutorIT backend: identity, tutor directory, tutoring sessions,
//     dashboard aggregates, and the conversation/message surface.
//  2. A concrete REST implementation (see RESTClient) that carries the
//     session cookie on every request via a cookie jar, stamps mutations
//     with an X-Request-Id, and maps HTTP status codes to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase) for the CLI,
//     wiring an SQLite cache database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Server-side
// validation failures come back as *ValidationError carrying the server
// message verbatim.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client

// Package client talks to the Evently backend and bootstraps the local store.
//
// # Overview
//
//  1. Client is the transport-agnostic API contract: register/login and the
//     service catalog CRUD endpoints.
//  2. HTTPClient implements it over JSON/HTTP. Every request gets an
//     X-Request-ID and a per-request timeout; nothing is retried.
//  3. InitDatabase/RunMigrations open the SQLite client store and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which unwraps to
// ErrInvalidData (400), ErrUnauthorized (401/403), common.ErrorNotFound (404),
// ErrAlreadyExists (409) or ErrRequestFailed. Transport failures wrap
// ErrUnavailable.
package client

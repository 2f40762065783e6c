// Package session is the single source of truth for "who is the current user
// and may they act as an administrator".
//
// Everything is derived from the bearer token kept in the persistent client
// store. Nothing is cached: each call re-reads the store and re-decodes the
// token, so expiry and out-of-band changes to the store are always observed.
//
// Decode failures of any kind (missing token, malformed token, unexpected
// claim types, missing claims) degrade to "logged out". They are never
// returned to the caller as errors.
package session

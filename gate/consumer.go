// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"
	"net/url"
)

// SecretFunc derives the shared secret used to protect a handshake's
// association from a per-attempt handle.  A Gate requires an explicit
// SecretFunc: there is no default, since deriving the secret directly from
// its input undermines the tamper-protection the association step provides.
// Callers should supply a keyed derivation (an HMAC over the handle, for
// example).
type SecretFunc func(handle string) string

// RawSecretFunc returns the handle itself as the secret.  It exists so tests
// and throwaway tooling can construct a Gate without key material.  Do not
// use it for anything user-facing.
var RawSecretFunc SecretFunc = func(handle string) string { return handle }

// Consumer is the external OpenID consumer collaborator.  Implementations
// own the entire wire protocol: discovery, association, signature and
// endpoint verification, and the paranoid HTTP fetching underneath it all.
// Implementations must be concurrently safe, since a Gate will likely be
// shared across http.Handler invocations.
type Consumer interface {
	// Session builds a collaborator session scoped to a single request's
	// parameters.  The secretFn is the gate's secret-derivation policy.
	Session(ctx context.Context, params url.Values, secretFn SecretFunc) (Session, error)
}

// Session is an OpenID consumer session holding no state beyond one
// request's parameters and a secret-derivation function.
type Session interface {
	// ClaimedIdentity resolves a claimed identifier URI to its identity
	// server.  Resolution failures are terminal for the current
	// evaluation; Err() carries the detail.
	ClaimedIdentity(ctx context.Context, uri string) (ClaimedIdentity, error)

	// UserSetupURL returns a non-empty URL when the identity provider
	// requires further interactive setup before it will answer.
	UserSetupURL() string

	// UserCancel reports whether the user cancelled authentication at the
	// provider.
	UserCancel() bool

	// VerifiedIdentity returns the verified identity when the provider's
	// callback parameters check out.  The bool reports presence; on
	// false, Err() carries the detail.
	VerifiedIdentity(ctx context.Context) (VerifiedIdentity, bool)

	// Err returns the consumer's last error detail.
	Err() string
}

// ClaimedIdentity is a claimed identifier which has been resolved to an
// identity server but not yet confirmed by it.
type ClaimedIdentity interface {
	// CheckURL computes the URL the user's browser is sent to in order to
	// begin provider-side authentication.  returnTo is the application
	// URL the provider redirects back to; trustRoot is the URL scope the
	// application asserts it controls.
	CheckURL(returnTo string, trustRoot string) (string, error)
}

// VerifiedIdentity is an identity confirmed by the identity provider.  It is
// the sole externally visible output of a successful evaluation.
type VerifiedIdentity interface {
	// URI returns the confirmed identifier.
	URI() string
}

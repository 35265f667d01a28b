// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
consumer provides a gate.Consumer backed by the coreos go-oidc and
golang.org/x/oauth2 libraries.  Every piece of protocol work is delegated:
identity-server resolution is provider discovery, check URLs are
authorization-code URLs, and verification is a code exchange plus ID-token
signature/audience verification.

Primary types provided by the package

* Config: the relying party configuration (client id/secret, issuer,
additional scopes, optional CA cert).  Validation reports every violation,
not just the first.

* Consumer: the collaborator itself.  Consumer.Session builds a session
scoped to one request's parameters; the session classifies provider
callbacks into setup-required, cancelled, or verified outcomes the way the
gate package expects.

* Identity: the verified identity produced by a successful callback.  Its
URI is the ID token's subject; Claims gives access to the rest of the token.

* TestProvider: a httptest server implementing enough of a provider
(discovery document, auth, token and keys endpoints) for realistic tests.
*/
package consumer

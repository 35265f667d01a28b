// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
gate is a package for binding a web request/response cycle to a
redirect-driven OpenID handshake.

Primary types provided by the package

* Gate: a stateless, per-request dispatcher.  Gate.Evaluate inspects the
incoming request's parameters, decides which of the three handshake phases is
active, delegates the protocol work to a Consumer collaborator, and returns an
explicit Result.

* Result: the tagged outcome of an evaluation.  One of: unauthenticated
(continue serving the request), redirect (send the browser to the identity
provider), or authenticated (a verified identity is available).

* Consumer / Session: the collaborator contracts for the external OpenID
consumer which implements the actual wire protocol (discovery, association,
signature verification).  A fresh Session is built for every evaluation from
the current request's parameters and a caller-supplied SecretFunc.

* Request: a read-only view of the incoming request: its parameters and the
application's base URL.  HTTPRequest adapts a *http.Request.

The gate persists nothing between round trips; continuity across the redirect
chain is carried entirely by the parameters the identity provider echoes back.

The handler subpackage wires a Gate into a http.HandlerFunc, installing
redirects and attaching verified identities to the request context.
*/
package gate

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
handler wires a gate.Gate into a http.HandlerFunc.

The handler evaluates the gate for every request: redirect outcomes install
an HTTP 302, authenticated outcomes attach the verified identity to the
request context (see IdentityFromContext) before invoking the caller's
SuccessResponseFunc, and unauthenticated outcomes fall through to the
caller's next handler (typically the login form).  Errors are handed to the
caller's ErrorResponseFunc.

Session issuance, user lookup and provisioning remain caller responsibility;
see the examples/web example for a complete relying party.
*/
package handler

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// openidgate provides a small, stateless gate which binds a web
// application's request/response cycle to a redirect-driven OpenID
// handshake.  The gate package owns only the per-request dispatch; all
// protocol work (discovery, verification, fetching) is delegated to a
// consumer collaborator such as the one provided by the consumer package.
//
// See README.md
package openidgate

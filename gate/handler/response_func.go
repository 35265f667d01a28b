// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"net/http"

	"github.com/hashicorp/openid-gate/gate"
)

// SuccessResponseFunc is used by handlers to create a http response when the
// gate produced a verified identity.
//
// The identity is also available from the request's context via
// IdentityFromContext.  The function should perform the caller-side duties
// the gate leaves out (user lookup or provisioning, session issuance) and
// use the http.ResponseWriter to send back whatever content it wishes to the
// client that originated the flow.
type SuccessResponseFunc func(identity gate.VerifiedIdentity, w http.ResponseWriter, req *http.Request)

// ErrorResponseFunc is used by handlers to create a http response when gate
// evaluation fails.
//
// The error wraps gate.ErrResolutionFailed or gate.ErrVerificationFailed and
// carries the consumer's diagnostic detail; callers typically surface it as
// a failed login attempt (for example, by re-showing the login form with an
// error message).
type ErrorResponseFunc func(e error, w http.ResponseWriter, req *http.Request)

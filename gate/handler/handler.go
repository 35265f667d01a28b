// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/openid-gate/gate"
)

// New creates a login handler around g.  baseURL is the application URL the
// handler is mounted at; it becomes the handshake's trust root and the
// prefix of its return-to URL.  next serves requests with no handshake in
// progress (typically the login form, which should also be where cancelled
// attempts land).  The SuccessResponseFunc is used to create a response when
// a verified identity is available; the ErrorResponseFunc when evaluation
// fails.
func New(ctx context.Context, g *gate.Gate, baseURL string, next http.Handler, sFn SuccessResponseFunc, eFn ErrorResponseFunc) (http.HandlerFunc, error) {
	const op = "handler.New"
	if g == nil {
		return nil, fmt.Errorf("%s: gate is nil: %w", op, gate.ErrNilParameter)
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%s: base URL is empty: %w", op, gate.ErrInvalidParameter)
	}
	if next == nil {
		return nil, fmt.Errorf("%s: next handler is nil: %w", op, gate.ErrNilParameter)
	}
	if sFn == nil {
		return nil, fmt.Errorf("%s: success response func is nil: %w", op, gate.ErrNilParameter)
	}
	if eFn == nil {
		return nil, fmt.Errorf("%s: error response func is nil: %w", op, gate.ErrNilParameter)
	}

	return func(w http.ResponseWriter, req *http.Request) {
		result, err := g.Evaluate(ctx, gate.HTTPRequest(req, baseURL))
		if err != nil {
			eFn(err, w, req)
			return
		}
		switch result.Decision {
		case gate.DecisionRedirect:
			http.Redirect(w, req, result.RedirectURL, http.StatusFound)
		case gate.DecisionAuthenticated:
			req = req.WithContext(WithIdentity(req.Context(), result.Identity))
			sFn(result.Identity, w, req)
		default:
			next.ServeHTTP(w, req)
		}
	}, nil
}

type contextKey struct{}

// WithIdentity returns a Context carrying the verified identity under the
// package's well-known request-scoped key.
func WithIdentity(ctx context.Context, identity gate.VerifiedIdentity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext returns the verified identity attached by a handler,
// if any.  It is the typed accessor downstream application logic should use
// instead of inspecting request state.
func IdentityFromContext(ctx context.Context) (gate.VerifiedIdentity, bool) {
	identity, ok := ctx.Value(contextKey{}).(gate.VerifiedIdentity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

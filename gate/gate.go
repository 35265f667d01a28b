// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-hclog"
)

// Gate decides, from request parameters alone, which phase of the
// three-legged handshake is active and produces a Result.  A Gate holds no
// per-request state and is safe for concurrent use; every evaluation builds
// a fresh consumer session.
type Gate struct {
	consumer     Consumer
	secretFn     SecretFunc
	claimedParam string
	checkParam   string
	logger       hclog.Logger
}

// New creates a Gate around the given consumer collaborator.  The secretFn
// is required and deliberately has no default; see SecretFunc for why.
// Supported options: WithClaimedParam, WithCheckParam, WithLogger.
func New(c Consumer, secretFn SecretFunc, opt ...Option) (*Gate, error) {
	const op = "gate.New"
	if c == nil {
		return nil, fmt.Errorf("%s: consumer is nil: %w", op, ErrNilParameter)
	}
	if secretFn == nil {
		return nil, fmt.Errorf("%s: secret derivation func is required: %w", op, ErrNilParameter)
	}
	opts := getGateOpts(opt...)
	if opts.withClaimedParam == "" || opts.withCheckParam == "" {
		return nil, fmt.Errorf("%s: parameter names cannot be empty: %w", op, ErrInvalidParameter)
	}
	if opts.withClaimedParam == opts.withCheckParam {
		return nil, fmt.Errorf("%s: claimed and check parameter names cannot be equal: %w", op, ErrInvalidParameter)
	}
	return &Gate{
		consumer:     c,
		secretFn:     secretFn,
		claimedParam: opts.withClaimedParam,
		checkParam:   opts.withCheckParam,
		logger:       opts.withLogger,
	}, nil
}

// Evaluate inspects req's parameters and produces a Result, delegating all
// protocol work to the gate's consumer.  The decision policy, in order:
//
// 1. A non-empty claimed-identifier parameter starts a handshake.  The
// claimed identifier is resolved and the Result redirects the browser to the
// provider's check URL, with a return-to of the application's base URL plus
// the check marker, and a trust root equal to the base URL.  Resolution
// failures are terminal and wrap ErrResolutionFailed.
//
// 2. Otherwise a non-empty check-marker parameter means the provider has
// redirected back.  The consumer is consulted for, in order: a setup URL
// (redirect again), cancellation (unauthenticated), and a verified identity
// (authenticated).  None of the three wraps ErrVerificationFailed.
//
// 3. Otherwise the Result is unauthenticated and nothing was done.
//
// Errors are never retried here: each round trip is a fresh, idempotent
// decision based solely on the current parameters.
func (g *Gate) Evaluate(ctx context.Context, req Request) (Result, error) {
	const op = "gate.(Gate).Evaluate"
	if req == nil {
		return Result{}, fmt.Errorf("%s: request is nil: %w", op, ErrNilParameter)
	}

	switch {
	case req.Param(g.claimedParam) != "":
		return g.beginHandshake(ctx, req, op)
	case req.Param(g.checkParam) != "":
		return g.finishHandshake(ctx, req, op)
	default:
		return Result{Decision: DecisionUnauthenticated}, nil
	}
}

func (g *Gate) beginHandshake(ctx context.Context, req Request, op string) (Result, error) {
	claimed := req.Param(g.claimedParam)

	s, err := g.consumer.Session(ctx, req.Params(), g.secretFn)
	if err != nil {
		return Result{}, fmt.Errorf("%s: unable to build consumer session: %v: %w", op, err, ErrResolutionFailed)
	}

	identity, err := s.ClaimedIdentity(ctx, claimed)
	if err != nil {
		return Result{}, fmt.Errorf("%s: unable to resolve %q: %s: %w", op, claimed, resolutionDetail(s, err), ErrResolutionFailed)
	}

	returnTo, err := checkReturnTo(req.BaseURL(), g.checkParam)
	if err != nil {
		return Result{}, fmt.Errorf("%s: invalid base URL %q: %w", op, req.BaseURL(), err)
	}

	checkURL, err := identity.CheckURL(returnTo, req.BaseURL())
	if err != nil {
		return Result{}, fmt.Errorf("%s: unable to compute check URL for %q: %s: %w", op, claimed, resolutionDetail(s, err), ErrResolutionFailed)
	}
	if g.logger != nil {
		g.logger.Debug("redirecting to identity provider", "claimed", claimed)
	}
	return Result{Decision: DecisionRedirect, RedirectURL: checkURL}, nil
}

func (g *Gate) finishHandshake(ctx context.Context, req Request, op string) (Result, error) {
	s, err := g.consumer.Session(ctx, req.Params(), g.secretFn)
	if err != nil {
		return Result{}, fmt.Errorf("%s: unable to build consumer session: %v: %w", op, err, ErrVerificationFailed)
	}

	if setupURL := s.UserSetupURL(); setupURL != "" {
		if g.logger != nil {
			g.logger.Debug("provider requires interactive setup")
		}
		return Result{Decision: DecisionRedirect, RedirectURL: setupURL}, nil
	}
	if s.UserCancel() {
		if g.logger != nil {
			g.logger.Debug("user cancelled authentication at the provider")
		}
		return Result{Decision: DecisionUnauthenticated}, nil
	}
	if identity, ok := s.VerifiedIdentity(ctx); ok {
		return Result{Decision: DecisionAuthenticated, Identity: identity}, nil
	}
	return Result{}, fmt.Errorf("%s: %s: %w", op, verificationDetail(s), ErrVerificationFailed)
}

// checkReturnTo appends the check marker to the application's base URL,
// preserving any query the base URL already carries.
func checkReturnTo(baseURL, checkParam string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL must be absolute: %w", ErrInvalidParameter)
	}
	q := u.Query()
	q.Set(checkParam, CheckParamValue)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func resolutionDetail(s Session, err error) string {
	if detail := s.Err(); detail != "" {
		return detail
	}
	return err.Error()
}

func verificationDetail(s Session) string {
	if detail := s.Err(); detail != "" {
		return detail
	}
	return "provider reported neither setup, cancellation, nor a verified identity"
}

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/hashicorp/openid-gate/gate"
	sdkHttp "github.com/hashicorp/openid-gate/sdk/http"
	"github.com/hashicorp/openid-gate/sdk/id"
)

// session holds no state beyond one request's parameters and the gate's
// secret-derivation function.  The ctx it was created with is retained for
// collaborator calls whose signatures carry no context of their own.
type session struct {
	c        *Consumer
	ctx      context.Context
	params   url.Values
	secretFn gate.SecretFunc

	mu      sync.Mutex
	lastErr string
}

// ensure that session implements the gate.Session interface
var _ gate.Session = (*session)(nil)

func (s *session) setErr(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = fmt.Sprintf(format, args...)
}

// Err satisfies the gate.Session interface.  Local failures take priority;
// otherwise the provider's own error parameters are reported.
func (s *session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != "" {
		return s.lastErr
	}
	if e := s.params.Get("error"); e != "" {
		if desc := s.params.Get("error_description"); desc != "" {
			return fmt.Sprintf("%s: %s", e, desc)
		}
		return e
	}
	return ""
}

// ClaimedIdentity satisfies the gate.Session interface.  Resolution is
// delegated: the configured issuer's provider metadata is discovered (or
// served from cache) and the claimed identifier is bound to it.
func (s *session) ClaimedIdentity(ctx context.Context, uri string) (gate.ClaimedIdentity, error) {
	const op = "consumer.(session).ClaimedIdentity"
	u, err := url.Parse(uri)
	switch {
	case uri == "":
		s.setErr("claimed identifier is empty")
		return nil, fmt.Errorf("%s: claimed identifier is empty: %w", op, ErrInvalidParameter)
	case err != nil:
		s.setErr("claimed identifier %q is not a valid URI: %v", uri, err)
		return nil, fmt.Errorf("%s: claimed identifier %q is invalid: %w", op, uri, ErrInvalidParameter)
	case u.Scheme != "https" && u.Scheme != "http":
		s.setErr("claimed identifier %q scheme is not http or https", uri)
		return nil, fmt.Errorf("%s: claimed identifier %q scheme is not http or https: %w", op, uri, ErrInvalidParameter)
	}

	provider, err := s.c.discover(ctx)
	if err != nil {
		s.setErr("no identity server found for %q: %v", uri, err)
		return nil, fmt.Errorf("%s: unable to resolve %q: %w", op, uri, err)
	}
	return &claimedIdentity{s: s, uri: uri, provider: provider}, nil
}

// UserSetupURL satisfies the gate.Session interface.  The provider signals
// that further interactive setup is required through one of the
// *_required error codes; the setup URL is a fresh check URL with an
// explicit login prompt.  The redirect chain carries all handshake
// continuity, so the issuer is (re)discovered here when needed rather than
// assuming an earlier evaluation in this process already did.
func (s *session) UserSetupURL() string {
	switch s.params.Get("error") {
	case "interaction_required", "login_required", "consent_required", "account_selection_required":
	default:
		return ""
	}
	if s.c.config.RedirectURL == "" {
		s.setErr("provider requires interactive setup but no redirect URL is configured")
		return ""
	}
	provider, err := s.c.discover(s.ctx)
	if err != nil {
		s.setErr("no identity server found: %v", err)
		return ""
	}
	state, err := s.newState()
	if err != nil {
		s.setErr("unable to generate state: %v", err)
		return ""
	}
	cfg := s.c.oauth2Config(s.c.config.RedirectURL, provider)
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login"))
}

// UserCancel satisfies the gate.Session interface.
func (s *session) UserCancel() bool {
	return s.params.Get("error") == "access_denied"
}

// VerifiedIdentity satisfies the gate.Session interface.  The authorization
// code is exchanged at the provider's token endpoint and the resulting ID
// token's signature and audience are verified, all delegated to the
// go-oidc/oauth2 libraries.  On false, Err() carries the detail.
func (s *session) VerifiedIdentity(ctx context.Context) (gate.VerifiedIdentity, bool) {
	if s.params.Get("error") != "" {
		return nil, false
	}
	code := s.params.Get("code")
	if code == "" {
		s.setErr("authorization code is missing")
		return nil, false
	}
	provider, err := s.c.discover(ctx)
	if err != nil {
		s.setErr("no identity server found: %v", err)
		return nil, false
	}

	cfg := s.c.oauth2Config(s.c.config.RedirectURL, provider)
	token, err := cfg.Exchange(sdkHttp.OidcClientContext(ctx, s.c.client), code)
	if err != nil {
		s.setErr("authorization code exchange failed: %v", err)
		return nil, false
	}
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		s.setErr("id_token is missing from the provider's response")
		return nil, false
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID:             s.c.config.ClientID,
		SupportedSigningAlgs: s.c.config.signingAlgs(),
	})
	idToken, err := verifier.Verify(ctx, raw)
	if err != nil {
		s.setErr("id_token verification failed: %v", err)
		return nil, false
	}
	return &Identity{subject: idToken.Subject, token: idToken}, true
}

// newState derives the handshake state value: a fresh handle run through
// the gate's secret-derivation function.
func (s *session) newState() (string, error) {
	handle, err := id.New("st")
	if err != nil {
		return "", err
	}
	return s.secretFn(handle), nil
}

// claimedIdentity is a claimed identifier bound to its resolved identity
// server.
type claimedIdentity struct {
	s        *session
	uri      string
	provider *oidc.Provider
}

// ensure that claimedIdentity implements the gate.ClaimedIdentity interface
var _ gate.ClaimedIdentity = (*claimedIdentity)(nil)

// CheckURL satisfies the gate.ClaimedIdentity interface.  The check URL is
// the provider's authorization-code URL with the return-to as redirect
// target and the claimed identifier passed along as a login hint.  The
// return-to must live inside the trust root.
func (ci *claimedIdentity) CheckURL(returnTo string, trustRoot string) (string, error) {
	const op = "consumer.(claimedIdentity).CheckURL"
	if returnTo == "" {
		return "", fmt.Errorf("%s: return-to URL is empty: %w", op, ErrInvalidParameter)
	}
	if trustRoot != "" && !withinTrustRoot(returnTo, trustRoot) {
		ci.s.setErr("return-to %q is outside the trust root %q", returnTo, trustRoot)
		return "", fmt.Errorf("%s: return-to %q is outside the trust root %q: %w", op, returnTo, trustRoot, ErrInvalidParameter)
	}
	state, err := ci.s.newState()
	if err != nil {
		return "", fmt.Errorf("%s: unable to generate state: %w", op, err)
	}
	nonce, err := id.New("n")
	if err != nil {
		return "", fmt.Errorf("%s: unable to generate nonce: %w", op, err)
	}
	cfg := ci.s.c.oauth2Config(returnTo, ci.provider)
	return cfg.AuthCodeURL(state,
		oidc.Nonce(nonce),
		oauth2.SetAuthURLParam("login_hint", ci.uri),
	), nil
}

// withinTrustRoot reports whether returnTo lives under trustRoot: same
// scheme and host, and the root's path contains the return-to's path on a
// segment boundary, so "/login" does not admit "/loginX".
func withinTrustRoot(returnTo, trustRoot string) bool {
	rt, err := url.Parse(returnTo)
	if err != nil {
		return false
	}
	root, err := url.Parse(trustRoot)
	if err != nil {
		return false
	}
	if rt.Scheme != root.Scheme || rt.Host != root.Host {
		return false
	}
	rootPath := strings.TrimSuffix(root.Path, "/")
	if rootPath == "" {
		return true
	}
	switch {
	case rt.Path == rootPath:
		return true
	case strings.HasPrefix(rt.Path, rootPath+"/"):
		return true
	default:
		return false
	}
}

// Identity is a verified identity: the subject confirmed by the identity
// provider's signed ID token.
type Identity struct {
	subject string
	token   *oidc.IDToken
}

// ensure that Identity implements the gate.VerifiedIdentity interface
var _ gate.VerifiedIdentity = (*Identity)(nil)

// URI satisfies the gate.VerifiedIdentity interface, returning the ID
// token's subject.
func (i *Identity) URI() string { return i.subject }

// Claims unmarshals the verified ID token's claims into v.
func (i *Identity) Claims(v interface{}) error {
	const op = "consumer.(Identity).Claims"
	if i.token == nil {
		return fmt.Errorf("%s: identity has no token: %w", op, ErrNilParameter)
	}
	return i.token.Claims(v)
}

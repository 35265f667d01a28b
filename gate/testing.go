// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"
	"net/url"
	"sync"
)

// TestIdentity is a VerifiedIdentity for tests.
type TestIdentity string

// URI satisfies the VerifiedIdentity interface.
func (i TestIdentity) URI() string { return string(i) }

// TestConsumer is a scripted Consumer for tests: configure the fields for
// the outcome under test and assert on the captured call arguments
// afterward.  The zero value reports neither setup, cancellation, nor a
// verified identity.  It is concurrently safe.
type TestConsumer struct {
	mu sync.Mutex

	// SessionErr, when set, fails Session.
	SessionErr error

	// ResolveErr, when set, fails ClaimedIdentity.
	ResolveErr error

	// CheckURL is returned by ClaimedIdentity's CheckURL.
	CheckURL string

	// CheckErr, when set, fails CheckURL.
	CheckErr error

	// SetupURL is returned by UserSetupURL.
	SetupURL string

	// Cancelled is returned by UserCancel.
	Cancelled bool

	// Identity, when non-nil, is returned by VerifiedIdentity.
	Identity VerifiedIdentity

	// ErrDetail is returned by Err.
	ErrDetail string

	// captured by the most recent calls
	GotParams    url.Values
	GotSecretFn  SecretFunc
	GotClaimed   string
	GotReturnTo  string
	GotTrustRoot string
}

// Session satisfies the Consumer interface.
func (c *TestConsumer) Session(_ context.Context, params url.Values, secretFn SecretFunc) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SessionErr != nil {
		return nil, c.SessionErr
	}
	c.GotParams = params
	c.GotSecretFn = secretFn
	return &testSession{c: c}, nil
}

type testSession struct {
	c *TestConsumer
}

func (s *testSession) ClaimedIdentity(_ context.Context, uri string) (ClaimedIdentity, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.GotClaimed = uri
	if s.c.ResolveErr != nil {
		return nil, s.c.ResolveErr
	}
	return &testClaimedIdentity{c: s.c}, nil
}

func (s *testSession) UserSetupURL() string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.SetupURL
}

func (s *testSession) UserCancel() bool {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.Cancelled
}

func (s *testSession) VerifiedIdentity(context.Context) (VerifiedIdentity, bool) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if s.c.Identity == nil {
		return nil, false
	}
	return s.c.Identity, true
}

func (s *testSession) Err() string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.ErrDetail
}

type testClaimedIdentity struct {
	c *TestConsumer
}

func (ci *testClaimedIdentity) CheckURL(returnTo, trustRoot string) (string, error) {
	ci.c.mu.Lock()
	defer ci.c.mu.Unlock()
	ci.c.GotReturnTo = returnTo
	ci.c.GotTrustRoot = trustRoot
	if ci.c.CheckErr != nil {
		return "", ci.c.CheckErr
	}
	return ci.c.CheckURL, nil
}

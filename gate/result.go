// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import "fmt"

// Decision enumerates the possible outcomes of a Gate evaluation.
type Decision int

const (
	// DecisionUnauthenticated: no handshake is in progress (or the user
	// cancelled).  The caller continues serving the request, typically by
	// rendering its login form.
	DecisionUnauthenticated Decision = iota

	// DecisionRedirect: the caller must install an HTTP redirect to
	// Result.RedirectURL before returning control.
	DecisionRedirect

	// DecisionAuthenticated: the provider confirmed the claimed
	// identifier.  Result.Identity carries the verified identity and the
	// caller is responsible for whatever comes next (user lookup,
	// provisioning, session issuance).
	DecisionAuthenticated
)

// String satisfies the Stringer interface
func (d Decision) String() string {
	switch d {
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionRedirect:
		return "redirect"
	case DecisionAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("unknown decision %d", int(d))
	}
}

// Result is the explicit, tagged outcome of Gate.Evaluate.  Exactly one of
// the non-Decision fields is meaningful, selected by Decision.
type Result struct {
	// Decision selects the outcome.
	Decision Decision

	// RedirectURL is set when Decision == DecisionRedirect.
	RedirectURL string

	// Identity is set when Decision == DecisionAuthenticated.
	Identity VerifiedIdentity
}

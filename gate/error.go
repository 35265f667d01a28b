// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"errors"
)

var (
	// ErrInvalidParameter is an invalid parameter error
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNilParameter is a nil parameter error
	ErrNilParameter = errors.New("nil parameter")

	// ErrResolutionFailed is returned (wrapped) by Gate.Evaluate when a
	// claimed identifier cannot be resolved to an identity server.  The
	// wrapping error carries the consumer's diagnostic detail.
	ErrResolutionFailed = errors.New("claimed identifier resolution failed")

	// ErrVerificationFailed is returned (wrapped) by Gate.Evaluate when
	// provider-callback parameters are present but the consumer reports
	// none of: setup required, cancelled, verified.  The wrapping error
	// carries the consumer's diagnostic detail.
	ErrVerificationFailed = errors.New("identity verification failed")
)

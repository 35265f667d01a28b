// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import "errors"

var (
	// ErrInvalidParameter is an invalid parameter error
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNilParameter is a nil parameter error
	ErrNilParameter = errors.New("nil parameter")

	// ErrInvalidCACert is an invalid CA certificate error
	ErrInvalidCACert = errors.New("invalid CA certificate")

	// ErrDiscoveryFailed is returned when the issuer's provider metadata
	// cannot be fetched
	ErrDiscoveryFailed = errors.New("provider discovery failed")
)

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import "github.com/hashicorp/go-hclog"

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil {
			continue
		}
		o(opts)
	}
}

const (
	// DefaultClaimedParam is the request parameter carrying the user's
	// claimed identifier.
	DefaultClaimedParam = "claimed_uri"

	// DefaultCheckParam is the marker parameter that distinguishes a
	// provider callback from a fresh login attempt.
	DefaultCheckParam = "openid-check"

	// CheckParamValue is the sentinel value written into the return-to
	// URL.  Any non-empty value is accepted on the way back in, since
	// providers and proxies are known to re-encode query strings.
	CheckParamValue = "1"
)

// gateOptions is the set of available options for Gate functions
type gateOptions struct {
	withClaimedParam string
	withCheckParam   string
	withLogger       hclog.Logger
}

// gateDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func gateDefaults() gateOptions {
	return gateOptions{
		withClaimedParam: DefaultClaimedParam,
		withCheckParam:   DefaultCheckParam,
	}
}

// getGateOpts gets the defaults and applies the opt overrides passed in.
func getGateOpts(opt ...Option) gateOptions {
	opts := gateDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithClaimedParam overrides the name of the claimed-identifier parameter.
func WithClaimedParam(name string) Option {
	return func(o interface{}) {
		if o, ok := o.(*gateOptions); ok {
			o.withClaimedParam = name
		}
	}
}

// WithCheckParam overrides the name of the provider-callback marker
// parameter.
func WithCheckParam(name string) Option {
	return func(o interface{}) {
		if o, ok := o.(*gateOptions); ok {
			o.withCheckParam = name
		}
	}
}

// WithLogger provides an optional logger for the gate
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*gateOptions); ok {
			o.withLogger = l
		}
	}
}

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import (
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/openid-gate/gate"
)

// Option defines a common functional options type, shared with the gate
// package so options can be applied across both.
type Option = gate.Option

// configOptions is the set of available options for Config functions
type configOptions struct {
	withScopes      []string
	withSigningAlgs []Alg
	withRedirectURL string
	withProviderCA  string
}

// configDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func configDefaults() configOptions {
	return configOptions{}
}

// getConfigOpts gets the defaults and applies the opt overrides passed in.
func getConfigOpts(opt ...Option) configOptions {
	opts := configDefaults()
	gate.ApplyOpts(&opts, opt...)
	return opts
}

// WithScopes provides an optional list of additional scopes for the
// consumer's config
func WithScopes(scopes ...string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withScopes = scopes
		}
	}
}

// WithSigningAlgs provides an optional list of ID-token signing algorithms
// for the consumer's config
func WithSigningAlgs(algs ...Alg) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withSigningAlgs = algs
		}
	}
}

// WithRedirectURL provides the application's return-to URL for the
// consumer's config
func WithRedirectURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withRedirectURL = u
		}
	}
}

// WithProviderCA provides an optional CA cert for the consumer's config
func WithProviderCA(cert string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withProviderCA = cert
		}
	}
}

// consumerOptions is the set of available options for New
type consumerOptions struct {
	withLogger hclog.Logger
}

func getConsumerOpts(opt ...Option) consumerOptions {
	opts := consumerOptions{}
	gate.ApplyOpts(&opts, opt...)
	return opts
}

// WithLogger provides an optional logger for the consumer
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*consumerOptions); ok {
			o.withLogger = l
		}
	}
}

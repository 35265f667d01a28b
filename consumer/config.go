// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-multierror"
	sdkHttp "github.com/hashicorp/openid-gate/sdk/http"
)

type ClientSecret string

// RedactedClientSecret is the redacted string or json for an oauth client secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}

// Config represents the configuration for a consumer.
type Config struct {
	// ClientID is the relying party id
	ClientID string

	// ClientSecret is the relying party secret
	ClientSecret ClientSecret

	// Scopes is a list of additional scopes to request of the provider.
	// The required "openid" scope is requested by default, and should not
	// be part of this optional list.
	Scopes []string

	// Issuer is a case-sensitive URL string using the https scheme that
	// contains scheme, host, and optionally, port number and path
	// components and no query or fragment components.  Claimed
	// identifiers are resolved against this issuer.
	Issuer string

	// SupportedSigningAlgs is a list of supported signing algorithms used
	// when verifying ID tokens.  When empty, RS256 and ES256 are used.
	SupportedSigningAlgs []Alg

	// RedirectURL is the application's return-to URL.  It is required for
	// the code exchange and for reconstructing setup URLs; when empty,
	// those operations are left to the provider to reject.
	RedirectURL string

	// ProviderCA is an optional CA cert to use when sending requests to
	// the provider.
	ProviderCA string
}

// NewConfig composes a new config for a consumer.
// Supported options: WithScopes, WithSigningAlgs, WithRedirectURL,
// WithProviderCA.
func NewConfig(issuer string, clientID string, clientSecret ClientSecret, opt ...Option) (*Config, error) {
	const op = "consumer.NewConfig"
	opts := getConfigOpts(opt...)
	c := &Config{
		Issuer:               issuer,
		ClientID:             clientID,
		ClientSecret:         clientSecret,
		Scopes:               opts.withScopes,
		SupportedSigningAlgs: opts.withSigningAlgs,
		RedirectURL:          opts.withRedirectURL,
		ProviderCA:           opts.withProviderCA,
	}
	if len(c.SupportedSigningAlgs) == 0 {
		c.SupportedSigningAlgs = []Alg{RS256, ES256}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid consumer config: %w", op, err)
	}
	return c, nil
}

// Validate the consumer configuration.  Every violation is reported, not
// just the first.  Among other validations, it verifies the issuer is not
// empty, but it doesn't verify the issuer is discoverable via an http
// request.
func (c *Config) Validate() error {
	const op = "consumer.(Config).Validate"
	if c == nil {
		return fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	var result *multierror.Error
	if c.ClientID == "" {
		result = multierror.Append(result, fmt.Errorf("client id is empty: %w", ErrInvalidParameter))
	}
	if c.ClientSecret == "" {
		result = multierror.Append(result, fmt.Errorf("client secret is empty: %w", ErrInvalidParameter))
	}
	switch {
	case c.Issuer == "":
		result = multierror.Append(result, fmt.Errorf("issuer is empty: %w", ErrInvalidParameter))
	default:
		u, err := url.Parse(c.Issuer)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("issuer %q is invalid: %v: %w", c.Issuer, err, ErrInvalidParameter))
		case u.Scheme != "https" && u.Scheme != "http":
			result = multierror.Append(result, fmt.Errorf("issuer %q scheme is not http or https: %w", c.Issuer, ErrInvalidParameter))
		}
	}
	for _, a := range c.SupportedSigningAlgs {
		if !supportedAlgorithms[a] {
			result = multierror.Append(result, fmt.Errorf("unsupported algorithm %q: %w", a, ErrInvalidParameter))
		}
	}
	return result.ErrorOrNil()
}

// HTTPClient is a helper function that creates a new http client for the
// consumer configured
func (c *Config) HTTPClient() (*http.Client, error) {
	const op = "consumer.(Config).HTTPClient"
	client, err := sdkHttp.NewClient(c.ProviderCA)
	if err != nil {
		if errors.Is(err, sdkHttp.ErrInvalidCertificatePem) {
			return nil, fmt.Errorf("%s: could not parse CA PEM value: %w", op, ErrInvalidCACert)
		}
		return nil, fmt.Errorf("%s: could not get an http client: %w", op, err)
	}
	return client, nil
}

func (c *Config) signingAlgs() []string {
	algs := make([]string, 0, len(c.SupportedSigningAlgs))
	for _, a := range c.SupportedSigningAlgs {
		algs = append(algs, string(a))
	}
	return algs
}

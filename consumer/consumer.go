// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/hashicorp/openid-gate/gate"
	sdkHttp "github.com/hashicorp/openid-gate/sdk/http"
)

// Consumer is a gate.Consumer which delegates all protocol work to the
// coreos go-oidc and x/oauth2 libraries.  It is safe for concurrent use.
type Consumer struct {
	config *Config
	client *http.Client
	logger hclog.Logger

	mu       sync.Mutex
	provider *oidc.Provider
}

// ensure that Consumer implements the gate.Consumer interface
var _ gate.Consumer = (*Consumer)(nil)

// New creates a Consumer from the given config.  Construction stays
// offline: issuer discovery is deferred until a claimed identifier needs
// resolving or a callback needs verifying, so that discovery failures
// surface as per-attempt resolution/verification errors rather than at
// startup.
// Supported options: WithLogger.
func New(c *Config, opt ...Option) (*Consumer, error) {
	const op = "consumer.New"
	if c == nil {
		return nil, fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: config is invalid: %w", op, err)
	}
	client, err := c.HTTPClient()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
	}
	opts := getConsumerOpts(opt...)
	return &Consumer{
		config: c,
		client: client,
		logger: opts.withLogger,
	}, nil
}

// Session satisfies the gate.Consumer interface.  The returned session
// snapshots params, so later mutation of the caller's values cannot change
// an evaluation in flight.
func (c *Consumer) Session(ctx context.Context, params url.Values, secretFn gate.SecretFunc) (gate.Session, error) {
	const op = "consumer.(Consumer).Session"
	if ctx == nil {
		return nil, fmt.Errorf("%s: context is nil: %w", op, ErrNilParameter)
	}
	if secretFn == nil {
		return nil, fmt.Errorf("%s: secret derivation func is nil: %w", op, ErrNilParameter)
	}
	cloned := url.Values{}
	for k, v := range params {
		cloned[k] = append([]string(nil), v...)
	}
	return &session{
		c:        c,
		ctx:      ctx,
		params:   cloned,
		secretFn: secretFn,
	}, nil
}

// discover returns the issuer's provider metadata, fetching and caching it
// on first use.  The fetch goes through the config's http client (and the
// provider CA, when one is configured).
func (c *Consumer) discover(ctx context.Context) (*oidc.Provider, error) {
	const op = "consumer.(Consumer).discover"
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provider != nil {
		return c.provider, nil
	}
	p, err := oidc.NewProvider(sdkHttp.OidcClientContext(ctx, c.client), c.config.Issuer)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("provider discovery failed", "issuer", c.config.Issuer, "error", err)
		}
		return nil, fmt.Errorf("%s: issuer %q: %v: %w", op, c.config.Issuer, err, ErrDiscoveryFailed)
	}
	if c.logger != nil {
		c.logger.Debug("provider discovered", "issuer", c.config.Issuer)
	}
	c.provider = p
	return p, nil
}

// oauth2Config composes the oauth2 client config for one operation.  The
// "openid" scope is always requested.
func (c *Consumer) oauth2Config(redirectURL string, p *oidc.Provider) oauth2.Config {
	scopes := append([]string{oidc.ScopeOpenID}, c.config.Scopes...)
	return oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: string(c.config.ClientSecret),
		RedirectURL:  redirectURL,
		Endpoint:     p.Endpoint(),
		Scopes:       scopes,
	}
}

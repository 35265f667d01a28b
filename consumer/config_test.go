// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consumer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		issuer       string
		clientID     string
		clientSecret ClientSecret
		opts         []Option
		wantErr      bool
		wantContains []string
	}{
		{
			name:         "valid",
			issuer:       "https://provider.example",
			clientID:     "client",
			clientSecret: "secret",
		},
		{
			name:         "valid-with-options",
			issuer:       "https://provider.example",
			clientID:     "client",
			clientSecret: "secret",
			opts: []Option{
				WithScopes("profile"),
				WithSigningAlgs(ES256),
				WithRedirectURL("https://app.example/login?openid-check=1"),
			},
		},
		{
			name:         "empty-client-id",
			issuer:       "https://provider.example",
			clientSecret: "secret",
			wantErr:      true,
			wantContains: []string{"client id is empty"},
		},
		{
			name:         "empty-issuer",
			clientID:     "client",
			clientSecret: "secret",
			wantErr:      true,
			wantContains: []string{"issuer is empty"},
		},
		{
			name:         "bad-issuer-scheme",
			issuer:       "ldap://provider.example",
			clientID:     "client",
			clientSecret: "secret",
			wantErr:      true,
			wantContains: []string{"scheme is not http or https"},
		},
		{
			name:         "unsupported-alg",
			issuer:       "https://provider.example",
			clientID:     "client",
			clientSecret: "secret",
			opts:         []Option{WithSigningAlgs("HS256")},
			wantErr:      true,
			wantContains: []string{`unsupported algorithm "HS256"`},
		},
		{
			name:    "accumulates-all-violations",
			wantErr: true,
			wantContains: []string{
				"client id is empty",
				"client secret is empty",
				"issuer is empty",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := NewConfig(tt.issuer, tt.clientID, tt.clientSecret, tt.opts...)
			if tt.wantErr {
				require.Error(err)
				assert.True(errors.Is(err, ErrInvalidParameter))
				for _, want := range tt.wantContains {
					assert.Contains(err.Error(), want)
				}
				return
			}
			require.NoError(err)
			require.NotNil(got)
			assert.NotEmpty(got.SupportedSigningAlgs)
		})
	}
}

func TestConfig_Validate_nil(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	var c *Config
	err := c.Validate()
	assert.True(errors.Is(err, ErrNilParameter))
}

func TestConfig_HTTPClient(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	c, err := NewConfig("https://provider.example", "client", "secret")
	require.NoError(err)
	client, err := c.HTTPClient()
	require.NoError(err)
	assert.NotNil(client)

	c.ProviderCA = "not a pem"
	_, err = c.HTTPClient()
	require.Error(err)
	assert.True(errors.Is(err, ErrInvalidCACert))
}

func TestClientSecret_redaction(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	secret := ClientSecret("super secret")
	assert.Equal(RedactedClientSecret, secret.String())

	data, err := json.Marshal(secret)
	require.NoError(err)
	assert.NotContains(string(data), "super secret")
	assert.Contains(string(data), "REDACTED")
}

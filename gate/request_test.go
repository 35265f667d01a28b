// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRequest(t *testing.T) {
	t.Parallel()
	t.Run("query-params", func(t *testing.T) {
		assert := assert.New(t)
		hr := httptest.NewRequest("GET", "https://app.example/login?claimed_uri=https%3A%2F%2Fexample.com%2Falice", nil)
		req := HTTPRequest(hr, "https://app.example/login")
		assert.Equal("https://example.com/alice", req.Param("claimed_uri"))
		assert.Equal("", req.Param("missing"))
		assert.Equal("https://app.example/login", req.BaseURL())
	})
	t.Run("form-body-takes-priority", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		body := strings.NewReader("claimed_uri=from-body")
		hr := httptest.NewRequest("POST", "https://app.example/login?claimed_uri=from-query", body)
		hr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req := HTTPRequest(hr, "https://app.example/login")
		assert.Equal("from-body", req.Param("claimed_uri"))
		require.NotNil(req.Params())
		assert.Contains(req.Params()["claimed_uri"], "from-query")
	})
	t.Run("nil-request", func(t *testing.T) {
		assert := assert.New(t)
		req := HTTPRequest(nil, "https://app.example")
		assert.Equal("", req.Param("anything"))
		assert.Empty(req.Params())
		assert.Equal("https://app.example", req.BaseURL())
	})
}

func TestNewRequest(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	req := NewRequest("https://app.example", url.Values{"openid-check": {"1"}})
	assert.Equal("1", req.Param("openid-check"))
	assert.Equal("https://app.example", req.BaseURL())

	empty := NewRequest("https://app.example", nil)
	assert.NotNil(empty.Params())
	assert.Equal("", empty.Param("openid-check"))
}

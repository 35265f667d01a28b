// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/openid-gate/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhat/scrape"
	htmlparse "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const testBaseURL = "https://app.example/login"

func testNextFn(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<form action="/login"><input name="claimed_uri"></form>`)
}

func testSuccessFn(identity gate.VerifiedIdentity, w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "welcome %s", identity.URI())
}

func testErrorFn(e error, w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `<p class="error">%s</p>`, html.EscapeString(e.Error()))
}

func testNewGate(t *testing.T, tc *gate.TestConsumer) *gate.Gate {
	t.Helper()
	g, err := gate.New(tc, gate.RawSecretFunc)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()
	g := testNewGate(t, &gate.TestConsumer{})
	next := http.HandlerFunc(testNextFn)

	tests := []struct {
		name    string
		g       *gate.Gate
		baseURL string
		next    http.Handler
		sFn     SuccessResponseFunc
		eFn     ErrorResponseFunc
		wantErr bool
	}{
		{"valid", g, testBaseURL, next, testSuccessFn, testErrorFn, false},
		{"nil-gate", nil, testBaseURL, next, testSuccessFn, testErrorFn, true},
		{"empty-base-url", g, "", next, testSuccessFn, testErrorFn, true},
		{"nil-next", g, testBaseURL, nil, testSuccessFn, testErrorFn, true},
		{"nil-sFn", g, testBaseURL, next, nil, testErrorFn, true},
		{"nil-eFn", g, testBaseURL, next, testSuccessFn, nil, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := New(context.Background(), tt.g, tt.baseURL, tt.next, tt.sFn, tt.eFn)
			if tt.wantErr {
				require.Error(err)
				assert.True(errors.Is(err, gate.ErrNilParameter) || errors.Is(err, gate.ErrInvalidParameter))
				return
			}
			require.NoError(err)
			require.NotNil(got)
		})
	}
}

func TestHandler_Responses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no-handshake-falls-through", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		h, err := New(ctx, testNewGate(t, &gate.TestConsumer{}), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL, nil))
		assert.Equal(http.StatusOK, rec.Code)
		assert.Contains(rec.Body.String(), "claimed_uri")
	})

	t.Run("claimed-redirects", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{CheckURL: "https://provider.example/check?x=1"}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?claimed_uri=https%3A%2F%2Fexample.com%2Falice", nil))
		assert.Equal(http.StatusFound, rec.Code)
		assert.Equal("https://provider.example/check?x=1", rec.Header().Get("Location"))
		assert.Equal("https://app.example/login?openid-check=1", tc.GotReturnTo)
		assert.Equal(testBaseURL, tc.GotTrustRoot)
	})

	t.Run("setup-redirects-again", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{SetupURL: "https://provider.example/setup"}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?openid-check=1", nil))
		assert.Equal(http.StatusFound, rec.Code)
		assert.Equal("https://provider.example/setup", rec.Header().Get("Location"))
	})

	t.Run("cancel-falls-through", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{Cancelled: true}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?openid-check=1", nil))
		assert.Equal(http.StatusOK, rec.Code)
		assert.Contains(rec.Body.String(), "claimed_uri")
	})

	t.Run("verified-attaches-identity", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{Identity: gate.TestIdentity("https://example.com/alice")}

		var fromCtx gate.VerifiedIdentity
		sFn := func(identity gate.VerifiedIdentity, w http.ResponseWriter, req *http.Request) {
			fromCtx, _ = IdentityFromContext(req.Context())
			testSuccessFn(identity, w, req)
		}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), sFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?openid-check=1", nil))
		assert.Equal(http.StatusOK, rec.Code)
		assert.Contains(rec.Body.String(), "welcome https://example.com/alice")
		require.NotNil(fromCtx)
		assert.Equal("https://example.com/alice", fromCtx.URI())
	})

	t.Run("resolution-error-renders-detail", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{ResolveErr: errors.New("down"), ErrDetail: "no identity server found"}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?claimed_uri=https%3A%2F%2Fexample.com%2Falice", nil))
		assert.Equal(http.StatusUnauthorized, rec.Code)

		root, err := htmlparse.Parse(rec.Body)
		require.NoError(err)
		node, ok := scrape.Find(root, func(n *htmlparse.Node) bool {
			return n.DataAtom == atom.P && scrape.Attr(n, "class") == "error"
		})
		require.True(ok)
		assert.Contains(scrape.Text(node), "no identity server found")
	})

	t.Run("verification-error", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		tc := &gate.TestConsumer{ErrDetail: "signature mismatch"}
		h, err := New(ctx, testNewGate(t, tc), testBaseURL, http.HandlerFunc(testNextFn), testSuccessFn, testErrorFn)
		require.NoError(err)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", testBaseURL+"?openid-check=1", nil))
		assert.Equal(http.StatusUnauthorized, rec.Code)
		assert.Contains(rec.Body.String(), "signature mismatch")
	})
}

func TestIdentityFromContext(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, ok := IdentityFromContext(context.Background())
	assert.False(ok)

	ctx := WithIdentity(context.Background(), gate.TestIdentity("https://example.com/alice"))
	identity, ok := IdentityFromContext(ctx)
	assert.True(ok)
	assert.Equal("https://example.com/alice", identity.URI())

	ctx = WithIdentity(context.Background(), nil)
	_, ok = IdentityFromContext(ctx)
	assert.False(ok)
}

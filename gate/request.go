// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"net/http"
	"net/url"
)

// Request is a read-only view of the incoming request a Gate evaluates: its
// query/form parameters and the application's base URL.
type Request interface {
	// Param returns the first value for the named parameter, or "" when
	// absent.
	Param(name string) string

	// Params returns all of the request's parameters.  Callers must not
	// modify the returned values.
	Params() url.Values

	// BaseURL returns the application's base URL, used as both the
	// trust root and the prefix of the return-to URL.
	BaseURL() string
}

// HTTPRequest adapts a *http.Request into a Request.  Parameters come from
// the query string and, for form posts, the request body (body values take
// priority, matching http.Request.FormValue).
func HTTPRequest(req *http.Request, baseURL string) Request {
	if req == nil {
		return &httpRequest{baseURL: baseURL}
	}
	// FormValue below triggers parsing, but doing it here surfaces the
	// combined Form for Params().
	_ = req.ParseForm()
	return &httpRequest{req: req, baseURL: baseURL}
}

type httpRequest struct {
	req     *http.Request
	baseURL string
}

func (r *httpRequest) Param(name string) string {
	if r.req == nil {
		return ""
	}
	return r.req.FormValue(name)
}

func (r *httpRequest) Params() url.Values {
	if r.req == nil || r.req.Form == nil {
		return url.Values{}
	}
	return r.req.Form
}

func (r *httpRequest) BaseURL() string { return r.baseURL }

// NewRequest builds a Request directly from a base URL and a set of
// parameters.  It is handy for tests and for callers outside net/http.
func NewRequest(baseURL string, params url.Values) Request {
	if params == nil {
		params = url.Values{}
	}
	return &simpleRequest{baseURL: baseURL, params: params}
}

type simpleRequest struct {
	baseURL string
	params  url.Values
}

func (r *simpleRequest) Param(name string) string { return r.params.Get(name) }
func (r *simpleRequest) Params() url.Values       { return r.params }
func (r *simpleRequest) BaseURL() string          { return r.baseURL }

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/openid-gate/gate"
	"github.com/hashicorp/openid-gate/gate/handler"
)

const sessionName = "web-session"

// LoginFormHandler serves requests with no handshake in progress: the login
// form itself.
func LoginFormHandler(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
  <body>
    <form action="/login" method="post">
      <label>Identity URL: <input name="claimed_uri" type="url"></label>
      <button type="submit">Sign in</button>
    </form>
  </body>
</html>`)
}

// SuccessHandler issues a cookie session for the verified identity.  A real
// application would look up or provision a user account here.
func SuccessHandler(logger hclog.Logger, store sessions.Store) handler.SuccessResponseFunc {
	return func(identity gate.VerifiedIdentity, w http.ResponseWriter, req *http.Request) {
		session, _ := store.Get(req, sessionName)
		session.Values["identity"] = identity.URI()
		if err := session.Save(req, w); err != nil {
			logger.Error("unable to save session", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		logger.Info("login succeeded", "identity", identity.URI())
		http.Redirect(w, req, "/", http.StatusFound)
	}
}

// ErrorHandler re-shows the login form with the failure detail.
func ErrorHandler(logger hclog.Logger) handler.ErrorResponseFunc {
	return func(e error, w http.ResponseWriter, req *http.Request) {
		logger.Error("login failed", "error", e)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintf(w, `<p class="error">login failed: %s</p><p><a href="/login">try again</a></p>`,
			html.EscapeString(e.Error()))
	}
}

// HomeHandler greets a signed-in user or sends them to the login form.
func HomeHandler(store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		session, _ := store.Get(req, sessionName)
		identity, ok := session.Values["identity"].(string)
		if !ok || identity == "" {
			http.Redirect(w, req, "/login", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<p>signed in as %s</p>", html.EscapeString(identity))
	}
}

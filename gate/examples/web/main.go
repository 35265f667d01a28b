// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// web is a minimal relying party built on the gate: a login form posts a
// claimed identifier, the gate drives the redirect handshake, and a cookie
// session is issued once a verified identity comes back.  User lookup,
// provisioning and session issuance all live here, on the caller's side of
// the boundary.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/openid-gate/consumer"
	"github.com/hashicorp/openid-gate/gate"
	"github.com/hashicorp/openid-gate/gate/handler"
)

// List of required configuration environment variables
const (
	envClientID     = "OPENID_CLIENT_ID"
	envClientSecret = "OPENID_CLIENT_SECRET"
	envIssuer       = "OPENID_ISSUER"
	envPort         = "OPENID_PORT"
	envSessionKey   = "OPENID_SESSION_KEY"
)

func envConfig() (map[string]string, error) {
	const op = "envConfig"
	env := map[string]string{}
	for _, k := range []string{envClientID, envClientSecret, envIssuer, envPort, envSessionKey} {
		v := os.Getenv(k)
		if v == "" {
			return nil, fmt.Errorf("%s: %s is empty", op, k)
		}
		env[k] = v
	}
	return env, nil
}

func main() {
	ctx := context.Background()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "web",
		Level: hclog.Debug,
	})

	env, err := envConfig()
	if err != nil {
		logger.Error("missing configuration", "error", err)
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%s/login", env[envPort])

	cfg, err := consumer.NewConfig(
		env[envIssuer],
		env[envClientID],
		consumer.ClientSecret(env[envClientSecret]),
		consumer.WithRedirectURL(baseURL+"?openid-check=1"),
	)
	if err != nil {
		logger.Error("invalid consumer config", "error", err)
		os.Exit(1)
	}
	c, err := consumer.New(cfg, consumer.WithLogger(logger.Named("consumer")))
	if err != nil {
		logger.Error("unable to create consumer", "error", err)
		os.Exit(1)
	}

	// the handshake secret is an HMAC over the handle, keyed separately
	// from the cookie key
	secretKey := []byte(env[envSessionKey] + "/handshake")
	secretFn := func(handle string) string {
		mac := hmac.New(sha256.New, secretKey)
		mac.Write([]byte(handle))
		return handle + "." + hex.EncodeToString(mac.Sum(nil))
	}

	g, err := gate.New(c, secretFn, gate.WithLogger(logger.Named("gate")))
	if err != nil {
		logger.Error("unable to create gate", "error", err)
		os.Exit(1)
	}

	store := sessions.NewCookieStore([]byte(env[envSessionKey]))

	login, err := handler.New(ctx, g, baseURL,
		http.HandlerFunc(LoginFormHandler),
		SuccessHandler(logger, store),
		ErrorHandler(logger),
	)
	if err != nil {
		logger.Error("unable to create login handler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", login)
	mux.HandleFunc("/", HomeHandler(store))

	addr := "localhost:" + env[envPort]
	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

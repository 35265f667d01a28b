// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package openidgate_test

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp/openid-gate/gate"
)

func Example_beginHandshake() {
	ctx := context.Background()

	// A scripted consumer; production code would use consumer.New
	c := &gate.TestConsumer{CheckURL: "https://provider.example/check?x=1"}

	g, err := gate.New(c, gate.RawSecretFunc)
	if err != nil {
		// handle error
	}

	result, err := g.Evaluate(ctx, gate.NewRequest(
		"https://app.example/login",
		url.Values{"claimed_uri": {"https://example.com/alice"}},
	))
	if err != nil {
		// handle error
	}
	fmt.Println(result.Decision, result.RedirectURL)

	// Output:
	// redirect https://provider.example/check?x=1
}

func Example_finishHandshake() {
	ctx := context.Background()

	c := &gate.TestConsumer{Identity: gate.TestIdentity("https://example.com/alice")}

	g, err := gate.New(c, gate.RawSecretFunc)
	if err != nil {
		// handle error
	}

	// the provider has redirected back with the check marker set
	result, err := g.Evaluate(ctx, gate.NewRequest(
		"https://app.example/login",
		url.Values{"openid-check": {"1"}},
	))
	if err != nil {
		// handle error
	}
	fmt.Println(result.Decision, result.Identity.URI())

	// Output:
	// authenticated https://example.com/alice
}

// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecision_String(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	assert.Equal("unauthenticated", DecisionUnauthenticated.String())
	assert.Equal("redirect", DecisionRedirect.String())
	assert.Equal("authenticated", DecisionAuthenticated.String())
	assert.Equal("unknown decision 42", Decision(42).String())
}

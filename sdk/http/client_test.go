// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()
	t.Run("no-ca", func(t *testing.T) {
		require := require.New(t)
		c, err := NewClient("")
		require.NoError(err)
		require.NotNil(c)
		require.NotNil(c.Transport)
	})
	t.Run("invalid-ca-pem", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		c, err := NewClient("not a pem block")
		require.Error(err)
		assert.True(errors.Is(err, ErrInvalidCertificatePem))
		assert.Nil(c)
	})
}

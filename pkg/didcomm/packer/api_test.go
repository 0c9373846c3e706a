/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package packer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnpacked(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		doc, err := ParseUnpacked([]byte(`{"message":"{\"a\":1}","recipient_verkey":"rk","sender_verkey":"sk"}`))
		require.NoError(t, err)
		require.Equal(t, `{"a":1}`, doc.Message)
		require.Equal(t, "rk", doc.RecipientVerKey)
		require.Equal(t, "sk", doc.SenderVerKey)
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := ParseUnpacked([]byte(`{"recipient_verkey":"rk"}`))
		require.True(t, errors.Is(err, ErrNoMessage))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseUnpacked([]byte(`not json`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse unpacked document")
	})
}

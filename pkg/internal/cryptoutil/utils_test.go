/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cryptoutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"
)

func TestIsChachaKeyValid(t *testing.T) {
	require.True(t, IsChachaKeyValid(make([]byte, 32)))
	require.False(t, IsChachaKeyValid(make([]byte, 31)))
	require.True(t, IsEd25519PublicKeyValid(make([]byte, ed25519.PublicKeySize)))
	require.False(t, IsEd25519PublicKeyValid([]byte("short")))
}

func TestNonce(t *testing.T) {
	n1, err := Nonce([]byte("abc"), []byte("def"))
	require.NoError(t, err)

	n2, err := Nonce([]byte("abc"), []byte("def"))
	require.NoError(t, err)
	require.Equal(t, n1, n2)

	n3, err := Nonce([]byte("def"), []byte("abc"))
	require.NoError(t, err)
	require.NotEqual(t, n1, n3)
}

func TestEdToCurveConversion(t *testing.T) {
	t.Run("converted keys form a curve25519 key pair", func(t *testing.T) {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		curvePub, err := PublicEd25519toCurve25519(pub)
		require.NoError(t, err)

		curvePriv, err := SecretEd25519toCurve25519(priv)
		require.NoError(t, err)

		derived, err := curve25519.X25519(curvePriv, curve25519.Basepoint)
		require.NoError(t, err)
		require.Equal(t, curvePub, derived)
	})

	t.Run("invalid public keys", func(t *testing.T) {
		_, err := PublicEd25519toCurve25519(nil)
		require.EqualError(t, err, "key is nil")

		_, err = PublicEd25519toCurve25519([]byte("abc"))
		require.EqualError(t, err, "3-byte key size is invalid")
	})

	t.Run("invalid private keys", func(t *testing.T) {
		_, err := SecretEd25519toCurve25519(nil)
		require.EqualError(t, err, "key is nil")

		_, err = SecretEd25519toCurve25519([]byte("abc"))
		require.EqualError(t, err, "3-byte key size is invalid")
	})
}

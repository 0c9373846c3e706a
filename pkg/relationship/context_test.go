/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package relationship

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func completeContext() *Context {
	return &Context{
		LocalVerKey:         "local",
		RemoteDID:           "remoteDID",
		RemoteVerKey:        "remote",
		DomainDID:           "domain",
		ServicePublicVerKey: "servicePublic",
		ServiceAgentVerKey:  "serviceAgent",
	}
}

func TestEnsureComplete(t *testing.T) {
	require.NoError(t, completeContext().EnsureComplete())

	t.Run("each missing field is reported", func(t *testing.T) {
		tests := map[string]func(c *Context){
			"localVerKey":         func(c *Context) { c.LocalVerKey = "" },
			"remoteDID":           func(c *Context) { c.RemoteDID = "" },
			"remoteVerKey":        func(c *Context) { c.RemoteVerKey = "" },
			"domainDID":           func(c *Context) { c.DomainDID = "" },
			"servicePublicVerKey": func(c *Context) { c.ServicePublicVerKey = "" },
			"serviceAgentVerKey":  func(c *Context) { c.ServiceAgentVerKey = "" },
		}

		for field, unset := range tests {
			c := completeContext()
			unset(c)

			err := c.EnsureComplete()
			require.True(t, errors.Is(err, ErrIncompleteContext), field)

			var incomplete *IncompleteError

			require.True(t, errors.As(err, &incomplete))
			require.Equal(t, []string{field}, incomplete.Missing)
		}
	})

	t.Run("empty context", func(t *testing.T) {
		err := (&Context{}).EnsureComplete()
		require.EqualError(t, err, "incomplete relationship context: missing localVerKey, remoteDID, remoteVerKey, "+
			"domainDID, servicePublicVerKey, serviceAgentVerKey")
	})

	t.Run("nil context", func(t *testing.T) {
		var c *Context

		require.True(t, errors.Is(c.EnsureComplete(), ErrIncompleteContext))
	})
}

func TestForDomain(t *testing.T) {
	c := ForDomain("sdk", "domain", "public", "agent")
	require.NoError(t, c.EnsureComplete())
	require.Equal(t, "domain", c.RemoteDID)
	require.Equal(t, "agent", c.RemoteVerKey)

	p := c.WithPairwise("pairwiseDID", "pairwiseKey")
	require.Equal(t, "pairwiseDID", p.RemoteDID)
	require.Equal(t, "pairwiseKey", p.RemoteVerKey)
	require.Equal(t, "domain", c.RemoteDID, "original is unchanged")
}

func TestForProvisioning(t *testing.T) {
	c := ForProvisioning("sdk", "publicDID", "publicKey")
	require.NoError(t, c.EnsureComplete())
	require.Equal(t, "publicDID", c.RemoteDID)
	require.Equal(t, "publicKey", c.RemoteVerKey)
	require.Equal(t, "publicKey", c.ServicePublicVerKey)
}

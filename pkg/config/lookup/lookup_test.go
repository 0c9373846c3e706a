/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockConfigBackend map[string]interface{}

func (m mockConfigBackend) Lookup(key string) (interface{}, bool) {
	v, ok := m[key]

	return v, ok
}

func TestConfigLookup(t *testing.T) {
	c := New(mockConfigBackend{
		"url":      "http://verity",
		"enabled":  "true",
		"retries":  "3",
		"timeout":  "5s",
		"seeds":    []interface{}{"a", "b"},
		"oneSeed":  "c d",
		"emptyKey": "",
	})

	t.Run("values found", func(t *testing.T) {
		require.Equal(t, "http://verity", c.GetString("url"))
		require.True(t, c.GetBool("enabled"))
		require.Equal(t, 3, c.GetInt("retries"))
		require.Equal(t, 5*time.Second, c.GetDuration("timeout"))
		require.Equal(t, []string{"a", "b"}, c.GetStringSlice("seeds"))
		require.Equal(t, []string{"c", "d"}, c.GetStringSlice("oneSeed"))
	})

	t.Run("values not found", func(t *testing.T) {
		require.Equal(t, "", c.GetString("missing"))
		require.False(t, c.GetBool("missing"))
		require.Equal(t, 0, c.GetInt("missing"))
		require.Equal(t, time.Duration(0), c.GetDuration("missing"))
		require.Nil(t, c.GetStringSlice("missing"))
	})

	t.Run("required string", func(t *testing.T) {
		s, err := c.RequireString("url")
		require.NoError(t, err)
		require.Equal(t, "http://verity", s)

		_, err = c.RequireString("emptyKey")
		require.ErrorIs(t, err, ErrMissingKey)
		require.Contains(t, err.Error(), "emptyKey")

		_, err = c.RequireString("missing")
		require.ErrorIs(t, err, ErrMissingKey)
	})
}

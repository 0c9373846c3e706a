/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lookup reads typed values from a config backend.
package lookup

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// ErrMissingKey is returned when a required key has no value.
var ErrMissingKey = errors.New("missing required config key")

// ConfigBackend is a source of raw config values.
type ConfigBackend interface {
	Lookup(key string) (interface{}, bool)
}

// New returns a lookup wrapper around backend.
func New(backend ConfigBackend) *ConfigLookup {
	return &ConfigLookup{backend: backend}
}

// ConfigLookup converts backend values to Go types. Missing keys yield the zero value.
type ConfigLookup struct {
	backend ConfigBackend
}

// Lookup returns the raw value for key.
func (c *ConfigLookup) Lookup(key string) (interface{}, bool) {
	return c.backend.Lookup(key)
}

// GetBool returns the bool value for key.
func (c *ConfigLookup) GetBool(key string) bool {
	value, ok := c.Lookup(key)
	if !ok {
		return false
	}

	return cast.ToBool(value)
}

// GetString returns the string value for key.
func (c *ConfigLookup) GetString(key string) string {
	value, ok := c.Lookup(key)
	if !ok {
		return ""
	}

	return cast.ToString(value)
}

// RequireString returns the string value for key, or ErrMissingKey if it is absent or empty.
func (c *ConfigLookup) RequireString(key string) (string, error) {
	if s := c.GetString(key); s != "" {
		return s, nil
	}

	return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
}

// GetInt returns the int value for key.
func (c *ConfigLookup) GetInt(key string) int {
	value, ok := c.Lookup(key)
	if !ok {
		return 0
	}

	return cast.ToInt(value)
}

// GetDuration returns the time.Duration value for key. Strings such as "5s" are parsed.
func (c *ConfigLookup) GetDuration(key string) time.Duration {
	value, ok := c.Lookup(key)
	if !ok {
		return 0
	}

	return cast.ToDuration(value)
}

// GetStringSlice returns the []string value for key. A single string becomes its whitespace-separated fields.
func (c *ConfigLookup) GetStringSlice(key string) []string {
	value, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	return cast.ToStringSlice(value)
}

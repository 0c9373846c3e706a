/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads SDK settings from a file or reader, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

type options struct {
	envPrefix string
}

const (
	cmdRoot = "VERITY"
)

// Backend is a source of raw config values.
type Backend interface {
	Lookup(key string) (interface{}, bool)
}

// Provider creates a Backend.
type Provider func() (Backend, error)

// Option configures the package.
type Option func(opts *options)

// FromReader loads configuration from in.
// configType can be "json" or "yaml".
func FromReader(in io.Reader, configType string, opts ...Option) Provider {
	return func() (Backend, error) {
		return initFromReader(in, configType, opts...)
	}
}

// FromFile reads from named config file
func FromFile(name string, opts ...Option) Provider {
	return func() (Backend, error) {
		backend := newBackend(opts...)

		if name == "" {
			return nil, errors.New("filename is required")
		}

		backend.configViper.SetConfigFile(name)

		err := backend.configViper.MergeInConfig()
		if err != nil {
			return nil, fmt.Errorf("loading config file failed: %w", err)
		}

		return backend, nil
	}
}

func initFromReader(in io.Reader, configType string, opts ...Option) (Backend, error) {
	backend := newBackend(opts...)

	if configType == "" {
		return nil, errors.New("empty config type")
	}

	// viper needs the type to decode a reader
	backend.configViper.SetConfigType(configType)

	err := backend.configViper.MergeConfig(in)
	if err != nil {
		return nil, fmt.Errorf("viper MergeConfig failed : %w", err)
	}

	return backend, nil
}

// WithEnvPrefix defines the prefix for environment variable overrides. The default is VERITY, so
// VERITY_TRANSPORT_RETRIES overrides transport.retries.
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) {
		opts.envPrefix = prefix
	}
}

func newBackend(opts ...Option) *defConfigBackend {
	o := options{
		envPrefix: cmdRoot,
	}

	for _, option := range opts {
		option(&o)
	}

	return &defConfigBackend{
		configViper: newViper(o.envPrefix),
		opts:        o,
	}
}

func newViper(cmdRootPrefix string) *viper.Viper {
	myViper := viper.New()
	myViper.SetEnvPrefix(cmdRootPrefix)
	myViper.AutomaticEnv()
	myViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return myViper
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package forward wraps a sealed payload in a routing forward instruction and unwraps it again.
package forward

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
)

// Type is the message type of a forward instruction.
const Type = messagetype.EvernymQualifier + ";spec/" + messagetype.Routing + "/1.0/FWD"

// ErrMalformedEnvelope is returned when a forward envelope is missing a field or has the wrong shape.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Forward instructs the intermediary to deliver Msg to the agent identified by To.
type Forward struct {
	Type string          `json:"@type"`
	To   string          `json:"@fwd"`
	Msg  json.RawMessage `json:"@msg"`
}

// Wrap builds the forward instruction for payload, which must be a JSON object.
func Wrap(to string, payload json.RawMessage) (*Forward, error) {
	if to == "" {
		return nil, fmt.Errorf("wrap: empty destination: %w", ErrMalformedEnvelope)
	}

	if !isObject(payload) {
		return nil, fmt.Errorf("wrap: payload is not a JSON object: %w", ErrMalformedEnvelope)
	}

	return &Forward{
		Type: Type,
		To:   to,
		Msg:  payload,
	}, nil
}

type options struct {
	allowTypeMismatch bool
}

// Option configures Parse and Unwrap.
type Option func(opts *options)

// WithTypeMismatchAllowed accepts forward envelopes whose @type differs from Type, for compatibility with
// routing protocol versions this package does not know about.
func WithTypeMismatchAllowed() Option {
	return func(opts *options) {
		opts.allowTypeMismatch = true
	}
}

// Parse decodes a forward envelope, checking @type, @fwd and @msg are present.
func Parse(raw []byte, opts ...Option) (*Forward, error) {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	fields := map[string]json.RawMessage{}

	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parse forward: %v: %w", err, ErrMalformedEnvelope)
	}

	fwd := &Forward{}

	if err := stringField(fields, "@type", &fwd.Type); err != nil {
		return nil, err
	}

	if err := stringField(fields, "@fwd", &fwd.To); err != nil {
		return nil, err
	}

	if fwd.Type != Type && !o.allowTypeMismatch {
		return nil, fmt.Errorf("parse forward: unexpected @type %q: %w", fwd.Type, ErrMalformedEnvelope)
	}

	msg, ok := fields["@msg"]
	if !ok || !isObject(msg) {
		return nil, fmt.Errorf("parse forward: @msg is missing or not an object: %w", ErrMalformedEnvelope)
	}

	fwd.Msg = msg

	return fwd, nil
}

// Unwrap returns the @msg payload of a forward envelope verbatim.
func Unwrap(raw []byte, opts ...Option) (json.RawMessage, error) {
	fwd, err := Parse(raw, opts...)
	if err != nil {
		return nil, err
	}

	return fwd.Msg, nil
}

func stringField(fields map[string]json.RawMessage, name string, v *string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("parse forward: missing %s: %w", name, ErrMalformedEnvelope)
	}

	if err := json.Unmarshal(raw, v); err != nil || *v == "" {
		return fmt.Errorf("parse forward: %s must be a non-empty string: %w", name, ErrMalformedEnvelope)
	}

	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

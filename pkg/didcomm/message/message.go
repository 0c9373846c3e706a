/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package message holds the plaintext JSON messages carried inside envelopes.
package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
)

const (
	// TypeKey is the message field holding the message type.
	TypeKey = "@type"
	// IDKey is the message field holding the message id.
	IDKey = "@id"

	threadIDKey = "thid"
)

var (
	// ErrMalformedMessage is returned when a plaintext message is missing required fields.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrThreadIDNotFound is returned when a message carries neither a thread id nor an id.
	ErrThreadIDNotFound = errors.New("threadID not found")
)

// Msg is a plaintext message. It always carries a string @type and @id.
type Msg map[string]interface{}

// New returns a message of type typ with a new random @id.
func New(typ string) Msg {
	return Msg{
		TypeKey: typ,
		IDKey:   uuid.New().String(),
	}
}

// NewFrom converts a message struct into a Msg, validating it.
func NewFrom(v interface{}) (Msg, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("new message: %w", err)
	}

	return Parse(raw)
}

// Parse decodes a JSON message and validates its required fields.
func Parse(raw []byte) (Msg, error) {
	var m Msg

	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse message: %v: %w", err, ErrMalformedMessage)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks @type and @id are non-empty strings and a ~thread decorator, when present, is well formed.
func (m Msg) Validate() error {
	if m == nil {
		return fmt.Errorf("validate message: nil message: %w", ErrMalformedMessage)
	}

	for _, key := range []string{TypeKey, IDKey} {
		if s, ok := m[key].(string); !ok || s == "" {
			return fmt.Errorf("validate message: %s must be a non-empty string: %w", key, ErrMalformedMessage)
		}
	}

	thread, ok := m[decorator.ThreadKey]
	if !ok {
		return nil
	}

	threadMap, ok := thread.(map[string]interface{})
	if !ok {
		return fmt.Errorf("validate message: %s must be an object: %w", decorator.ThreadKey, ErrMalformedMessage)
	}

	if thid, ok := threadMap[threadIDKey]; ok {
		if _, isString := thid.(string); !isString {
			return fmt.Errorf("validate message: %s.%s must be a string: %w", decorator.ThreadKey, threadIDKey,
				ErrMalformedMessage)
		}
	}

	return nil
}

// Type returns the message type.
func (m Msg) Type() string {
	return m.stringValue(TypeKey)
}

// ID returns the message id.
func (m Msg) ID() string {
	return m.stringValue(IDKey)
}

// ThreadID returns the message's thread id, which defaults to the message id.
func (m Msg) ThreadID() (string, error) {
	if thread, ok := m[decorator.ThreadKey].(map[string]interface{}); ok {
		if thid, ok := thread[threadIDKey].(string); ok && thid != "" {
			return thid, nil
		}
	}

	if id := m.ID(); id != "" {
		return id, nil
	}

	return "", ErrThreadIDNotFound
}

// SetThread sets the ~thread decorator.
func (m Msg) SetThread(thread *decorator.Thread) {
	thid := map[string]interface{}{threadIDKey: thread.ID}

	if thread.PID != "" {
		thid["pthid"] = thread.PID
	}

	m[decorator.ThreadKey] = thid
}

// ForRelationship returns the ~for_relationship decorator.
func (m Msg) ForRelationship() string {
	return m.stringValue(decorator.ForRelationshipKey)
}

// SetForRelationship sets the ~for_relationship decorator.
func (m Msg) SetForRelationship(did string) {
	m[decorator.ForRelationshipKey] = did
}

// Decode decodes the message into v using its json tags.
func (m Msg) Decode(v interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  v,
	})
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	if err = decoder.Decode(m); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	return nil
}

// Clone returns a shallow copy of the message.
func (m Msg) Clone() Msg {
	if m == nil {
		return nil
	}

	c := make(Msg, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}

func (m Msg) stringValue(key string) string {
	s, _ := m[key].(string) // nolint:errcheck

	return s
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package protocol holds what the protocol message builders share: the family they address and the thread
// their messages belong to.
package protocol

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// ErrUnexpectedType is returned when a message is decoded as a type it does not carry.
var ErrUnexpectedType = errors.New("unexpected message type")

// Packer packs a message for a relationship. It is implemented by *envelope.Codec.
type Packer interface {
	PackMessage(ctx context.Context, rel *relationship.Context, msg message.Msg) ([]byte, error)
}

// Base is embedded by protocol builders.
type Base struct {
	Family   messagetype.Family
	ThreadID string
}

// NewBase returns a Base for family on the given thread, or on a new thread when threadID is empty.
func NewBase(family messagetype.Family, threadID string) Base {
	if threadID == "" {
		threadID = uuid.New().String()
	}

	return Base{Family: family, ThreadID: threadID}
}

// NewMsg returns a message of the named type with a new @id and the builder's ~thread.
func (b *Base) NewMsg(name string) (message.Msg, error) {
	typ, err := b.Family.Type(name)
	if err != nil {
		return nil, fmt.Errorf("new %s message: %w", name, err)
	}

	msg := message.New(typ)
	msg.SetThread(&decorator.Thread{ID: b.ThreadID})

	return msg, nil
}

// Pack packs msg for rel with p.
func (b *Base) Pack(ctx context.Context, p Packer, rel *relationship.Context, msg message.Msg) ([]byte, error) {
	packed, err := p.PackMessage(ctx, rel, msg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Family, err)
	}

	return packed, nil
}

// IsFamily returns true when msg is of one of family's message types.
func IsFamily(msg message.Msg, family messagetype.Family) bool {
	t, err := messagetype.Parse(msg.Type())
	if err != nil {
		return false
	}

	return t.Family == family
}

// Decode decodes msg into v when msg is the named message of family.
func Decode(msg message.Msg, family messagetype.Family, name string, v interface{}) error {
	if !IsFamily(msg, family) {
		return fmt.Errorf("decode %s: %w: %q is not a %s message", name, ErrUnexpectedType, msg.Type(), family)
	}

	if msg.Type() != family.MustType(name) {
		return fmt.Errorf("decode %s: %w: %q", name, ErrUnexpectedType, msg.Type())
	}

	if err := msg.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	return nil
}

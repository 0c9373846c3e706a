/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package envelope packs plaintext messages into the two layer routed envelope understood by the service,
// and unpacks envelopes received from it.
//
// The inner layer is sealed from the local key to the remote key. It is wrapped in a forward instruction
// addressed to the remote DID, and the forward is sealed anonymously for the service public key.
package envelope

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/forward"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/packer"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Provider contains dependencies for the codec.
type Provider interface {
	Crypter() packer.Crypter
}

// Codec packs and unpacks routed envelopes. It holds no state besides its crypter and is safe for
// concurrent use.
type Codec struct {
	crypter packer.Crypter
}

// New returns a new Codec.
func New(ctx Provider) *Codec {
	return &Codec{crypter: ctx.Crypter()}
}

// PackMessage seals msg for the remote party of rel, forwards it to the remote DID and seals the forward for
// the service. Either the complete envelope or an error is returned.
func (c *Codec) PackMessage(ctx context.Context, rel *relationship.Context, msg message.Msg) ([]byte, error) {
	if err := rel.EnsureComplete(); err != nil {
		return nil, fmt.Errorf("packMessage: %w", err)
	}

	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("packMessage: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("packMessage: marshal message: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("packMessage: %w", err)
	}

	inner, err := c.crypter.Pack(ctx, payload, rel.LocalVerKey, []string{rel.RemoteVerKey})
	if err != nil {
		return nil, fmt.Errorf("packMessage: %w", layerError(LayerInner, ErrSealFailed, err))
	}

	fwd, err := forward.Wrap(rel.RemoteDID, inner)
	if err != nil {
		return nil, fmt.Errorf("packMessage: %w", layerError(LayerInner, ErrSealFailed, err))
	}

	fwdBytes, err := json.Marshal(fwd)
	if err != nil {
		return nil, fmt.Errorf("packMessage: marshal forward: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("packMessage: %w", err)
	}

	outer, err := c.crypter.Pack(ctx, fwdBytes, "", []string{rel.ServicePublicVerKey})
	if err != nil {
		return nil, fmt.Errorf("packMessage: %w", layerError(LayerOuter, ErrSealFailed, err))
	}

	return outer, nil
}

// UnpackMessage opens the outer layer, takes the forwarded payload and opens the inner layer.
func (c *Codec) UnpackMessage(ctx context.Context, rel *relationship.Context, envelope []byte) (message.Msg, error) {
	if err := rel.EnsureComplete(); err != nil {
		return nil, fmt.Errorf("unpackMessage: %w", err)
	}

	fwdBytes, err := c.open(ctx, LayerOuter, envelope)
	if err != nil {
		return nil, fmt.Errorf("unpackMessage: %w", err)
	}

	inner, err := forward.Unwrap(fwdBytes)
	if err != nil {
		return nil, fmt.Errorf("unpackMessage: %w", layerError(LayerOuter, ErrMalformedEnvelope, err))
	}

	plaintext, err := c.open(ctx, LayerInner, inner)
	if err != nil {
		return nil, fmt.Errorf("unpackMessage: %w", err)
	}

	msg, err := message.Parse(plaintext)
	if err != nil {
		return nil, fmt.Errorf("unpackMessage: %w", layerError(LayerInner, ErrMalformedEnvelope, err))
	}

	return msg, nil
}

func (c *Codec) open(ctx context.Context, layer Layer, envelope []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unpacked, err := c.crypter.Unpack(ctx, envelope)
	if err != nil {
		return nil, layerError(layer, ErrOpenFailed, err)
	}

	doc, err := packer.ParseUnpacked(unpacked)
	if err != nil {
		return nil, layerError(layer, ErrMalformedEnvelope, err)
	}

	return []byte(doc.Message), nil
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package packer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Crypter seals and opens single-layer envelopes for base58 encoded Ed25519 verification keys.
type Crypter interface {
	// Pack a payload for the given recipients.
	// An empty senderVerKey produces an anonymous envelope that carries no sender identity.
	// returns:
	// 		[]byte containing the encrypted envelope
	//		error if encryption failed
	Pack(ctx context.Context, payload []byte, senderVerKey string, recipientVerKeys []string) ([]byte, error)
	// Unpack an envelope.
	// 		The recipient's key will be the one found in the key store that matches one of the
	//		recipients in the envelope.
	//
	// returns:
	// 		the JSON encoded Unpacked document
	//		error if decryption failed
	Unpack(ctx context.Context, envelope []byte) ([]byte, error)
}

// Unpacked is the document returned by Crypter.Unpack.
type Unpacked struct {
	Message         string `json:"message"`
	RecipientVerKey string `json:"recipient_verkey"`
	SenderVerKey    string `json:"sender_verkey,omitempty"`
}

// ErrNoMessage is returned when an unpacked document has no message.
var ErrNoMessage = errors.New("unpacked document has no message")

// ParseUnpacked decodes an Unpacked document and checks it carries a message.
func ParseUnpacked(raw []byte) (*Unpacked, error) {
	doc := &Unpacked{}

	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("parse unpacked document: %w", err)
	}

	if doc.Message == "" {
		return nil, ErrNoMessage
	}

	return doc, nil
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package legacy packs and unpacks envelopes in the legacy Aries (RFC 0019) format produced by Indy's
// pack_message.
//
// An envelope is sent Authcrypt when a sender key is given: the content encryption key is boxed from the
// sender to each recipient, and the sender verification key is sealed for each recipient. Without a sender key
// the envelope is sent Anoncrypt: the content encryption key is sealed for each recipient and no sender
// identity is carried.
package legacy

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"github.com/hyperledger/aries-framework-go/component/log"
)

const (
	// encodingType is the `typ` string identifier in a message that identifies the format as being legacy.
	encodingType = "JWM/1.0"

	algAuthcrypt = "Authcrypt"
	algAnoncrypt = "Anoncrypt"

	encXC20P = "xchacha20poly1305_ietf"
	encC20P  = "chacha20poly1305_ietf"
)

var logger = log.New("verity-sdk/packer/legacy")

var errMalformedEnvelope = errors.New("malformed legacy envelope")

// KeyManager holds the private keys of the envelope parties and runs the crypto box operations with them.
type KeyManager interface {
	FindVerKey(candidates []string) (int, error)
	Easy(payload, nonce, theirPub []byte, myVerKey string) ([]byte, error)
	EasyOpen(cipherText, nonce, theirPub []byte, myVerKey string) ([]byte, error)
	Seal(payload, theirPub []byte, randSource io.Reader) ([]byte, error)
	SealOpen(cipherText []byte, myVerKey string) ([]byte, error)
}

// Packer is a Crypter that outputs/reads legacy Aries envelopes.
type Packer struct {
	randSource io.Reader
	kms        KeyManager
}

// Opt configures a Packer.
type Opt func(p *Packer)

// WithRandSource sets the randomness used for content keys and nonces.
func WithRandSource(r io.Reader) Opt {
	return func(p *Packer) {
		p.randSource = r
	}
}

// New will create a Packer that encrypts messages using the legacy Aries format.
func New(km KeyManager, opts ...Opt) *Packer {
	p := &Packer{
		randSource: rand.Reader,
		kms:        km,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// EncodingType returns the type of the encoding, as in the `Typ` field of the envelope header.
func (p *Packer) EncodingType() string {
	return encodingType
}

// legacyEnvelope is the full payload envelope for the JSON message.
type legacyEnvelope struct {
	Protected  string `json:"protected,omitempty"`
	IV         string `json:"iv,omitempty"`
	CipherText string `json:"ciphertext,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

// protected is the protected header of the JSON envelope.
type protected struct {
	Enc        string      `json:"enc,omitempty"`
	Typ        string      `json:"typ,omitempty"`
	Alg        string      `json:"alg,omitempty"`
	Recipients []recipient `json:"recipients,omitempty"`
}

// recipient holds the data for a recipient in the envelope header.
type recipient struct {
	EncryptedKey string          `json:"encrypted_key,omitempty"`
	Header       recipientHeader `json:"header,omitempty"`
}

// recipientHeader holds the header data for a recipient.
type recipientHeader struct {
	KID    string `json:"kid,omitempty"`
	Sender string `json:"sender,omitempty"`
	IV     string `json:"iv,omitempty"`
}

func encode(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

// decode accepts padded and unpadded URL-safe base64 in canonical form only.
func decode(s string) ([]byte, error) {
	b, err := base64.URLEncoding.Strict().DecodeString(s)
	if err != nil {
		return base64.RawURLEncoding.Strict().DecodeString(s)
	}

	return b, nil
}

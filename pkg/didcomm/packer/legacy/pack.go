/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	chacha "golang.org/x/crypto/chacha20poly1305"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/internal/cryptoutil"
)

var errEmptyRecipients = errors.New("empty recipients")

// Pack will encode the payload argument
// Using the protocol defined by Aries RFC 0019.
func (p *Packer) Pack(ctx context.Context, payload []byte, senderVerKey string, recipientVerKeys []string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	if len(recipientVerKeys) == 0 {
		return nil, fmt.Errorf("pack: %w", errEmptyRecipients)
	}

	cek := &[chacha.KeySize]byte{}

	if _, err := p.randSource.Read(cek[:]); err != nil {
		return nil, fmt.Errorf("pack: generate cek: %w", err)
	}

	alg := algAuthcrypt
	if senderVerKey == "" {
		alg = algAnoncrypt
	}

	recipients, err := p.buildRecipients(cek, senderVerKey, recipientVerKeys)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	protectedBytes, err := json.Marshal(protected{
		Enc:        encXC20P,
		Typ:        encodingType,
		Alg:        alg,
		Recipients: recipients,
	})
	if err != nil {
		return nil, fmt.Errorf("pack: marshal protected header: %w", err)
	}

	protectedB64 := encode(protectedBytes)

	c, err := chacha.NewX(cek[:])
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	nonce := make([]byte, c.NonceSize())

	if _, err = p.randSource.Read(nonce); err != nil {
		return nil, fmt.Errorf("pack: generate iv: %w", err)
	}

	// the protected header is the AAD, in its base64 form
	sealed := c.Seal(nil, nonce, payload, []byte(protectedB64))

	tagStart := len(sealed) - c.Overhead()

	logger.Debugf("packed %s envelope for %d recipient(s)", alg, len(recipients))

	return json.Marshal(legacyEnvelope{
		Protected:  protectedB64,
		IV:         encode(nonce),
		CipherText: encode(sealed[:tagStart]),
		Tag:        encode(sealed[tagStart:]),
	})
}

func (p *Packer) buildRecipients(cek *[chacha.KeySize]byte, senderVerKey string, recVerKeys []string) ([]recipient, error) {
	encodedRecipients := make([]recipient, 0, len(recVerKeys))

	for _, recKey := range recVerKeys {
		rec, err := p.buildRecipient(cek, senderVerKey, recKey)
		if err != nil {
			return nil, err
		}

		encodedRecipients = append(encodedRecipients, *rec)
	}

	return encodedRecipients, nil
}

// buildRecipient encodes the necessary data for the recipient to decrypt the message
// encrypting the CEK and sender Pub key.
func (p *Packer) buildRecipient(cek *[chacha.KeySize]byte, senderVerKey, recVerKey string) (*recipient, error) {
	recEdPub := base58.Decode(recVerKey)
	if !cryptoutil.IsEd25519PublicKeyValid(recEdPub) {
		return nil, fmt.Errorf("recipient %q: %w", recVerKey, cryptoutil.ErrInvalidKey)
	}

	recPub, err := cryptoutil.PublicEd25519toCurve25519(recEdPub)
	if err != nil {
		return nil, fmt.Errorf("recipient %q: %w", recVerKey, err)
	}

	if senderVerKey == "" {
		encCEK, e := p.kms.Seal(cek[:], recPub, p.randSource)
		if e != nil {
			return nil, fmt.Errorf("seal cek: %w", e)
		}

		return &recipient{
			EncryptedKey: encode(encCEK),
			Header:       recipientHeader{KID: recVerKey},
		}, nil
	}

	var nonce [cryptoutil.NonceSize]byte

	if _, err = p.randSource.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate recipient iv: %w", err)
	}

	encCEK, err := p.kms.Easy(cek[:], nonce[:], recPub, senderVerKey)
	if err != nil {
		return nil, fmt.Errorf("box cek: %w", err)
	}

	encSender, err := p.kms.Seal([]byte(senderVerKey), recPub, p.randSource)
	if err != nil {
		return nil, fmt.Errorf("seal sender: %w", err)
	}

	return &recipient{
		EncryptedKey: encode(encCEK),
		Header: recipientHeader{
			KID:    recVerKey,
			Sender: encode(encSender),
			IV:     encode(nonce[:]),
		},
	}, nil
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package legacy

import (
	"context"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	chacha "golang.org/x/crypto/chacha20poly1305"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/packer"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/internal/cryptoutil"
)

// Unpack will decode the envelope using the legacy format
// Using (X)Chacha20 encryption algorithm and Poly1035 authenticator.
func (p *Packer) Unpack(ctx context.Context, envelope []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}

	var envelopeData legacyEnvelope

	if err := decodeStrict(envelope, envelopeFields, nil, &envelopeData); err != nil {
		return nil, fmt.Errorf("unpack: decode envelope: %w", err)
	}

	protectedBytes, err := decode(envelopeData.Protected)
	if err != nil {
		return nil, fmt.Errorf("unpack: decode protected header: %w", err)
	}

	protectedData, err := decodeProtected(protectedBytes)
	if err != nil {
		return nil, fmt.Errorf("unpack: decode protected header: %w", err)
	}

	if protectedData.Typ != encodingType {
		return nil, fmt.Errorf("unpack: message type %s not supported", protectedData.Typ)
	}

	keys, err := p.getCEK(protectedData.Alg, protectedData.Recipients)
	if err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}

	data, err := decodeCipherText(protectedData.Enc, keys.cek, &envelopeData)
	if err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}

	logger.Debugf("unpacked %s envelope for %s", protectedData.Alg, keys.myKey)

	return json.Marshal(packer.Unpacked{
		Message:         string(data),
		RecipientVerKey: keys.myKey,
		SenderVerKey:    keys.theirKey,
	})
}

var (
	envelopeFields        = []string{"protected", "iv", "ciphertext", "tag"}
	protectedFields       = []string{"enc", "typ", "alg", "recipients"}
	recipientFields       = []string{"encrypted_key", "header"}
	recipientHeaderFields = []string{"kid"}
	recipientHeaderOpt    = []string{"sender", "iv"}
)

// decodeStrict unmarshals a JSON object into v after checking its member names byte for byte: every required
// name must be present and no other name than the required and optional ones may appear.
func decodeStrict(data []byte, required, optional []string, v interface{}) error {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%w: missing %q", errMalformedEnvelope, name)
		}
	}

	for name := range fields {
		if !contains(required, name) && !contains(optional, name) {
			return fmt.Errorf("%w: unexpected %q", errMalformedEnvelope, name)
		}
	}

	return json.Unmarshal(data, v)
}

func decodeProtected(data []byte) (*protected, error) {
	var hdr struct {
		Enc        string            `json:"enc"`
		Typ        string            `json:"typ"`
		Alg        string            `json:"alg"`
		Recipients []json.RawMessage `json:"recipients"`
	}

	if err := decodeStrict(data, protectedFields, nil, &hdr); err != nil {
		return nil, err
	}

	p := &protected{
		Enc:        hdr.Enc,
		Typ:        hdr.Typ,
		Alg:        hdr.Alg,
		Recipients: make([]recipient, len(hdr.Recipients)),
	}

	for i, raw := range hdr.Recipients {
		var rec struct {
			EncryptedKey string          `json:"encrypted_key"`
			Header       json.RawMessage `json:"header"`
		}

		if err := decodeStrict(raw, recipientFields, nil, &rec); err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i, err)
		}

		p.Recipients[i].EncryptedKey = rec.EncryptedKey

		err := decodeStrict(rec.Header, recipientHeaderFields, recipientHeaderOpt, &p.Recipients[i].Header)
		if err != nil {
			return nil, fmt.Errorf("recipient %d header: %w", i, err)
		}
	}

	return p, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

type keys struct {
	cek      *[chacha.KeySize]byte
	theirKey string
	myKey    string
}

func (p *Packer) getCEK(alg string, recipients []recipient) (*keys, error) {
	if alg != algAuthcrypt && alg != algAnoncrypt {
		return nil, fmt.Errorf("message format %s not supported", alg)
	}

	candidateKeys := make([]string, 0, len(recipients))

	for _, candidate := range recipients {
		candidateKeys = append(candidateKeys, candidate.Header.KID)
	}

	recKeyIdx, err := p.kms.FindVerKey(candidateKeys)
	if err != nil {
		return nil, fmt.Errorf("no key accessible: %w", err)
	}

	recip := recipients[recKeyIdx]

	encCEK, err := decode(recip.EncryptedKey)
	if err != nil {
		return nil, fmt.Errorf("decode encrypted key: %w", err)
	}

	k := &keys{myKey: recip.Header.KID}

	var cekSlice []byte

	if alg == algAnoncrypt {
		cekSlice, err = p.kms.SealOpen(encCEK, recip.Header.KID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt CEK: %w", err)
		}
	} else {
		senderVerKey, senderPubCurve, e := p.decodeSender(recip.Header.Sender, recip.Header.KID)
		if e != nil {
			return nil, e
		}

		nonce, e := decode(recip.Header.IV)
		if e != nil {
			return nil, fmt.Errorf("decode recipient iv: %w", e)
		}

		cekSlice, err = p.kms.EasyOpen(encCEK, nonce, senderPubCurve, recip.Header.KID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt CEK: %w", err)
		}

		k.theirKey = senderVerKey
	}

	if !cryptoutil.IsChachaKeyValid(cekSlice) {
		return nil, errors.New("decrypted CEK has an invalid size")
	}

	k.cek = &[chacha.KeySize]byte{}
	copy(k.cek[:], cekSlice)

	return k, nil
}

func (p *Packer) decodeSender(b64Sender, recVerKey string) (string, []byte, error) {
	if b64Sender == "" {
		return "", nil, errors.New("authcrypt recipient has no sender")
	}

	encSender, err := decode(b64Sender)
	if err != nil {
		return "", nil, fmt.Errorf("decode sender: %w", err)
	}

	senderVerKey, err := p.kms.SealOpen(encSender, recVerKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decrypt sender: %w", err)
	}

	senderPubCurve, err := cryptoutil.PublicEd25519toCurve25519(base58.Decode(string(senderVerKey)))
	if err != nil {
		return "", nil, fmt.Errorf("sender key: %w", err)
	}

	return string(senderVerKey), senderPubCurve, nil
}

// decodeCipherText decodes (from base64) and decrypts the ciphertext using (x)chacha20poly1305.
func decodeCipherText(enc string, cek *[chacha.KeySize]byte, envelope *legacyEnvelope) ([]byte, error) {
	var (
		aead cipher.AEAD
		err  error
	)

	switch enc {
	case encXC20P:
		aead, err = chacha.NewX(cek[:])
	case encC20P:
		aead, err = chacha.New(cek[:])
	default:
		return nil, fmt.Errorf("content encryption %s not supported", enc)
	}

	if err != nil {
		return nil, err
	}

	cipherText, err := decode(envelope.CipherText)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}

	nonce, err := decode(envelope.IV)
	if err != nil {
		return nil, fmt.Errorf("decode iv: %w", err)
	}

	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("iv size %d is invalid", len(nonce))
	}

	tag, err := decode(envelope.Tag)
	if err != nil {
		return nil, fmt.Errorf("decode tag: %w", err)
	}

	payload := append(cipherText, tag...)

	message, err := aead.Open(nil, nonce, payload, []byte(envelope.Protected))
	if err != nil {
		return nil, fmt.Errorf("decrypt ciphertext: %w", err)
	}

	return message, nil
}

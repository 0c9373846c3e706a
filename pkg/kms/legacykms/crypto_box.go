/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package legacykms

import (
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/nacl/box"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/internal/cryptoutil"
)

// Easy seals a message with a provided nonce.
// theirPub is a Curve25519 public key, while myVerKey identifies the stored key pair whose converted
// private key is used.
func (k *KeyStore) Easy(payload, nonce, theirPub []byte, myVerKey string) ([]byte, error) {
	priv, err := k.curvePrivateKey(myVerKey)
	if err != nil {
		return nil, fmt.Errorf("easy: %w", err)
	}

	var (
		recPubBytes [cryptoutil.Curve25519KeySize]byte
		nonceBytes  [cryptoutil.NonceSize]byte
	)

	copy(recPubBytes[:], theirPub)
	copy(nonceBytes[:], nonce)

	return box.Seal(nil, payload, &nonceBytes, &recPubBytes, priv), nil
}

// EasyOpen unseals a message sealed with Easy, where the nonce is provided.
func (k *KeyStore) EasyOpen(cipherText, nonce, theirPub []byte, myVerKey string) ([]byte, error) {
	priv, err := k.curvePrivateKey(myVerKey)
	if err != nil {
		return nil, fmt.Errorf("easyOpen: %w", err)
	}

	var (
		sendPubBytes [cryptoutil.Curve25519KeySize]byte
		nonceBytes   [cryptoutil.NonceSize]byte
	)

	copy(sendPubBytes[:], theirPub)
	copy(nonceBytes[:], nonce)

	out, success := box.Open(nil, cipherText, &nonceBytes, &sendPubBytes, priv)
	if !success {
		return nil, errors.New("easyOpen: failed to unpack")
	}

	return out, nil
}

// Seal seals a payload using the equivalent of libsodium box_seal.
//
// Generates an ephemeral keypair to use for the sender, and includes
// the ephemeral sender public key in the message.
func (k *KeyStore) Seal(payload, theirPub []byte, randSource io.Reader) ([]byte, error) {
	if randSource == nil {
		randSource = k.randSource
	}

	epk, esk, err := box.GenerateKey(randSource)
	if err != nil {
		return nil, fmt.Errorf("seal: generate ephemeral key: %w", err)
	}

	var recPubBytes [cryptoutil.Curve25519KeySize]byte

	copy(recPubBytes[:], theirPub)

	nonce, err := cryptoutil.Nonce(epk[:], theirPub)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	return box.Seal(epk[:], payload, nonce, &recPubBytes, esk), nil
}

// SealOpen decrypts a payload encrypted with Seal.
//
// Reads the ephemeral sender public key prepended to the message, and uses it along with the private key of
// myVerKey to decrypt the rest.
func (k *KeyStore) SealOpen(cipherText []byte, myVerKey string) ([]byte, error) {
	if len(cipherText) < cryptoutil.Curve25519KeySize {
		return nil, errors.New("sealOpen: message too short")
	}

	priv, err := k.curvePrivateKey(myVerKey)
	if err != nil {
		return nil, fmt.Errorf("sealOpen: %w", err)
	}

	myPub, err := cryptoutil.PublicEd25519toCurve25519(base58.Decode(myVerKey))
	if err != nil {
		return nil, fmt.Errorf("sealOpen: %w", err)
	}

	var epk [cryptoutil.Curve25519KeySize]byte

	copy(epk[:], cipherText[:cryptoutil.Curve25519KeySize])

	nonce, err := cryptoutil.Nonce(epk[:], myPub)
	if err != nil {
		return nil, fmt.Errorf("sealOpen: %w", err)
	}

	out, success := box.Open(nil, cipherText[cryptoutil.Curve25519KeySize:], nonce, &epk, priv)
	if !success {
		return nil, errors.New("sealOpen: failed to unpack")
	}

	return out, nil
}

func (k *KeyStore) curvePrivateKey(verKey string) (*[cryptoutil.Curve25519KeySize]byte, error) {
	kp, err := k.KeyPair(verKey)
	if err != nil {
		return nil, err
	}

	sk, err := cryptoutil.SecretEd25519toCurve25519(kp.Priv)
	if err != nil {
		return nil, err
	}

	var priv [cryptoutil.Curve25519KeySize]byte

	copy(priv[:], sk)

	return &priv, nil
}

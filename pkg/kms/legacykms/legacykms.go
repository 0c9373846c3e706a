/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package legacykms stores the Ed25519 key pairs used by the legacy (RFC 0019) envelope format.
//
// Keys are addressed by their base58 encoded verification key, the same identifier that appears as `kid` in
// envelope recipient headers. Private keys never leave the store: the crypto box operations in this package
// read them internally.
package legacykms

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcutil/base58"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/hyperledger/aries-framework-go/spi/storage"
)

// StoreName is the name of the storage namespace used for key pairs.
const StoreName = "legacykms"

var logger = log.New("verity-sdk/legacykms")

// ErrKeyNotFound is returned when no key pair is stored for a verification key.
var ErrKeyNotFound = errors.New("key not found")

// KeyPair is an Ed25519 key pair identified by its base58 verification key.
type KeyPair struct {
	VerKey string             `json:"verkey"`
	Pub    ed25519.PublicKey  `json:"pub"`
	Priv   ed25519.PrivateKey `json:"priv"`
}

// KeyStore holds legacy key pairs in an Aries storage provider.
type KeyStore struct {
	store      storage.Store
	randSource io.Reader
}

// Opt configures a KeyStore.
type Opt func(k *KeyStore)

// WithRandSource sets the randomness used for generated keys and sealed boxes.
func WithRandSource(r io.Reader) Opt {
	return func(k *KeyStore) {
		k.randSource = r
	}
}

// New opens the key store namespace of the given storage provider.
func New(p storage.Provider, opts ...Opt) (*KeyStore, error) {
	store, err := p.OpenStore(StoreName)
	if err != nil {
		return nil, fmt.Errorf("new legacykms: open store: %w", err)
	}

	k := &KeyStore{store: store, randSource: rand.Reader}

	for _, opt := range opts {
		opt(k)
	}

	return k, nil
}

// CreateKey creates and stores a key pair, returning its base58 verification key.
// A 32-byte seed derives the key pair deterministically; a nil seed generates a random one.
func (k *KeyStore) CreateKey(seed []byte) (string, error) {
	var priv ed25519.PrivateKey

	switch {
	case seed == nil:
		_, p, err := ed25519.GenerateKey(k.randSource)
		if err != nil {
			return "", fmt.Errorf("createKey: generate key: %w", err)
		}

		priv = p
	case len(seed) == ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(seed)
	default:
		return "", fmt.Errorf("createKey: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	return k.ImportKey(priv)
}

// ImportKey stores an existing Ed25519 private key and returns its base58 verification key.
func (k *KeyStore) ImportKey(priv ed25519.PrivateKey) (string, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("importKey: %d-byte private key is invalid", len(priv))
	}

	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return "", errors.New("importKey: unexpected public key type")
	}

	kp := KeyPair{
		VerKey: base58.Encode(pub),
		Pub:    pub,
		Priv:   priv,
	}

	raw, err := json.Marshal(kp)
	if err != nil {
		return "", fmt.Errorf("importKey: marshal key pair: %w", err)
	}

	if err = k.store.Put(kp.VerKey, raw); err != nil {
		return "", fmt.Errorf("importKey: store key pair: %w", err)
	}

	logger.Debugf("stored key pair for verkey %s", kp.VerKey)

	return kp.VerKey, nil
}

// KeyPair returns the stored key pair for verKey.
func (k *KeyStore) KeyPair(verKey string) (*KeyPair, error) {
	raw, err := k.store.Get(verKey)
	if err != nil {
		if errors.Is(err, storage.ErrDataNotFound) {
			return nil, fmt.Errorf("keyPair %s: %w", verKey, ErrKeyNotFound)
		}

		return nil, fmt.Errorf("keyPair %s: %w", verKey, err)
	}

	kp := &KeyPair{}

	if err = json.Unmarshal(raw, kp); err != nil {
		return nil, fmt.Errorf("keyPair %s: unmarshal: %w", verKey, err)
	}

	return kp, nil
}

// FindVerKey returns the index of the first candidate verification key held by the store.
func (k *KeyStore) FindVerKey(candidates []string) (int, error) {
	for i, candidate := range candidates {
		_, err := k.store.Get(candidate)
		if err == nil {
			return i, nil
		}

		if !errors.Is(err, storage.ErrDataNotFound) {
			return -1, fmt.Errorf("findVerKey: %w", err)
		}
	}

	return -1, ErrKeyNotFound
}

// RemoveKey deletes the key pair stored for verKey.
func (k *KeyStore) RemoveKey(verKey string) error {
	if err := k.store.Delete(verKey); err != nil {
		return fmt.Errorf("removeKey %s: %w", verKey, err)
	}

	return nil
}

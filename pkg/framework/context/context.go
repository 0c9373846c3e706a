/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package context wires the key store, crypter, envelope codec and transports the SDK clients depend on, and
// provides accessors to them.
package context

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/hyperledger/aries-framework-go/spi/storage"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/config"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/dispatcher"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/envelope"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/packer"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/packer/legacy"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport/http"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport/ws"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/kms/legacykms"
)

// Provider supplies the SDK configuration to client objects.
type Provider struct {
	storeProvider      storage.Provider
	keyStore           *legacykms.KeyStore
	crypter            packer.Crypter
	codec              *envelope.Codec
	outboundTransports []transport.OutboundTransport
	walletSeeds        [][]byte
	httpOpts           []http.OutboundHTTPOpt
}

// ProviderOption configures the framework's provider.
type ProviderOption func(opts *Provider) error

// New creates a provider. Unset services get defaults: in-memory storage, the legacy key store and crypter,
// and HTTP plus websocket outbound transports.
func New(opts ...ProviderOption) (*Provider, error) {
	p := &Provider{}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("option failed: %w", err)
		}
	}

	if p.storeProvider == nil {
		p.storeProvider = mem.NewProvider()
	}

	if p.keyStore == nil {
		ks, err := legacykms.New(p.storeProvider)
		if err != nil {
			return nil, fmt.Errorf("create key store: %w", err)
		}

		p.keyStore = ks
	}

	for i, seed := range p.walletSeeds {
		if _, err := p.keyStore.CreateKey(seed); err != nil {
			return nil, fmt.Errorf("create key from wallet seed %d: %w", i, err)
		}
	}

	if p.crypter == nil {
		p.crypter = legacy.New(p.keyStore)
	}

	p.codec = envelope.New(p)

	if p.outboundTransports == nil {
		outbound, err := http.NewOutbound(p.httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("create outbound transport: %w", err)
		}

		p.outboundTransports = []transport.OutboundTransport{outbound, ws.NewOutbound()}
	}

	return p, nil
}

// FromVerityContext creates a provider whose key store holds the keys of the context's wallet seeds and whose
// HTTP transport uses the context's retry and timeout settings.
func FromVerityContext(vc *config.VerityContext, opts ...ProviderOption) (*Provider, error) {
	seeds := make([][]byte, 0, len(vc.WalletSeeds))
	for _, s := range vc.WalletSeeds {
		seeds = append(seeds, []byte(s))
	}

	base := []ProviderOption{
		WithWalletSeeds(seeds...),
		WithHTTPOptions(
			http.WithOutboundTimeout(vc.TransportTimeout),
			http.WithMaxRetries(uint64(vc.TransportRetries)),
		),
	}

	return New(append(base, opts...)...)
}

// StorageProvider returns the storage provider backing the key store.
func (p *Provider) StorageProvider() storage.Provider {
	return p.storeProvider
}

// KeyStore returns the key store.
func (p *Provider) KeyStore() *legacykms.KeyStore {
	return p.keyStore
}

// Crypter returns the crypter sealing each envelope layer.
func (p *Provider) Crypter() packer.Crypter {
	return p.crypter
}

// Codec returns the envelope codec.
func (p *Provider) Codec() *envelope.Codec {
	return p.codec
}

// Packer returns the envelope codec as a protocol.Packer.
func (p *Provider) Packer() protocol.Packer {
	return p.codec
}

// Unpacker returns the envelope codec as a dispatcher.Unpacker.
func (p *Provider) Unpacker() dispatcher.Unpacker {
	return p.codec
}

// OutboundTransports returns the outbound transports.
func (p *Provider) OutboundTransports() []transport.OutboundTransport {
	return p.outboundTransports
}

// WithStorageProvider sets the storage provider of the default key store.
func WithStorageProvider(s storage.Provider) ProviderOption {
	return func(opts *Provider) error {
		opts.storeProvider = s
		return nil
	}
}

// WithKeyStore injects a key store.
func WithKeyStore(ks *legacykms.KeyStore) ProviderOption {
	return func(opts *Provider) error {
		opts.keyStore = ks
		return nil
	}
}

// WithCrypter injects a crypter.
func WithCrypter(c packer.Crypter) ProviderOption {
	return func(opts *Provider) error {
		opts.crypter = c
		return nil
	}
}

// WithOutboundTransports injects the outbound transports.
func WithOutboundTransports(transports ...transport.OutboundTransport) ProviderOption {
	return func(opts *Provider) error {
		opts.outboundTransports = transports
		return nil
	}
}

// WithWalletSeeds creates a key from each 32 byte seed in the key store.
func WithWalletSeeds(seeds ...[]byte) ProviderOption {
	return func(opts *Provider) error {
		opts.walletSeeds = append(opts.walletSeeds, seeds...)
		return nil
	}
}

// WithHTTPOptions configures the default HTTP outbound transport.
func WithHTTPOptions(httpOpts ...http.OutboundHTTPOpt) ProviderOption {
	return func(opts *Provider) error {
		opts.httpOpts = append(opts.httpOpts, httpOpts...)
		return nil
	}
}

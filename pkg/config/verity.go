/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/config/lookup"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Keys of the SDK context file.
const (
	VerityURLKey            = "verityUrl"
	VerityPublicDIDKey      = "verityPublicDID"
	VerityPublicVerKeyKey   = "verityPublicVerkey"
	VerityPairwiseDIDKey    = "verityPairwiseDID"
	VerityPairwiseVerKeyKey = "verityPairwiseVerkey"
	SDKPairwiseVerKeyKey    = "sdkPairwiseVerkey"
	DomainDIDKey            = "domainDID"
	EndpointURLKey          = "endpointUrl"
	WalletSeedsKey          = "walletSeeds"
	RemoteDIDKey            = "remoteDID"
	RemoteVerKeyKey         = "remoteVerkey"
	TransportRetriesKey     = "transport.retries"
	TransportTimeoutKey     = "transport.timeout"
)

const (
	defaultRetries = 3
	defaultTimeout = 30 * time.Second

	agencyMsgPath = "/agency/msg"
)

// VerityContext is everything the SDK needs to talk to one service domain.
type VerityContext struct {
	VerityURL         string
	VerityPublicDID   string
	VerityPairwiseDID string
	EndpointURL       string
	WalletSeeds       []string
	Relationship      *relationship.Context
	TransportRetries  int
	TransportTimeout  time.Duration
}

// AgencyURL is where packed messages are posted.
func (v *VerityContext) AgencyURL() string {
	return strings.TrimRight(v.VerityURL, "/") + agencyMsgPath
}

// LoadVerityContext reads a VerityContext from the backend created by p. The relationship addresses the domain
// agent unless remoteDID and remoteVerkey name a pairwise peer.
func LoadVerityContext(p Provider) (*VerityContext, error) {
	backend, err := p()
	if err != nil {
		return nil, fmt.Errorf("load verity context: %w", err)
	}

	l := lookup.New(backend)

	required := map[string]string{}

	for _, key := range []string{
		VerityURLKey, VerityPublicVerKeyKey, VerityPairwiseVerKeyKey, SDKPairwiseVerKeyKey, DomainDIDKey,
	} {
		v, e := l.RequireString(key)
		if e != nil {
			return nil, fmt.Errorf("load verity context: %w", e)
		}

		required[key] = v
	}

	rel := relationship.ForDomain(required[SDKPairwiseVerKeyKey], required[DomainDIDKey],
		required[VerityPublicVerKeyKey], required[VerityPairwiseVerKeyKey])

	remoteDID, remoteVerKey := l.GetString(RemoteDIDKey), l.GetString(RemoteVerKeyKey)

	switch {
	case remoteDID != "" && remoteVerKey != "":
		rel = rel.WithPairwise(remoteDID, remoteVerKey)
	case remoteDID != "" || remoteVerKey != "":
		return nil, fmt.Errorf("load verity context: %s and %s must be set together", RemoteDIDKey, RemoteVerKeyKey)
	}

	vc := &VerityContext{
		VerityURL:         required[VerityURLKey],
		VerityPublicDID:   l.GetString(VerityPublicDIDKey),
		VerityPairwiseDID: l.GetString(VerityPairwiseDIDKey),
		EndpointURL:       l.GetString(EndpointURLKey),
		WalletSeeds:       l.GetStringSlice(WalletSeedsKey),
		Relationship:      rel,
		TransportRetries:  defaultRetries,
		TransportTimeout:  defaultTimeout,
	}

	if _, ok := l.Lookup(TransportRetriesKey); ok {
		vc.TransportRetries = l.GetInt(TransportRetriesKey)
	}

	if d := l.GetDuration(TransportTimeoutKey); d > 0 {
		vc.TransportTimeout = d
	}

	if vc.TransportRetries < 0 {
		return nil, fmt.Errorf("load verity context: %s must not be negative", TransportRetriesKey)
	}

	return vc, nil
}

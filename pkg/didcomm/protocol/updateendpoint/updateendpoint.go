/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package updateendpoint builds the message that registers the webhook the service delivers messages to.
package updateendpoint

import (
	"context"
	"errors"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

const (
	// UpdateMsgName is the name of the update message.
	UpdateMsgName = "UPDATE_COM_METHOD"

	webhookID          = "webhook"
	webhookComMethod   = 2
	packagingTypeRFC19 = "1.0"
)

// Family is the configs 0.6 protocol family.
var Family = messagetype.MustLookup(messagetype.Configs, "0.6") // nolint:gochecknoglobals

// ComMethod describes how the service reaches the SDK.
type ComMethod struct {
	ID        string     `json:"id"`
	Type      int        `json:"type"`
	Value     string     `json:"value"`
	Packaging *Packaging `json:"packaging,omitempty"`
}

// Packaging describes how messages delivered to a ComMethod are packed.
type Packaging struct {
	PkgType       string   `json:"pkgType"`
	RecipientKeys []string `json:"recipientKeys"`
}

// UpdateEndpoint builds the update message.
type UpdateEndpoint struct {
	protocol.Base
	EndpointURL string
}

// New returns an UpdateEndpoint registering endpointURL.
func New(endpointURL string) *UpdateEndpoint {
	return &UpdateEndpoint{
		Base:        protocol.NewBase(Family, ""),
		EndpointURL: endpointURL,
	}
}

// UpdateMsg returns the message registering the endpoint for messages packed for sdkVerKey.
func (u *UpdateEndpoint) UpdateMsg(sdkVerKey string) (message.Msg, error) {
	if u.EndpointURL == "" || sdkVerKey == "" {
		return nil, errors.New("update endpoint: endpoint url and sdk verkey are required")
	}

	msg, err := u.NewMsg(UpdateMsgName)
	if err != nil {
		return nil, err
	}

	msg["comMethod"] = &ComMethod{
		ID:    webhookID,
		Type:  webhookComMethod,
		Value: u.EndpointURL,
		Packaging: &Packaging{
			PkgType:       packagingTypeRFC19,
			RecipientKeys: []string{sdkVerKey},
		},
	}

	return msg, nil
}

// UpdateMsgPacked returns the packed UpdateMsg, registering the local key of rel.
func (u *UpdateEndpoint) UpdateMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := u.UpdateMsg(rel.LocalVerKey)
	if err != nil {
		return nil, err
	}

	return u.Pack(ctx, packer, rel, msg)
}

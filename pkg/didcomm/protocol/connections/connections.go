/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package connections builds the messages of the community connections 1.0 protocol.
package connections

import (
	"context"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Message names.
const (
	AcceptMsgName = "accept"
)

// Family is the connections 1.0 protocol family.
var Family = messagetype.MustLookup(messagetype.Connections, "1.0") // nolint:gochecknoglobals

// Connections builds connections messages for one relationship.
type Connections struct {
	protocol.Base
	ForRelationship string
	Label           string
	InviteURL       string
}

// New returns a Connections acting on the forRelationship DID.
func New(forRelationship, threadID string) *Connections {
	return &Connections{
		Base:            protocol.NewBase(Family, threadID),
		ForRelationship: forRelationship,
	}
}

// StatusMsg returns the message asking the service for the connection status.
func (c *Connections) StatusMsg() (message.Msg, error) {
	msg, err := c.NewMsg(messagetype.StatusName)
	if err != nil {
		return nil, err
	}

	msg.SetForRelationship(c.ForRelationship)

	return msg, nil
}

// StatusMsgPacked returns the packed StatusMsg.
func (c *Connections) StatusMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := c.StatusMsg()
	if err != nil {
		return nil, err
	}

	return c.Pack(ctx, packer, rel, msg)
}

// AcceptMsg returns the message accepting a received invitation.
func (c *Connections) AcceptMsg() (message.Msg, error) {
	msg, err := c.NewMsg(AcceptMsgName)
	if err != nil {
		return nil, err
	}

	msg.SetForRelationship(c.ForRelationship)

	if c.Label != "" {
		msg["label"] = c.Label
	}

	if c.InviteURL != "" {
		msg["inviteUrl"] = c.InviteURL
	}

	return msg, nil
}

// AcceptMsgPacked returns the packed AcceptMsg.
func (c *Connections) AcceptMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := c.AcceptMsg()
	if err != nil {
		return nil, err
	}

	return c.Pack(ctx, packer, rel, msg)
}

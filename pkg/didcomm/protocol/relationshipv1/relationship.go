/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package relationshipv1 builds the messages of the relationship 1.0 protocol, which creates pairwise
// relationships on the service and the invitations that let a holder connect to them.
package relationshipv1

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Message names.
const (
	CreateMsgName               = "create"
	ConnectionInvitationMsgName = "connection-invitation"
	CreatedMsgName              = "created"
	InvitationMsgName           = "invitation"
)

// Family is the relationship 1.0 protocol family.
var Family = messagetype.MustLookup(messagetype.Relationship, "1.0") // nolint:gochecknoglobals

// ErrNotCreator is returned when a create message is requested from a builder that joined an existing
// relationship instead of starting one.
var ErrNotCreator = errors.New("unable to create relationship when not starting the interaction")

// Created is sent by the service once the relationship exists.
type Created struct {
	Type   string            `json:"@type"`
	ID     string            `json:"@id"`
	Thread *decorator.Thread `json:"~thread,omitempty"`
	DID    string            `json:"did"`
	VerKey string            `json:"verKey"`
}

// Invitation is sent by the service with the invitation of a relationship.
type Invitation struct {
	Type      string            `json:"@type"`
	ID        string            `json:"@id"`
	Thread    *decorator.Thread `json:"~thread,omitempty"`
	InviteURL string            `json:"inviteURL"`
}

// Relationship builds relationship messages.
type Relationship struct {
	protocol.Base
	ForRelationship string
	Label           string
	LogoURL         string

	created bool
}

// New returns a Relationship that starts the interaction by creating a relationship with label.
func New(label, logoURL string) *Relationship {
	return &Relationship{
		Base:    protocol.NewBase(Family, ""),
		Label:   strings.TrimSpace(label),
		LogoURL: logoURL,
		created: true,
	}
}

// Existing returns a Relationship acting on an already created relationship.
func Existing(forRelationship, threadID string) *Relationship {
	return &Relationship{
		Base:            protocol.NewBase(Family, threadID),
		ForRelationship: forRelationship,
	}
}

// CreateMsg returns the message asking the service to create the relationship.
func (r *Relationship) CreateMsg() (message.Msg, error) {
	if !r.created {
		return nil, ErrNotCreator
	}

	msg, err := r.NewMsg(CreateMsgName)
	if err != nil {
		return nil, err
	}

	msg["label"] = r.Label

	if r.LogoURL != "" {
		msg["logoUrl"] = r.LogoURL
	}

	return msg, nil
}

// CreateMsgPacked returns the packed CreateMsg.
func (r *Relationship) CreateMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := r.CreateMsg()
	if err != nil {
		return nil, err
	}

	return r.Pack(ctx, packer, rel, msg)
}

// ConnectionInvitationMsg returns the message asking the service for an invitation to the relationship.
func (r *Relationship) ConnectionInvitationMsg() (message.Msg, error) {
	msg, err := r.NewMsg(ConnectionInvitationMsgName)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(r.ForRelationship) != "" {
		msg.SetForRelationship(r.ForRelationship)
	}

	return msg, nil
}

// ConnectionInvitationMsgPacked returns the packed ConnectionInvitationMsg.
func (r *Relationship) ConnectionInvitationMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := r.ConnectionInvitationMsg()
	if err != nil {
		return nil, err
	}

	return r.Pack(ctx, packer, rel, msg)
}

// DecodeCreated decodes a created message.
func DecodeCreated(msg message.Msg) (*Created, error) {
	created := &Created{}

	if err := protocol.Decode(msg, Family, CreatedMsgName, created); err != nil {
		return nil, err
	}

	return created, nil
}

// DecodeInvitation decodes an invitation message.
func DecodeInvitation(msg message.Msg) (*Invitation, error) {
	invitation := &Invitation{}

	if err := protocol.Decode(msg, Family, InvitationMsgName, invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

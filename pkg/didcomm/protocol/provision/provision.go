/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package provision builds the messages of the agent-provisioning 0.7 protocol, which asks the service to
// create the agent of a new domain.
package provision

import (
	"context"
	"errors"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Message names.
const (
	CreateEdgeAgentMsgName = "create-edge-agent"
	AgentCreatedMsgName    = "agent-created"
)

// Family is the agent-provisioning 0.7 protocol family.
var Family = messagetype.MustLookup(messagetype.AgentProvisioning, "0.7") // nolint:gochecknoglobals

// AgentCreated is sent by the service once the domain agent exists.
type AgentCreated struct {
	Type        string            `json:"@type"`
	ID          string            `json:"@id"`
	Thread      *decorator.Thread `json:"~thread,omitempty"`
	SelfDID     string            `json:"selfDID"`
	AgentVerKey string            `json:"agentVerKey"`
}

// Provision builds provisioning messages.
type Provision struct {
	protocol.Base
	Token string
}

// New returns a Provision. The token is only needed by services that require one.
func New(token string) *Provision {
	return &Provision{
		Base:  protocol.NewBase(Family, ""),
		Token: token,
	}
}

// ProvisionMsg returns the create-edge-agent message for requesterVerKey.
func (p *Provision) ProvisionMsg(requesterVerKey string) (message.Msg, error) {
	if requesterVerKey == "" {
		return nil, errors.New("provision: requester verkey is required")
	}

	msg, err := p.NewMsg(CreateEdgeAgentMsgName)
	if err != nil {
		return nil, err
	}

	msg["requesterVk"] = requesterVerKey

	if p.Token != "" {
		msg["provisionToken"] = p.Token
	}

	return msg, nil
}

// ProvisionMsgPacked returns the ProvisionMsg packed for the service's public identity.
func (p *Provision) ProvisionMsgPacked(ctx context.Context, packer protocol.Packer, localVerKey, servicePublicDID,
	servicePublicVerKey string) ([]byte, error) {
	msg, err := p.ProvisionMsg(localVerKey)
	if err != nil {
		return nil, err
	}

	return p.Pack(ctx, packer, relationship.ForProvisioning(localVerKey, servicePublicDID, servicePublicVerKey), msg)
}

// DecodeAgentCreated decodes an agent-created message.
func DecodeAgentCreated(msg message.Msg) (*AgentCreated, error) {
	created := &AgentCreated{}

	if err := protocol.Decode(msg, Family, AgentCreatedMsgName, created); err != nil {
		return nil, err
	}

	return created, nil
}

// DomainContext returns the relationship Context of the provisioned domain.
func (a *AgentCreated) DomainContext(localVerKey, servicePublicVerKey string) *relationship.Context {
	return relationship.ForDomain(localVerKey, a.SelfDID, servicePublicVerKey, a.AgentVerKey)
}

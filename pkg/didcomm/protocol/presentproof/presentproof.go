/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentproof builds the messages of the present-proof 0.6 protocol, which asks the service to
// request a proof from the holder of a pairwise relationship.
package presentproof

import (
	"context"
	"fmt"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Message names.
const (
	RequestMsgName     = "request"
	GetStatusMsgName   = "get-status"
	ProofResultMsgName = "proof-result"
)

// Status values reported by the service.
const (
	ProofRequestSentStatus = 0
	ProofReceivedStatus    = 1
)

// Family is the present-proof 0.6 protocol family.
var Family = messagetype.MustLookup(messagetype.PresentProof, "0.6") // nolint:gochecknoglobals

// Attribute is a requested proof attribute.
type Attribute struct {
	Name         string              `json:"name"`
	Restrictions []map[string]string `json:"restrictions,omitempty"`
}

// Predicate is a requested proof predicate.
type Predicate struct {
	Name         string              `json:"name"`
	PType        string              `json:"p_type"`
	PValue       int                 `json:"p_value"`
	Restrictions []map[string]string `json:"restrictions,omitempty"`
}

// RevocationInterval bounds the time at which credentials must not have been revoked.
type RevocationInterval struct {
	From int64 `json:"from,omitempty"`
	To   int64 `json:"to,omitempty"`
}

// Request holds the content of a proof request.
type Request struct {
	Name               string
	ProofAttrs         []Attribute
	ProofPredicates    []Predicate
	RevocationInterval *RevocationInterval
}

// ProofResult is sent by the service once the holder has presented a proof.
type ProofResult struct {
	Type                  string                 `json:"@type"`
	ID                    string                 `json:"@id"`
	Thread                *decorator.Thread      `json:"~thread,omitempty"`
	RequestedPresentation map[string]interface{} `json:"requested_presentation,omitempty"`
}

// PresentProof builds present-proof messages for one relationship and thread.
type PresentProof struct {
	protocol.Base
	ForRelationship string
}

// New returns a PresentProof acting on the forRelationship DID. An empty threadID starts a new thread.
func New(forRelationship, threadID string) *PresentProof {
	return &PresentProof{
		Base:            protocol.NewBase(Family, threadID),
		ForRelationship: forRelationship,
	}
}

// RequestMsg returns the message asking the service to request a proof.
func (p *PresentProof) RequestMsg(req *Request) (message.Msg, error) {
	if req == nil || req.Name == "" {
		return nil, fmt.Errorf("present-proof request: name is required")
	}

	msg, err := p.NewMsg(RequestMsgName)
	if err != nil {
		return nil, err
	}

	attrs := req.ProofAttrs
	if attrs == nil {
		attrs = []Attribute{}
	}

	predicates := req.ProofPredicates
	if predicates == nil {
		predicates = []Predicate{}
	}

	interval := req.RevocationInterval
	if interval == nil {
		interval = &RevocationInterval{}
	}

	msg.SetForRelationship(p.ForRelationship)
	msg["name"] = req.Name
	msg["proofAttrs"] = attrs
	msg["proofPredicates"] = predicates
	msg["revocationInterval"] = interval

	return msg, nil
}

// RequestMsgPacked returns the packed RequestMsg.
func (p *PresentProof) RequestMsgPacked(ctx context.Context, packer protocol.Packer, rel *relationship.Context,
	req *Request) ([]byte, error) {
	msg, err := p.RequestMsg(req)
	if err != nil {
		return nil, err
	}

	return p.Pack(ctx, packer, rel, msg)
}

// StatusMsg returns the message asking the service for the status of the thread.
func (p *PresentProof) StatusMsg() (message.Msg, error) {
	msg, err := p.NewMsg(GetStatusMsgName)
	if err != nil {
		return nil, err
	}

	msg.SetForRelationship(p.ForRelationship)

	return msg, nil
}

// StatusMsgPacked returns the packed StatusMsg.
func (p *PresentProof) StatusMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := p.StatusMsg()
	if err != nil {
		return nil, err
	}

	return p.Pack(ctx, packer, rel, msg)
}

// DecodeProofResult decodes a proof-result message.
func DecodeProofResult(msg message.Msg) (*ProofResult, error) {
	result := &ProofResult{}

	if err := protocol.Decode(msg, Family, ProofResultMsgName, result); err != nil {
		return nil, err
	}

	return result, nil
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connections

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInviteField is returned when invite details lack a field carried by the abbreviated form.
var ErrMissingInviteField = errors.New("invite details field missing")

// requiredInviteFields are the paths every invite details document must carry. threadId and publicDID are
// optional.
var requiredInviteFields = [][]string{ // nolint:gochecknoglobals
	{"connReqId"},
	{"statusCode"},
	{"statusMsg"},
	{"targetName"},
	{"version"},
	{"senderDetail", "name"},
	{"senderDetail", "DID"},
	{"senderDetail", "logoUrl"},
	{"senderDetail", "verKey"},
	{"senderDetail", "agentKeyDlgProof", "agentDID"},
	{"senderDetail", "agentKeyDlgProof", "agentDelegatedKey"},
	{"senderDetail", "agentKeyDlgProof", "signature"},
	{"senderAgencyDetail", "DID"},
	{"senderAgencyDetail", "endpoint"},
	{"senderAgencyDetail", "verKey"},
}

// InviteDetails are the connection request details produced by the service.
type InviteDetails struct {
	ConnReqID          string             `json:"connReqId"`
	StatusCode         string             `json:"statusCode"`
	StatusMsg          string             `json:"statusMsg"`
	TargetName         string             `json:"targetName"`
	Version            string             `json:"version"`
	ThreadID           string             `json:"threadId,omitempty"`
	SenderDetail       SenderDetail       `json:"senderDetail"`
	SenderAgencyDetail SenderAgencyDetail `json:"senderAgencyDetail"`
}

// SenderDetail describes the inviter.
type SenderDetail struct {
	PublicDID        string           `json:"publicDID,omitempty"`
	Name             string           `json:"name"`
	DID              string           `json:"DID"`
	LogoURL          string           `json:"logoUrl"`
	VerKey           string           `json:"verKey"`
	AgentKeyDlgProof AgentKeyDlgProof `json:"agentKeyDlgProof"`
}

// AgentKeyDlgProof proves the inviter delegated a key to its agent.
type AgentKeyDlgProof struct {
	AgentDID          string `json:"agentDID"`
	AgentDelegatedKey string `json:"agentDelegatedKey"`
	Signature         string `json:"signature"`
}

// SenderAgencyDetail describes the agency hosting the inviter's agent.
type SenderAgencyDetail struct {
	DID      string `json:"DID"`
	Endpoint string `json:"endpoint"`
	VerKey   string `json:"verKey"`
}

// AbbreviatedInvite is the short form of InviteDetails carried in invitation URLs.
type AbbreviatedInvite struct {
	ID       string                  `json:"id"`
	SC       string                  `json:"sc"`
	SM       string                  `json:"sm"`
	T        string                  `json:"t"`
	Version  string                  `json:"version"`
	ThreadID string                  `json:"threadId,omitempty"`
	S        AbbreviatedSender       `json:"s"`
	SA       AbbreviatedSenderAgency `json:"sa"`
}

// AbbreviatedSender is the short form of SenderDetail.
type AbbreviatedSender struct {
	PublicDID string              `json:"publicDID,omitempty"`
	N         string              `json:"n"`
	D         string              `json:"d"`
	L         string              `json:"l"`
	V         string              `json:"v"`
	DP        AbbreviatedDlgProof `json:"dp"`
}

// AbbreviatedDlgProof is the short form of AgentKeyDlgProof.
type AbbreviatedDlgProof struct {
	D string `json:"d"`
	K string `json:"k"`
	S string `json:"s"`
}

// AbbreviatedSenderAgency is the short form of SenderAgencyDetail.
type AbbreviatedSenderAgency struct {
	D string `json:"d"`
	E string `json:"e"`
	V string `json:"v"`
}

// TruncateInviteDetails converts the JSON encoded invite details into their abbreviated form.
func TruncateInviteDetails(raw []byte) (*AbbreviatedInvite, error) {
	details := &InviteDetails{}

	if err := json.Unmarshal(raw, details); err != nil {
		return nil, fmt.Errorf("truncate invite details: %w", err)
	}

	for _, path := range requiredInviteFields {
		if !hasField(raw, path) {
			return nil, fmt.Errorf("truncate invite details: %w: %s", ErrMissingInviteField, strings.Join(path, "."))
		}
	}

	return Truncate(details), nil
}

// Truncate converts invite details into their abbreviated form.
func Truncate(d *InviteDetails) *AbbreviatedInvite {
	return &AbbreviatedInvite{
		ID:       d.ConnReqID,
		SC:       d.StatusCode,
		SM:       d.StatusMsg,
		T:        d.TargetName,
		Version:  d.Version,
		ThreadID: d.ThreadID,
		S: AbbreviatedSender{
			PublicDID: d.SenderDetail.PublicDID,
			N:         d.SenderDetail.Name,
			D:         d.SenderDetail.DID,
			L:         d.SenderDetail.LogoURL,
			V:         d.SenderDetail.VerKey,
			DP: AbbreviatedDlgProof{
				D: d.SenderDetail.AgentKeyDlgProof.AgentDID,
				K: d.SenderDetail.AgentKeyDlgProof.AgentDelegatedKey,
				S: d.SenderDetail.AgentKeyDlgProof.Signature,
			},
		},
		SA: AbbreviatedSenderAgency{
			D: d.SenderAgencyDetail.DID,
			E: d.SenderAgencyDetail.Endpoint,
			V: d.SenderAgencyDetail.VerKey,
		},
	}
}

// hasField reports whether the JSON object raw holds a non-null value at path.
func hasField(raw json.RawMessage, path []string) bool {
	for _, name := range path {
		var obj map[string]json.RawMessage

		if err := json.Unmarshal(raw, &obj); err != nil {
			return false
		}

		v, ok := obj[name]
		if !ok || string(v) == "null" {
			return false
		}

		raw = v
	}

	return true
}

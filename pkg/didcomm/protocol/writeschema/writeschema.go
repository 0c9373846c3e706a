/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package writeschema builds the messages of the write-schema 0.6 protocol.
package writeschema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/decorator"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// Message names.
const (
	WriteMsgName        = "write"
	StatusReportMsgName = "status-report"
)

// Family is the write-schema 0.6 protocol family.
var Family = messagetype.MustLookup(messagetype.WriteSchema, "0.6") // nolint:gochecknoglobals

var errInvalidSchema = errors.New("schema name, version and at least one attribute are required")

// StatusReport is sent by the service once the schema is written to the ledger.
type StatusReport struct {
	Type     string            `json:"@type"`
	ID       string            `json:"@id"`
	Thread   *decorator.Thread `json:"~thread,omitempty"`
	SchemaID string            `json:"schemaId"`
}

// WriteSchema builds write-schema messages for one schema.
type WriteSchema struct {
	protocol.Base
	Name    string
	Version string
	Attrs   []string
}

// New returns a WriteSchema for the schema name, version and attribute names.
func New(name, version string, attrs ...string) *WriteSchema {
	return &WriteSchema{
		Base:    protocol.NewBase(Family, ""),
		Name:    name,
		Version: version,
		Attrs:   attrs,
	}
}

// WriteMsg returns the message asking the service to write the schema.
func (w *WriteSchema) WriteMsg() (message.Msg, error) {
	if w.Name == "" || w.Version == "" || len(w.Attrs) == 0 {
		return nil, fmt.Errorf("write-schema: %w", errInvalidSchema)
	}

	msg, err := w.NewMsg(WriteMsgName)
	if err != nil {
		return nil, err
	}

	msg["name"] = w.Name
	msg["version"] = w.Version
	msg["attrNames"] = w.Attrs

	return msg, nil
}

// WriteMsgPacked returns the packed WriteMsg.
func (w *WriteSchema) WriteMsgPacked(ctx context.Context, packer protocol.Packer,
	rel *relationship.Context) ([]byte, error) {
	msg, err := w.WriteMsg()
	if err != nil {
		return nil, err
	}

	return w.Pack(ctx, packer, rel, msg)
}

// DecodeStatusReport decodes a status-report message.
func DecodeStatusReport(msg message.Msg) (*StatusReport, error) {
	report := &StatusReport{}

	if err := protocol.Decode(msg, Family, StatusReportMsgName, report); err != nil {
		return nil, err
	}

	return report, nil
}

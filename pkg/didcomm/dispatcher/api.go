/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dispatcher moves messages between protocol code and transports: outbound messages are packed and
// handed to the first transport accepting the destination, inbound envelopes are unpacked and routed to the
// handler registered for their protocol family.
package dispatcher

import (
	"context"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

var logger = log.New("verity-sdk/dispatcher")

const unknownFamily = "unknown"

// Unpacker opens envelopes received from the service.
type Unpacker interface {
	UnpackMessage(ctx context.Context, rel *relationship.Context, envelope []byte) (message.Msg, error)
}

// Provider supplies the outbound dispatcher.
type Provider interface {
	Packer() protocol.Packer
	OutboundTransports() []transport.OutboundTransport
}

// familyLabel returns the "name/version" of typ, or "unknown" when typ does not parse.
func familyLabel(typ string) string {
	t, err := messagetype.Parse(typ)
	if err != nil {
		return unknownFamily
	}

	return t.Family.String()
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package transport defines how packed envelopes travel between the SDK and the service.
package transport

import "context"

// MediaTypeEnvelope is the content type of a packed envelope on the wire.
const MediaTypeEnvelope = "application/octet-stream"

// OutboundTransport delivers packed envelopes.
type OutboundTransport interface {
	// Send delivers data to url and returns the response body, if any.
	Send(ctx context.Context, data []byte, url string) ([]byte, error)

	// Accept reports whether the transport handles url.
	Accept(url string) bool
}

// InboundMessageHandler handles a packed envelope received by an inbound transport.
type InboundMessageHandler func(ctx context.Context, packed []byte) error

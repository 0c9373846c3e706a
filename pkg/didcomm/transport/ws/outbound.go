/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ws delivers packed envelopes over a websocket connection.
package ws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/aries-framework-go/component/log"
	"nhooyr.io/websocket"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
)

const webSocketScheme = "ws"

var logger = log.New("verity-sdk/transport/ws")

// OutboundClient websocket outbound.
type OutboundClient struct {
	readResponse bool
}

var _ transport.OutboundTransport = (*OutboundClient)(nil)

// Opt configures an OutboundClient.
type Opt func(*OutboundClient)

// WithResponse makes Send wait for one binary reply on the connection.
func WithResponse() Opt {
	return func(c *OutboundClient) {
		c.readResponse = true
	}
}

// NewOutbound creates a client for Outbound WS transport.
func NewOutbound(opts ...Opt) *OutboundClient {
	c := &OutboundClient{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send writes data as a single binary frame on a new connection to url.
func (cs *OutboundClient) Send(ctx context.Context, data []byte, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("url is mandatory")
	}

	client, _, err := websocket.Dial(ctx, url, nil) //nolint:bodyclose
	if err != nil {
		return nil, fmt.Errorf("websocket client : %w", err)
	}

	defer func() {
		err = client.Close(websocket.StatusNormalClosure, "closing the connection")
		if err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
			logger.Errorf("failed to close connection: %v", err)
		}
	}()

	if err = client.Write(ctx, websocket.MessageBinary, data); err != nil {
		return nil, fmt.Errorf("websocket write message : %w", err)
	}

	if !cs.readResponse {
		return nil, nil
	}

	messageType, message, err := client.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("websocket read message : %w", err)
	}

	if messageType != websocket.MessageBinary {
		return nil, errors.New("message type is not binary message")
	}

	return message, nil
}

// Accept checks for the url scheme.
func (cs *OutboundClient) Accept(url string) bool {
	return strings.HasPrefix(url, webSocketScheme)
}

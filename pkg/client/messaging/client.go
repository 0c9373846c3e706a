/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package messaging sends SDK messages to the service and receives its replies.
package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/config"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/dispatcher"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/metrics"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

var logger = log.New("verity-sdk/client/messaging")

// errMissingContext is returned when the client is created without a verity context.
var errMissingContext = errors.New("verity context is required")

// provider contains the dependencies of the client.
type provider interface {
	Packer() protocol.Packer
	Unpacker() dispatcher.Unpacker
	OutboundTransports() []transport.OutboundTransport
}

type options struct {
	metrics *metrics.Metrics
	inbound []dispatcher.InboundOpt
}

// Opt configures the client.
type Opt func(*options)

// WithMetrics records sent and received messages in m.
func WithMetrics(m *metrics.Metrics) Opt {
	return func(o *options) {
		o.metrics = m
	}
}

// WithInboundOptions passes opts to the inbound dispatcher.
func WithInboundOptions(opts ...dispatcher.InboundOpt) Opt {
	return func(o *options) {
		o.inbound = append(o.inbound, opts...)
	}
}

// Client sends messages to the service over the relationship of a verity context, and dispatches the
// messages the service delivers to the SDK endpoint.
type Client struct {
	vc       *config.VerityContext
	packer   protocol.Packer
	outbound *dispatcher.OutboundDispatcher
	inbound  *dispatcher.InboundDispatcher
}

// New returns a new messaging client.
func New(ctx provider, vc *config.VerityContext, opts ...Opt) (*Client, error) {
	if vc == nil || vc.Relationship == nil {
		return nil, errMissingContext
	}

	if err := vc.Relationship.EnsureComplete(); err != nil {
		return nil, fmt.Errorf("new messaging client: %w", err)
	}

	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	inboundOpts := append([]dispatcher.InboundOpt{dispatcher.WithInboundMetrics(o.metrics)}, o.inbound...)

	return &Client{
		vc:       vc,
		packer:   ctx.Packer(),
		outbound: dispatcher.NewOutbound(ctx, dispatcher.WithOutboundMetrics(o.metrics)),
		inbound:  dispatcher.NewInbound(ctx.Unpacker(), vc.Relationship, inboundOpts...),
	}, nil
}

// Relationship returns the relationship messages are addressed over.
func (c *Client) Relationship() *relationship.Context {
	return c.vc.Relationship
}

// Packer returns the codec used by Send, for use with protocol builders.
func (c *Client) Packer() protocol.Packer {
	return c.packer
}

// Send packs msg for the client's relationship and posts it to the agency endpoint.
func (c *Client) Send(ctx context.Context, msg message.Msg) ([]byte, error) {
	return c.SendTo(ctx, c.vc.Relationship, msg)
}

// SendTo packs msg for rel instead of the client's relationship.
func (c *Client) SendTo(ctx context.Context, rel *relationship.Context, msg message.Msg) ([]byte, error) {
	resp, err := c.outbound.Send(ctx, msg, rel, c.vc.AgencyURL())
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", msg.Type(), err)
	}

	logger.Debugf("sent message %s", msg.ID())

	return resp, nil
}

// SendPacked posts an envelope produced by a protocol builder.
func (c *Client) SendPacked(ctx context.Context, packed []byte) ([]byte, error) {
	resp, err := c.outbound.SendPacked(ctx, packed, c.vc.AgencyURL())
	if err != nil {
		return nil, fmt.Errorf("send packed: %w", err)
	}

	return resp, nil
}

// AddHandler registers h for messages of the given family name and version.
func (c *Client) AddHandler(family, version string, h dispatcher.Handler) {
	c.inbound.AddHandler(family, version, h)
}

// SetDefaultHandler registers h for messages without a family handler.
func (c *Client) SetDefaultHandler(h dispatcher.Handler) {
	c.inbound.SetDefaultHandler(h)
}

// HandleMessage unpacks an envelope delivered by the service and dispatches it.
func (c *Client) HandleMessage(ctx context.Context, packed []byte) error {
	return c.inbound.HandleMessage(ctx, packed)
}

// InboundHandler adapts the client to an inbound transport.
func (c *Client) InboundHandler() transport.InboundMessageHandler {
	return c.inbound.HandlerFunc()
}

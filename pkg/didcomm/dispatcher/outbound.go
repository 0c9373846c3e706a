/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/metrics"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

// ErrNoTransport is returned when no outbound transport accepts the destination.
var ErrNoTransport = errors.New("no transport found for destination")

// OutboundDispatcher packs messages and delivers them over the first accepting transport.
type OutboundDispatcher struct {
	packer     protocol.Packer
	transports []transport.OutboundTransport
	metrics    *metrics.Metrics
}

// OutboundOpt configures an OutboundDispatcher.
type OutboundOpt func(*OutboundDispatcher)

// WithOutboundMetrics records sends in m.
func WithOutboundMetrics(m *metrics.Metrics) OutboundOpt {
	return func(o *OutboundDispatcher) {
		o.metrics = m
	}
}

// NewOutbound returns a new outbound dispatcher.
func NewOutbound(prov Provider, opts ...OutboundOpt) *OutboundDispatcher {
	o := &OutboundDispatcher{
		packer:     prov.Packer(),
		transports: prov.OutboundTransports(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Send packs msg for rel and delivers it to url, returning the transport's response.
func (o *OutboundDispatcher) Send(ctx context.Context, msg message.Msg, rel *relationship.Context,
	url string) ([]byte, error) {
	start := time.Now()
	family := familyLabel(msg.Type())

	t, err := o.transportFor(url)
	if err != nil {
		o.metrics.Sent(family, metrics.ResultSendError)

		return nil, err
	}

	packed, err := o.packer.PackMessage(ctx, rel, msg)
	if err != nil {
		o.metrics.Sent(family, metrics.ResultPackError)

		return nil, fmt.Errorf("outboundDispatcher.Send: failed to pack msg: %w", err)
	}

	resp, err := t.Send(ctx, packed, url)
	if err != nil {
		o.metrics.Sent(family, metrics.ResultSendError)

		return nil, fmt.Errorf("outboundDispatcher.Send: failed to send msg: %w", err)
	}

	o.metrics.Sent(family, metrics.ResultOK)
	o.metrics.ObserveSend(time.Since(start).Seconds())

	logger.Debugf("sent %s message %s to %s", family, msg.ID(), url)

	return resp, nil
}

// SendPacked delivers an already packed envelope to url.
func (o *OutboundDispatcher) SendPacked(ctx context.Context, packed []byte, url string) ([]byte, error) {
	t, err := o.transportFor(url)
	if err != nil {
		return nil, err
	}

	resp, err := t.Send(ctx, packed, url)
	if err != nil {
		return nil, fmt.Errorf("outboundDispatcher.SendPacked: failed to send msg: %w", err)
	}

	return resp, nil
}

func (o *OutboundDispatcher) transportFor(url string) (transport.OutboundTransport, error) {
	for _, t := range o.transports {
		if t.Accept(url) {
			return t, nil
		}
	}

	return nil, fmt.Errorf("outboundDispatcher: %w: %s", ErrNoTransport, url)
}

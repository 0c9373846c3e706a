/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/metrics"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

const (
	defaultSeenSize = 1024
	defaultSeenTTL  = 10 * time.Minute
)

// ErrNoHandler is returned when no handler is registered for the message family and no default is set.
var ErrNoHandler = errors.New("no handler registered for message family")

// Handler handles one inbound message. msgName is the last segment of the message type.
type Handler func(ctx context.Context, msgName string, msg message.Msg) error

// InboundDispatcher unpacks envelopes from the service and routes them by protocol family and version.
type InboundDispatcher struct {
	unpacker Unpacker
	rel      *relationship.Context
	metrics  *metrics.Metrics
	seen     gcache.Cache

	seenMu   sync.Mutex
	inFlight map[string]chan struct{}

	mu             sync.RWMutex
	handlers       map[string]Handler
	defaultHandler Handler
}

// InboundOpt configures an InboundDispatcher.
type InboundOpt func(*InboundDispatcher)

// WithInboundMetrics records received envelopes in m.
func WithInboundMetrics(m *metrics.Metrics) InboundOpt {
	return func(d *InboundDispatcher) {
		d.metrics = m
	}
}

// WithDuplicateWindow remembers the last size handled message ids for ttl. A size of zero turns duplicate
// suppression off.
func WithDuplicateWindow(size int, ttl time.Duration) InboundOpt {
	return func(d *InboundDispatcher) {
		if size <= 0 {
			d.seen = nil

			return
		}

		d.seen = gcache.New(size).LRU().Expiration(ttl).Build()
	}
}

// NewInbound returns a dispatcher opening envelopes addressed to rel.
func NewInbound(unpacker Unpacker, rel *relationship.Context, opts ...InboundOpt) *InboundDispatcher {
	d := &InboundDispatcher{
		unpacker: unpacker,
		rel:      rel,
		handlers: map[string]Handler{},
		inFlight: map[string]chan struct{}{},
		seen:     gcache.New(defaultSeenSize).LRU().Expiration(defaultSeenTTL).Build(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// AddHandler registers h for messages of the given family name and version, replacing any earlier one.
func (d *InboundDispatcher) AddHandler(family, version string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[family+"/"+version] = h
}

// SetDefaultHandler registers h for messages no family handler accepts.
func (d *InboundDispatcher) SetDefaultHandler(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.defaultHandler = h
}

// HandlerFunc adapts the dispatcher to an inbound transport.
func (d *InboundDispatcher) HandlerFunc() transport.InboundMessageHandler {
	return d.HandleMessage
}

// HandleMessage unpacks packed, then hands the message to the handler for its family. A message whose @id was
// already handled within the duplicate window is dropped without error. Deliveries of an @id that is being
// handled wait for that handling to finish.
func (d *InboundDispatcher) HandleMessage(ctx context.Context, packed []byte) error {
	msg, err := d.unpacker.UnpackMessage(ctx, d.rel, packed)
	if err != nil {
		d.metrics.Received(unknownFamily, metrics.ResultUnpackError)

		return fmt.Errorf("handleMessage: %w", err)
	}

	typ, err := messagetype.Parse(msg.Type())
	if err != nil {
		d.metrics.Received(unknownFamily, metrics.ResultUnpackError)

		return fmt.Errorf("handleMessage: %w", err)
	}

	family := typ.Family.String()
	id := msg.ID()

	claimed, err := d.claim(ctx, id)
	if err != nil {
		return fmt.Errorf("handleMessage: %w", err)
	}

	if !claimed {
		logger.Warnf("dropping duplicate %s message %s", family, id)
		d.metrics.Received(family, metrics.ResultDuplicate)

		return nil
	}

	handled := false

	defer func() { d.release(id, handled) }()

	h := d.handlerFor(family)
	if h == nil {
		logger.Warnf("no handler for %s message %s", typ, id)
		d.metrics.Received(family, metrics.ResultNoHandler)

		return fmt.Errorf("handleMessage: %w: %s", ErrNoHandler, family)
	}

	if err = h(ctx, typ.Name, msg); err != nil {
		d.metrics.Received(family, metrics.ResultHandler)

		return fmt.Errorf("handleMessage: %s: %w", typ, err)
	}

	handled = true

	d.metrics.Received(family, metrics.ResultOK)

	logger.Debugf("handled %s message %s", typ, id)

	return nil
}

func (d *InboundDispatcher) handlerFor(family string) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if h, ok := d.handlers[family]; ok {
		return h
	}

	return d.defaultHandler
}

// claim reserves id for handling. It returns false when id was already handled, and waits while another
// delivery of id is being handled.
func (d *InboundDispatcher) claim(ctx context.Context, id string) (bool, error) {
	if d.seen == nil || id == "" {
		return true, nil
	}

	for {
		d.seenMu.Lock()

		if _, err := d.seen.Get(id); err == nil {
			d.seenMu.Unlock()

			return false, nil
		}

		done, busy := d.inFlight[id]
		if !busy {
			d.inFlight[id] = make(chan struct{})
			d.seenMu.Unlock()

			return true, nil
		}

		d.seenMu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// release ends the handling of id, remembering it when it was handled.
func (d *InboundDispatcher) release(id string, handled bool) {
	if d.seen == nil || id == "" {
		return
	}

	d.seenMu.Lock()
	defer d.seenMu.Unlock()

	if handled {
		if err := d.seen.Set(id, struct{}{}); err != nil {
			logger.Warnf("failed to remember message %s: %v", id, err)
		}
	}

	close(d.inFlight[id])
	delete(d.inFlight, id)
}

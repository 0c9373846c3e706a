/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics holds the prometheus collectors for outbound and inbound messaging.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "verity_sdk"

// Result label values.
const (
	ResultOK          = "ok"
	ResultPackError   = "pack_error"
	ResultSendError   = "send_error"
	ResultUnpackError = "unpack_error"
	ResultNoHandler   = "no_handler"
	ResultHandler     = "handler_error"
	ResultDuplicate   = "duplicate"
)

// Metrics holds the messaging collectors. A nil *Metrics records nothing.
type Metrics struct {
	sent         *prometheus.CounterVec // by family and result
	received     *prometheus.CounterVec // by family and result
	sendDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "messages_total",
			Help:      "Total number of messages packed and sent to the service",
		}, []string{"family", "result"}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inbound",
			Name:      "messages_total",
			Help:      "Total number of envelopes received from the service",
		}, []string{"family", "result"}),
		sendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "send_duration_seconds",
			Help:      "Time spent packing and delivering a message",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.sent, m.received, m.sendDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return m, nil
}

// Sent counts an outbound message.
func (m *Metrics) Sent(family, result string) {
	if m == nil {
		return
	}

	m.sent.WithLabelValues(family, result).Inc()
}

// Received counts an inbound envelope.
func (m *Metrics) Received(family, result string) {
	if m == nil {
		return
	}

	m.received.WithLabelValues(family, result).Inc()
}

// ObserveSend records how long a send took.
func (m *Metrics) ObserveSend(seconds float64) {
	if m == nil {
		return
	}

	m.sendDuration.Observe(seconds)
}

// SentCollector exposes the outbound counter.
func (m *Metrics) SentCollector() *prometheus.CounterVec {
	return m.sent
}

// ReceivedCollector exposes the inbound counter.
func (m *Metrics) ReceivedCollector() *prometheus.CounterVec {
	return m.received
}

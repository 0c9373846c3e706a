/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := New(reg)
	require.NoError(t, err)

	m.Sent("present-proof/0.6", ResultOK)
	m.Sent("present-proof/0.6", ResultOK)
	m.Received("present-proof/0.6", ResultDuplicate)
	m.ObserveSend(0.01)

	require.Equal(t, 2.0, testutil.ToFloat64(m.SentCollector().WithLabelValues("present-proof/0.6", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(
		m.ReceivedCollector().WithLabelValues("present-proof/0.6", ResultDuplicate)))

	_, err = New(reg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "register metrics")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.Sent("f", ResultOK)
		m.Received("f", ResultOK)
		m.ObserveSend(1)
	})
}

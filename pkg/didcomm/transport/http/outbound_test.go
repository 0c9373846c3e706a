/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
)

func noWait() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

type recordingHandler struct {
	mu       sync.Mutex
	bodies   [][]byte
	statuses []int
	calls    int32
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := int(atomic.AddInt32(&h.calls, 1))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	h.mu.Lock()
	h.bodies = append(h.bodies, body)
	h.mu.Unlock()

	if r.Header.Get("Content-Type") != transport.MediaTypeEnvelope {
		w.WriteHeader(http.StatusUnsupportedMediaType)

		return
	}

	status := http.StatusAccepted
	if n <= len(h.statuses) {
		status = h.statuses[n-1]
	}

	w.WriteHeader(status)

	if status == http.StatusAccepted {
		_, _ = w.Write([]byte("ok"))
	}
}

func TestWithOutboundOpts(t *testing.T) {
	clOpts := &outboundCommHTTPOpts{}
	WithOutboundHTTPClient(nil)(clOpts)
	require.Nil(t, clOpts.client)

	WithOutboundTimeout(time.Second)(clOpts)
	require.Equal(t, time.Second, *clOpts.timeout)

	WithOutboundTLSConfig(nil)(clOpts)
	require.NotNil(t, clOpts.client)

	WithMaxRetries(7)(clOpts)
	require.EqualValues(t, 7, clOpts.maxRetries)
}

func TestOutboundTimeout(t *testing.T) {
	t.Run("default client timeout", func(t *testing.T) {
		ot, err := NewOutbound()
		require.NoError(t, err)
		require.Equal(t, defaultTimeout, ot.client.Timeout)
	})

	t.Run("timeout without a client is an error", func(t *testing.T) {
		_, err := NewOutbound(WithOutboundHTTPClient(nil), WithOutboundTimeout(time.Second))
		require.EqualError(t, err, "creation of outbound transport requires an HTTP client")
	})

	t.Run("applies to a copy of the caller's client in any order", func(t *testing.T) {
		own := &http.Client{Timeout: time.Minute}

		for _, opts := range [][]OutboundHTTPOpt{
			{WithOutboundHTTPClient(own), WithOutboundTimeout(time.Second)},
			{WithOutboundTimeout(time.Second), WithOutboundHTTPClient(own)},
		} {
			ot, err := NewOutbound(opts...)
			require.NoError(t, err)
			require.Equal(t, time.Second, ot.client.Timeout)
			require.NotSame(t, own, ot.client)
		}

		require.Equal(t, time.Minute, own.Timeout)
	})

	t.Run("without a timeout the caller's client is used as is", func(t *testing.T) {
		own := &http.Client{Timeout: time.Minute}

		ot, err := NewOutbound(WithOutboundHTTPClient(own))
		require.NoError(t, err)
		require.Same(t, own, ot.client)
	})

	t.Run("slow agent times out", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ot, err := NewOutbound(WithOutboundTimeout(50*time.Millisecond), WithOutboundHTTPClient(srv.Client()),
			WithMaxRetries(0))
		require.NoError(t, err)

		_, err = ot.Send(context.Background(), []byte("envelope"), srv.URL)
		require.Error(t, err)
	})
}

func TestOutboundHTTPTransport(t *testing.T) {
	t.Run("requires a client", func(t *testing.T) {
		_, err := NewOutbound(WithOutboundHTTPClient(nil))
		require.EqualError(t, err, "creation of outbound transport requires an HTTP client")
	})

	t.Run("success", func(t *testing.T) {
		h := &recordingHandler{}
		srv := httptest.NewServer(h)
		defer srv.Close()

		ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()))
		require.NoError(t, err)

		resp, err := ot.Send(context.Background(), []byte("envelope"), srv.URL)
		require.NoError(t, err)
		require.Equal(t, "ok", string(resp))
		require.Equal(t, [][]byte{[]byte("envelope")}, h.bodies)
	})

	t.Run("empty url", func(t *testing.T) {
		ot, err := NewOutbound()
		require.NoError(t, err)

		_, err = ot.Send(context.Background(), []byte("envelope"), "")
		require.EqualError(t, err, "url is mandatory")
	})

	t.Run("resends identical bytes after server errors", func(t *testing.T) {
		h := &recordingHandler{statuses: []int{http.StatusServiceUnavailable, http.StatusBadGateway}}
		srv := httptest.NewServer(h)
		defer srv.Close()

		ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()), WithBackOff(noWait), WithMaxRetries(3))
		require.NoError(t, err)

		resp, err := ot.Send(context.Background(), []byte("envelope"), srv.URL)
		require.NoError(t, err)
		require.Equal(t, "ok", string(resp))
		require.Len(t, h.bodies, 3)

		for _, b := range h.bodies {
			require.Equal(t, "envelope", string(b))
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		h := &recordingHandler{statuses: []int{500, 500, 500, 500}}
		srv := httptest.NewServer(h)
		defer srv.Close()

		ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()), WithBackOff(noWait), WithMaxRetries(2))
		require.NoError(t, err)

		_, err = ot.Send(context.Background(), []byte("envelope"), srv.URL)
		require.Error(t, err)
		require.Contains(t, err.Error(), "received unsuccessful POST HTTP status from agent")
		require.EqualValues(t, 3, atomic.LoadInt32(&h.calls))
	})

	t.Run("client errors are not resent", func(t *testing.T) {
		h := &recordingHandler{statuses: []int{http.StatusBadRequest}}
		srv := httptest.NewServer(h)
		defer srv.Close()

		ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()), WithBackOff(noWait))
		require.NoError(t, err)

		_, err = ot.Send(context.Background(), []byte("envelope"), srv.URL)
		require.Error(t, err)
		require.Contains(t, err.Error(), "400")
		require.EqualValues(t, 1, atomic.LoadInt32(&h.calls))
	})

	t.Run("bad url", func(t *testing.T) {
		ot, err := NewOutbound(WithBackOff(noWait), WithMaxRetries(0), WithOutboundTimeout(time.Second))
		require.NoError(t, err)

		_, err = ot.Send(context.Background(), []byte("envelope"), "http://localhost:0/agency/msg")
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		h := &recordingHandler{}
		srv := httptest.NewServer(h)
		defer srv.Close()

		ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()), WithBackOff(noWait))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = ot.Send(ctx, []byte("envelope"), srv.URL)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("accept", func(t *testing.T) {
		ot, err := NewOutbound()
		require.NoError(t, err)

		require.True(t, ot.Accept("http://example.com"))
		require.True(t, ot.Accept("https://example.com/agency/msg"))
		require.False(t, ot.Accept("ws://example.com"))
		require.False(t, ot.Accept("123:22"))
	})
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInboundHandler(t *testing.T) {
	inHandler, err := NewInboundHandler(nil)
	require.Error(t, err)
	require.Nil(t, inHandler)

	var received []byte

	inHandler, err = NewInboundHandler(func(_ context.Context, packed []byte) error {
		if string(packed) == "bad" {
			return errors.New("cannot unpack")
		}

		received = packed

		return nil
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		body   []byte
		status int
	}{
		{name: "accepted", method: http.MethodPost, body: []byte("envelope"), status: http.StatusAccepted},
		{name: "wrong method", method: http.MethodGet, status: http.StatusMethodNotAllowed},
		{name: "empty payload", method: http.MethodPost, body: []byte{}, status: http.StatusBadRequest},
		{name: "handler failure", method: http.MethodPost, body: []byte("bad"), status: http.StatusInternalServerError},
		{
			name:   "too large",
			method: http.MethodPost,
			body:   []byte(strings.Repeat("x", maxPayloadSize+1)),
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/webhook", bytes.NewReader(tc.body))
			rec := httptest.NewRecorder()

			inHandler.ServeHTTP(rec, req)
			require.Equal(t, tc.status, rec.Code)
		})
	}

	require.Equal(t, "envelope", string(received))
}

func TestInboundOutbound(t *testing.T) {
	got := make(chan []byte, 1)

	inHandler, err := NewInboundHandler(func(_ context.Context, packed []byte) error {
		got <- packed

		return nil
	})
	require.NoError(t, err)

	srv := httptest.NewServer(inHandler)
	defer srv.Close()

	ot, err := NewOutbound(WithOutboundHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = ot.Send(context.Background(), []byte("envelope"), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "envelope", string(<-got))
}

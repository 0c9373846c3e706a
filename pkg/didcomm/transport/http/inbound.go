/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package http

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
)

// maxPayloadSize bounds the size of an accepted envelope.
const maxPayloadSize = 4 << 20

// NewInboundHandler returns a handler that accepts packed envelopes posted by the service and passes them
// to msgHandler.
func NewInboundHandler(msgHandler transport.InboundMessageHandler) (http.Handler, error) {
	if msgHandler == nil {
		logger.Errorf("Error creating a new inbound handler: message handler function is nil")

		return nil, errors.New("failed to create NewInboundHandler")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		processPOSTRequest(w, r, msgHandler)
	}), nil
}

func processPOSTRequest(w http.ResponseWriter, r *http.Request, msgHandler transport.InboundMessageHandler) {
	if r.Method != http.MethodPost {
		http.Error(w, "HTTP Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize+1))
	if err != nil {
		logger.Errorf("Error reading request body: %s - returning Code: %d", err, http.StatusInternalServerError)
		http.Error(w, "Failed to read payload", http.StatusInternalServerError)

		return
	}

	switch {
	case len(body) == 0:
		http.Error(w, "Empty payload", http.StatusBadRequest)

		return
	case len(body) > maxPayloadSize:
		http.Error(w, "Payload too large", http.StatusRequestEntityTooLarge)

		return
	}

	if err = msgHandler(r.Context(), body); err != nil {
		logger.Errorf("incoming msg processing failed: %v", err)
		http.Error(w, "Failed to process payload", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package envelope

import (
	"errors"
	"fmt"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/forward"
)

// Layer identifies one of the two envelope layers.
type Layer int

const (
	// LayerOuter is the anonymous layer sealed for the service.
	LayerOuter Layer = iota + 1
	// LayerInner is the layer sealed for the remote party.
	LayerInner
)

func (l Layer) String() string {
	switch l {
	case LayerOuter:
		return "outer"
	case LayerInner:
		return "inner"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

var (
	// ErrSealFailed is matched by errors returned when a layer can not be sealed.
	ErrSealFailed = errors.New("seal failed")
	// ErrOpenFailed is matched by errors returned when a layer can not be opened.
	ErrOpenFailed = errors.New("open failed")
	// ErrMalformedEnvelope is matched by errors returned when an opened layer has the wrong shape.
	ErrMalformedEnvelope = forward.ErrMalformedEnvelope
)

// LayerError reports the layer a pack or unpack failed at.
type LayerError struct {
	Layer Layer
	// Kind is one of ErrSealFailed, ErrOpenFailed or ErrMalformedEnvelope.
	Kind error
	Err  error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("%s layer: %s: %v", e.Layer, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *LayerError) Unwrap() error {
	return e.Err
}

// Is matches the error kind.
func (e *LayerError) Is(target error) bool {
	return target == e.Kind
}

func layerError(layer Layer, kind, err error) error {
	return &LayerError{Layer: layer, Kind: kind, Err: err}
}

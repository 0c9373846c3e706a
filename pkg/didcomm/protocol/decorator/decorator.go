/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package decorator

import "github.com/google/uuid"

const (
	// ThreadKey is the message field carrying the Thread decorator.
	ThreadKey = "~thread"
	// ForRelationshipKey is the message field naming the relationship DID a domain message acts on.
	ForRelationshipKey = "~for_relationship"
)

// Thread thread data
type Thread struct {
	ID             string         `json:"thid,omitempty"`
	PID            string         `json:"pthid,omitempty"`
	SenderOrder    int            `json:"sender_order,omitempty"`
	ReceivedOrders map[string]int `json:"received_orders,omitempty"`
}

// NewThread returns a Thread with the given id, or a new random one when id is empty.
func NewThread(id string) *Thread {
	if id == "" {
		id = uuid.New().String()
	}

	return &Thread{ID: id}
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package relationship holds the key material that identifies both ends of a pairwise relationship and the
// service that routes messages between them.
package relationship

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteContext is returned when a Context is missing one of its fields.
var ErrIncompleteContext = errors.New("incomplete relationship context")

// Context identifies the parties of a relationship. All fields are base58 verification keys or DIDs.
// A Context is read-only once built; the envelope codec never writes to it.
type Context struct {
	// LocalVerKey is the verification key of this side, the sender of the inner envelope.
	LocalVerKey string
	// RemoteDID is the DID the service forwards the inner envelope to.
	RemoteDID string
	// RemoteVerKey is the recipient key of the inner envelope.
	RemoteVerKey string
	// DomainDID is the DID of the domain (organization) this relationship belongs to.
	DomainDID string
	// ServicePublicVerKey is the public key of the service, the recipient of the outer envelope.
	ServicePublicVerKey string
	// ServiceAgentVerKey is the key of the agent the service runs for the domain.
	ServiceAgentVerKey string
}

// ForDomain returns the Context for messages addressed to the domain itself: they are forwarded to the
// domain DID and sealed for the service agent.
func ForDomain(localVerKey, domainDID, servicePublicVerKey, serviceAgentVerKey string) *Context {
	return &Context{
		LocalVerKey:         localVerKey,
		RemoteDID:           domainDID,
		RemoteVerKey:        serviceAgentVerKey,
		DomainDID:           domainDID,
		ServicePublicVerKey: servicePublicVerKey,
		ServiceAgentVerKey:  serviceAgentVerKey,
	}
}

// ForProvisioning returns the Context used before a domain exists: the public identity of the service stands
// in for both the domain and its agent.
func ForProvisioning(localVerKey, servicePublicDID, servicePublicVerKey string) *Context {
	return &Context{
		LocalVerKey:         localVerKey,
		RemoteDID:           servicePublicDID,
		RemoteVerKey:        servicePublicVerKey,
		DomainDID:           servicePublicDID,
		ServicePublicVerKey: servicePublicVerKey,
		ServiceAgentVerKey:  servicePublicVerKey,
	}
}

// WithPairwise returns a copy of c addressed to a pairwise remote party.
func (c *Context) WithPairwise(remoteDID, remoteVerKey string) *Context {
	cp := *c
	cp.RemoteDID = remoteDID
	cp.RemoteVerKey = remoteVerKey

	return &cp
}

// IncompleteError lists the fields missing from a Context.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteContext, strings.Join(e.Missing, ", "))
}

// Is matches ErrIncompleteContext.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteContext
}

// EnsureComplete returns an *IncompleteError when any field of c is empty.
func (c *Context) EnsureComplete() error {
	if c == nil {
		return &IncompleteError{Missing: []string{"context"}}
	}

	var missing []string

	for _, f := range []struct {
		name  string
		value string
	}{
		{"localVerKey", c.LocalVerKey},
		{"remoteDID", c.RemoteDID},
		{"remoteVerKey", c.RemoteVerKey},
		{"domainDID", c.DomainDID},
		{"servicePublicVerKey", c.ServicePublicVerKey},
		{"serviceAgentVerKey", c.ServiceAgentVerKey},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}

	return nil
}

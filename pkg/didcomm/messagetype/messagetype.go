/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package messagetype builds and parses message type identifiers of the form
// `<qualifier>;spec/<family>/<version>/<name>`.
package messagetype

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// EvernymQualifier qualifies the protocol families defined by Evernym.
	EvernymQualifier = "did:sov:123456789abcdefghi1234"
	// CommunityQualifier qualifies the community (Aries RFC) protocol families.
	CommunityQualifier = "did:sov:BzCbsNYhMrjHiqZDTUASHg"

	// ProblemReportName is the message name of a family's problem report.
	ProblemReportName = "problem-report"
	// StatusName is the message name of a family's status message.
	StatusName = "status"

	separator = ";spec/"
)

// ErrInvalidAddressing is returned when a message type identifier can not be built or parsed.
var ErrInvalidAddressing = errors.New("invalid message type addressing")

// Build returns qualifier + ";spec/" + family + "/" + version + "/" + name.
func Build(qualifier, family, version, name string) (string, error) {
	switch {
	case family == "":
		return "", fmt.Errorf("build message type: empty family: %w", ErrInvalidAddressing)
	case version == "":
		return "", fmt.Errorf("build message type: empty version for family %s: %w", family, ErrInvalidAddressing)
	case name == "":
		return "", fmt.Errorf("build message type: empty name for %s/%s: %w", family, version, ErrInvalidAddressing)
	}

	return qualifier + separator + family + "/" + version + "/" + name, nil
}

// MustBuild is like Build but panics on invalid addressing. It is meant for package level constants.
func MustBuild(qualifier, family, version, name string) string {
	t, err := Build(qualifier, family, version, name)
	if err != nil {
		panic(err)
	}

	return t
}

// BuildProblemReport returns the problem report message type of a family.
func BuildProblemReport(qualifier, family, version string) (string, error) {
	return Build(qualifier, family, version, ProblemReportName)
}

// BuildStatus returns the status message type of a family.
func BuildStatus(qualifier, family, version string) (string, error) {
	return Build(qualifier, family, version, StatusName)
}

// Type is a parsed message type identifier.
type Type struct {
	Family Family
	Name   string
}

// Parse splits a message type identifier into its parts.
func Parse(typ string) (*Type, error) {
	i := strings.Index(typ, separator)
	if i < 0 {
		return nil, fmt.Errorf("parse message type %q: missing %q: %w", typ, separator, ErrInvalidAddressing)
	}

	parts := strings.Split(typ[i+len(separator):], "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" { // nolint:gomnd
		return nil, fmt.Errorf("parse message type %q: want family/version/name: %w", typ, ErrInvalidAddressing)
	}

	return &Type{
		Family: Family{Qualifier: typ[:i], Name: parts[0], Version: parts[1]},
		Name:   parts[2],
	}, nil
}

// String returns the message type identifier.
func (t *Type) String() string {
	return t.Family.Qualifier + separator + t.Family.Name + "/" + t.Family.Version + "/" + t.Name
}

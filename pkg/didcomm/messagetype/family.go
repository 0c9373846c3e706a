/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package messagetype

import (
	"errors"
	"fmt"
)

// Family describes a versioned protocol family and the qualifier it is published under.
type Family struct {
	Qualifier string
	Name      string
	Version   string
}

// Type returns the message type of name within the family.
func (f Family) Type(name string) (string, error) {
	return Build(f.Qualifier, f.Name, f.Version, name)
}

// MustType is like Type but panics on invalid addressing.
func (f Family) MustType(name string) string {
	return MustBuild(f.Qualifier, f.Name, f.Version, name)
}

// ProblemReportType returns the problem report message type of the family.
func (f Family) ProblemReportType() (string, error) {
	return BuildProblemReport(f.Qualifier, f.Name, f.Version)
}

// StatusType returns the status message type of the family.
func (f Family) StatusType() (string, error) {
	return BuildStatus(f.Qualifier, f.Name, f.Version)
}

// String returns family/version.
func (f Family) String() string {
	return f.Name + "/" + f.Version
}

// Known protocol family names.
const (
	Routing           = "routing"
	AgentProvisioning = "agent-provisioning"
	Connections       = "connections"
	Relationship      = "relationship"
	PresentProof      = "present-proof"
	WriteSchema       = "write-schema"
	WriteCredDef      = "write-cred-def"
	IssueCredential   = "issue-credential"
	IssuerSetup       = "issuer-setup"
	Configs           = "configs"
	Enroll            = "enroll"
	Common            = "common"
)

// ErrUnknownFamily is returned by Lookup for a family version with no registered qualifier.
var ErrUnknownFamily = errors.New("unknown protocol family")

type familyKey struct {
	name    string
	version string
}

// registry maps each known (family, version) to the qualifier it is published under.
var registry = map[familyKey]string{ // nolint:gochecknoglobals
	{Routing, "1.0"}:           EvernymQualifier,
	{AgentProvisioning, "0.7"}: EvernymQualifier,
	{Connections, "1.0"}:       CommunityQualifier,
	{Relationship, "1.0"}:      EvernymQualifier,
	{PresentProof, "0.6"}:      EvernymQualifier,
	{WriteSchema, "0.6"}:       EvernymQualifier,
	{WriteCredDef, "0.6"}:      EvernymQualifier,
	{IssueCredential, "0.6"}:   EvernymQualifier,
	{IssuerSetup, "0.6"}:       EvernymQualifier,
	{Configs, "0.6"}:           EvernymQualifier,
	{Enroll, "0.1"}:            EvernymQualifier,
	{Common, "0.1"}:            EvernymQualifier,
}

// Lookup returns the registered Family for a family name and version.
func Lookup(name, version string) (Family, error) {
	q, ok := registry[familyKey{name: name, version: version}]
	if !ok {
		return Family{}, fmt.Errorf("lookup %s/%s: %w", name, version, ErrUnknownFamily)
	}

	return Family{Qualifier: q, Name: name, Version: version}, nil
}

// MustLookup is like Lookup but panics for an unregistered family.
func MustLookup(name, version string) Family {
	f, err := Lookup(name, version)
	if err != nil {
		panic(err)
	}

	return f
}

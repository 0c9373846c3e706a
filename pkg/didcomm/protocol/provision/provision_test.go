/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package provision

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

type capturingPacker struct {
	rel *relationship.Context
}

func (p *capturingPacker) PackMessage(_ context.Context, rel *relationship.Context, msg message.Msg) ([]byte, error) {
	p.rel = rel

	return json.Marshal(msg)
}

func TestProvisionMsg(t *testing.T) {
	msg, err := New("token-1").ProvisionMsg("sdkKey")
	require.NoError(t, err)
	require.Equal(t, "did:sov:123456789abcdefghi1234;spec/agent-provisioning/0.7/create-edge-agent", msg.Type())
	require.Equal(t, "sdkKey", msg["requesterVk"])
	require.Equal(t, "token-1", msg["provisionToken"])

	msg, err = New("").ProvisionMsg("sdkKey")
	require.NoError(t, err)
	require.NotContains(t, msg, "provisionToken")

	_, err = New("").ProvisionMsg("")
	require.Error(t, err)
}

func TestProvisionMsgPacked(t *testing.T) {
	packer := &capturingPacker{}

	_, err := New("").ProvisionMsgPacked(context.Background(), packer, "sdkKey", "publicDID", "publicKey")
	require.NoError(t, err)
	require.NoError(t, packer.rel.EnsureComplete())
	require.Equal(t, "publicDID", packer.rel.RemoteDID)
	require.Equal(t, "publicKey", packer.rel.RemoteVerKey)

	_, err = New("").ProvisionMsgPacked(context.Background(), packer, "", "publicDID", "publicKey")
	require.Error(t, err)
}

func TestAgentCreated(t *testing.T) {
	msg := message.New(Family.MustType(AgentCreatedMsgName))
	msg["selfDID"] = "domainDID"
	msg["agentVerKey"] = "agentKey"

	created, err := DecodeAgentCreated(msg)
	require.NoError(t, err)
	require.Equal(t, "domainDID", created.SelfDID)

	rel := created.DomainContext("sdkKey", "publicKey")
	require.NoError(t, rel.EnsureComplete())
	require.Equal(t, "domainDID", rel.RemoteDID)
	require.Equal(t, "agentKey", rel.RemoteVerKey)
	require.Equal(t, "publicKey", rel.ServicePublicVerKey)

	_, err = DecodeAgentCreated(message.New(Family.MustType(CreateEdgeAgentMsgName)))
	require.Error(t, err)
}

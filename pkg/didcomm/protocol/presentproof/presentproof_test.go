/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentproof

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

type recordingPacker struct {
	packed []message.Msg
	err    error
}

func (p *recordingPacker) PackMessage(_ context.Context, _ *relationship.Context, msg message.Msg) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.packed = append(p.packed, msg)

	return json.Marshal(msg)
}

func TestRequestMsg(t *testing.T) {
	p := New("did:sov:rel1", "thread-1")

	msg, err := p.RequestMsg(&Request{
		Name:       "proof of age",
		ProofAttrs: []Attribute{{Name: "age"}},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var fields map[string]interface{}

	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Equal(t, "did:sov:123456789abcdefghi1234;spec/present-proof/0.6/request", fields["@type"])
	require.NotEmpty(t, fields["@id"])
	require.Equal(t, "did:sov:rel1", fields["~for_relationship"])
	require.Equal(t, map[string]interface{}{"thid": "thread-1"}, fields["~thread"])
	require.Equal(t, "proof of age", fields["name"])
	require.Equal(t, []interface{}{map[string]interface{}{"name": "age"}}, fields["proofAttrs"])
	require.Equal(t, []interface{}{}, fields["proofPredicates"])
	require.Equal(t, map[string]interface{}{}, fields["revocationInterval"])

	t.Run("name is required", func(t *testing.T) {
		_, err := p.RequestMsg(&Request{})
		require.Error(t, err)

		_, err = p.RequestMsg(nil)
		require.Error(t, err)
	})
}

func TestStatusMsg(t *testing.T) {
	p := New("did:sov:rel1", "")
	require.NotEmpty(t, p.ThreadID)

	msg, err := p.StatusMsg()
	require.NoError(t, err)
	require.Equal(t, "did:sov:123456789abcdefghi1234;spec/present-proof/0.6/get-status", msg.Type())
	require.Equal(t, "did:sov:rel1", msg.ForRelationship())

	thid, err := msg.ThreadID()
	require.NoError(t, err)
	require.Equal(t, p.ThreadID, thid)

	status, err := Family.StatusType()
	require.NoError(t, err)
	require.Equal(t, "did:sov:123456789abcdefghi1234;spec/present-proof/0.6/status", status)
}

func TestPacked(t *testing.T) {
	p := New("did:sov:rel1", "thread-1")
	packer := &recordingPacker{}

	_, err := p.RequestMsgPacked(context.Background(), packer, &relationship.Context{}, &Request{Name: "n"})
	require.NoError(t, err)

	_, err = p.StatusMsgPacked(context.Background(), packer, &relationship.Context{})
	require.NoError(t, err)

	require.Len(t, packer.packed, 2)
	require.Equal(t, Family.MustType(RequestMsgName), packer.packed[0].Type())
	require.Equal(t, Family.MustType(GetStatusMsgName), packer.packed[1].Type())

	t.Run("packer error", func(t *testing.T) {
		_, err := p.StatusMsgPacked(context.Background(), &recordingPacker{err: errors.New("pack error")},
			&relationship.Context{})
		require.EqualError(t, err, "present-proof/0.6: pack error")

		_, err = p.RequestMsgPacked(context.Background(), packer, &relationship.Context{}, &Request{})
		require.Error(t, err)
	})
}

func TestDecodeProofResult(t *testing.T) {
	msg, err := message.Parse([]byte(`{
		"@type": "did:sov:123456789abcdefghi1234;spec/present-proof/0.6/proof-result",
		"@id": "abc",
		"~thread": {"thid": "thread-1"},
		"requested_presentation": {"revealed_attrs": {"age": {"value": "42"}}}
	}`))
	require.NoError(t, err)

	result, err := DecodeProofResult(msg)
	require.NoError(t, err)
	require.Equal(t, "thread-1", result.Thread.ID)
	require.Contains(t, result.RequestedPresentation, "revealed_attrs")

	_, err = DecodeProofResult(message.New(Family.MustType(RequestMsgName)))
	require.True(t, errors.Is(err, protocol.ErrUnexpectedType))

	_, err = DecodeProofResult(message.New("did:sov:123456789abcdefghi1234;spec/write-schema/0.6/proof-result"))
	require.True(t, errors.Is(err, protocol.ErrUnexpectedType))
	require.Contains(t, err.Error(), "is not a present-proof/0.6 message")
}

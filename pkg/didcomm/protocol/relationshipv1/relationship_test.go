/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package relationshipv1

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/relationship"
)

type jsonPacker struct{}

func (jsonPacker) PackMessage(_ context.Context, _ *relationship.Context, msg message.Msg) ([]byte, error) {
	return json.Marshal(msg)
}

func TestCreateMsg(t *testing.T) {
	t.Run("with logo", func(t *testing.T) {
		msg, err := New(" Faber College ", "https://example.com/logo.png").CreateMsg()
		require.NoError(t, err)
		require.Equal(t, "did:sov:123456789abcdefghi1234;spec/relationship/1.0/create", msg.Type())
		require.Equal(t, "Faber College", msg["label"])
		require.Equal(t, "https://example.com/logo.png", msg["logoUrl"])
		require.Contains(t, msg, "~thread")
	})

	t.Run("without logo", func(t *testing.T) {
		packed, err := New("", "").CreateMsgPacked(context.Background(), jsonPacker{}, &relationship.Context{})
		require.NoError(t, err)

		msg, err := message.Parse(packed)
		require.NoError(t, err)
		require.Equal(t, "", msg["label"])
		require.NotContains(t, msg, "logoUrl")
	})

	t.Run("only the creator can create", func(t *testing.T) {
		r := Existing("did:sov:rel", "thread-1")

		_, err := r.CreateMsg()
		require.True(t, errors.Is(err, ErrNotCreator))

		_, err = r.CreateMsgPacked(context.Background(), jsonPacker{}, &relationship.Context{})
		require.True(t, errors.Is(err, ErrNotCreator))
	})
}

func TestConnectionInvitationMsg(t *testing.T) {
	msg, err := Existing("did:sov:rel", "thread-1").ConnectionInvitationMsg()
	require.NoError(t, err)
	require.Equal(t, "did:sov:123456789abcdefghi1234;spec/relationship/1.0/connection-invitation", msg.Type())
	require.Equal(t, "did:sov:rel", msg.ForRelationship())

	thid, err := msg.ThreadID()
	require.NoError(t, err)
	require.Equal(t, "thread-1", thid)

	msg, err = New("label", "").ConnectionInvitationMsg()
	require.NoError(t, err)
	require.NotContains(t, msg, "~for_relationship")

	_, err = Existing("did:sov:rel", "").ConnectionInvitationMsgPacked(context.Background(), jsonPacker{},
		&relationship.Context{})
	require.NoError(t, err)
}

func TestDecode(t *testing.T) {
	created := message.New(Family.MustType(CreatedMsgName))
	created["did"] = "did:sov:rel"
	created["verKey"] = "verkey"

	c, err := DecodeCreated(created)
	require.NoError(t, err)
	require.Equal(t, "did:sov:rel", c.DID)
	require.Equal(t, "verkey", c.VerKey)

	invitation := message.New(Family.MustType(InvitationMsgName))
	invitation["inviteURL"] = "https://example.com?c_i=abc"

	i, err := DecodeInvitation(invitation)
	require.NoError(t, err)
	require.Equal(t, "https://example.com?c_i=abc", i.InviteURL)

	_, err = DecodeCreated(invitation)
	require.Error(t, err)

	_, err = DecodeInvitation(created)
	require.Error(t, err)
}

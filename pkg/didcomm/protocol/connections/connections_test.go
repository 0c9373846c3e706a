/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connections

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

func TestMessages(t *testing.T) {
	c := New("did:sov:rel", "thread-1")

	t.Run("status", func(t *testing.T) {
		msg, err := c.StatusMsg()
		require.NoError(t, err)
		require.Equal(t, "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0/status", msg.Type())
		require.Equal(t, "did:sov:rel", msg.ForRelationship())

		_, err = c.StatusMsgPacked(context.Background(), jsonPacker{}, &relationship.Context{})
		require.NoError(t, err)
	})

	t.Run("accept", func(t *testing.T) {
		c.Label = "Alice"
		c.InviteURL = "https://example.com?c_i=abc"

		packed, err := c.AcceptMsgPacked(context.Background(), jsonPacker{}, &relationship.Context{})
		require.NoError(t, err)

		msg, err := message.Parse(packed)
		require.NoError(t, err)
		require.Equal(t, "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0/accept", msg.Type())
		require.Equal(t, "Alice", msg["label"])
		require.Equal(t, "https://example.com?c_i=abc", msg["inviteUrl"])

		thid, err := msg.ThreadID()
		require.NoError(t, err)
		require.Equal(t, "thread-1", thid)
	})

	t.Run("accept without optional fields", func(t *testing.T) {
		msg, err := New("did:sov:rel", "").AcceptMsg()
		require.NoError(t, err)
		require.NotContains(t, msg, "label")
		require.NotContains(t, msg, "inviteUrl")
	})
}

func TestTruncateInviteDetails(t *testing.T) {
	raw := []byte(`{
		"connReqId": "req1",
		"statusCode": "MS-101",
		"statusMsg": "message sent",
		"targetName": "Alice",
		"version": "2.0",
		"threadId": "thread-1",
		"senderDetail": {
			"publicDID": "did:sov:pub",
			"name": "Faber",
			"DID": "did:sov:faber",
			"logoUrl": "https://example.com/logo.png",
			"verKey": "faberKey",
			"agentKeyDlgProof": {"agentDID": "agentDID", "agentDelegatedKey": "agentKey", "signature": "sig"}
		},
		"senderAgencyDetail": {"DID": "agencyDID", "endpoint": "https://agency.example.com", "verKey": "agencyKey"}
	}`)

	abbreviated, err := TruncateInviteDetails(raw)
	require.NoError(t, err)

	out, err := json.Marshal(abbreviated)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "req1",
		"sc": "MS-101",
		"sm": "message sent",
		"t": "Alice",
		"version": "2.0",
		"threadId": "thread-1",
		"s": {
			"publicDID": "did:sov:pub",
			"n": "Faber",
			"d": "did:sov:faber",
			"l": "https://example.com/logo.png",
			"v": "faberKey",
			"dp": {"d": "agentDID", "k": "agentKey", "s": "sig"}
		},
		"sa": {"d": "agencyDID", "e": "https://agency.example.com", "v": "agencyKey"}
	}`, string(out))

	t.Run("optional fields are omitted", func(t *testing.T) {
		details := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(raw, &details))

		delete(details, "threadId")
		delete(details["senderDetail"].(map[string]interface{}), "publicDID")

		withoutOptional, err := json.Marshal(details)
		require.NoError(t, err)

		abbreviated, err := TruncateInviteDetails(withoutOptional)
		require.NoError(t, err)

		out, err := json.Marshal(abbreviated)
		require.NoError(t, err)
		require.NotContains(t, string(out), "threadId")
		require.NotContains(t, string(out), "publicDID")
	})

	t.Run("required fields must be present", func(t *testing.T) {
		for _, path := range [][]string{
			{"connReqId"},
			{"statusCode"},
			{"version"},
			{"senderDetail"},
			{"senderDetail", "verKey"},
			{"senderDetail", "agentKeyDlgProof"},
			{"senderDetail", "agentKeyDlgProof", "signature"},
			{"senderAgencyDetail", "endpoint"},
		} {
			details := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(raw, &details))

			parent := details
			for _, name := range path[:len(path)-1] {
				parent = parent[name].(map[string]interface{})
			}

			delete(parent, path[len(path)-1])

			missing, err := json.Marshal(details)
			require.NoError(t, err)

			_, err = TruncateInviteDetails(missing)
			require.True(t, errors.Is(err, ErrMissingInviteField), "%v: %v", path, err)
		}
	})

	t.Run("null is not a value", func(t *testing.T) {
		details := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(raw, &details))

		details["statusMsg"] = nil

		withNull, err := json.Marshal(details)
		require.NoError(t, err)

		_, err = TruncateInviteDetails(withNull)
		require.True(t, errors.Is(err, ErrMissingInviteField))
		require.Contains(t, err.Error(), "statusMsg")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := TruncateInviteDetails([]byte(`{`))
		require.Error(t, err)
	})
}

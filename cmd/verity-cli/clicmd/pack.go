/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clicmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/client/messaging"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
)

// PackCmd returns the command sealing a message for the verity context.
func PackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a message",
		Long:  `Seal a JSON message in the two layer envelope addressed by the verity context`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc, p, err := loadContext(cmd)
			if err != nil {
				return err
			}

			msg, err := readMessage(cmd)
			if err != nil {
				return err
			}

			packed, err := p.Codec().PackMessage(cmd.Context(), vc.Relationship, msg)
			if err != nil {
				return err
			}

			return writeOutput(cmd, packed)
		},
	}

	addConfigFlags(cmd)
	addIOFlags(cmd)

	return cmd
}

// UnpackCmd returns the command opening an envelope delivered to the SDK.
func UnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "Unpack an envelope",
		Long:  `Open both layers of an envelope with the keys of the verity context and print the message`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc, p, err := loadContext(cmd)
			if err != nil {
				return err
			}

			packed, err := readInput(cmd)
			if err != nil {
				return err
			}

			msg, err := p.Codec().UnpackMessage(cmd.Context(), vc.Relationship, packed)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(msg, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal message: %w", err)
			}

			return writeOutput(cmd, append(out, '\n'))
		},
	}

	addConfigFlags(cmd)
	addIOFlags(cmd)

	return cmd
}

// SendCmd returns the command packing a message and posting it to the service.
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Long:  `Pack a JSON message for the verity context and post it to the agency endpoint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc, p, err := loadContext(cmd)
			if err != nil {
				return err
			}

			msg, err := readMessage(cmd)
			if err != nil {
				return err
			}

			client, err := messaging.New(p, vc)
			if err != nil {
				return err
			}

			resp, err := client.Send(cmd.Context(), msg)
			if err != nil {
				return err
			}

			logger.Infof("sent message %s to %s", msg.ID(), vc.AgencyURL())

			return writeOutput(cmd, resp)
		},
	}

	addConfigFlags(cmd)
	addIOFlags(cmd)

	return cmd
}

func readMessage(cmd *cobra.Command) (message.Msg, error) {
	raw, err := readInput(cmd)
	if err != nil {
		return nil, err
	}

	return message.Parse(trimInput(raw))
}

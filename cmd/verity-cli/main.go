/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is verity-cli, a command line tool that builds message types, packs and unpacks envelopes for
// a verity context, and listens for messages the service delivers to the SDK endpoint.
package main

import (
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-verity-sdk-go/cmd/verity-cli/clicmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use: "verity-cli",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("verity-sdk/cli")

	rootCmd.AddCommand(clicmd.MsgTypeCmd(), clicmd.PackCmd(), clicmd.UnpackCmd(), clicmd.SendCmd(),
		clicmd.ListenCmd(&clicmd.HTTPServer{}))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run verity-cli: %s", err)
	}
}

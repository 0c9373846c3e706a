/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clicmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/messagetype"
)

const (
	familyFlagName  = "family"
	familyFlagUsage = "Message family name, e.g. present-proof."

	versionFlagName  = "version"
	versionFlagUsage = "Message family version, e.g. 0.6."

	nameFlagName  = "name"
	nameFlagUsage = "Message name. Use --problem-report or --status for the derived names."

	qualifierFlagName  = "qualifier"
	qualifierFlagUsage = "Qualifier: evernym or community. Defaults to the qualifier registered for the family."

	problemReportFlagName  = "problem-report"
	problemReportFlagUsage = "Build the problem-report type of the family."

	statusFlagName  = "status"
	statusFlagUsage = "Build the status type of the family."
)

// nolint:gochecknoglobals
var qualifiers = map[string]string{
	"evernym":   messagetype.EvernymQualifier,
	"community": messagetype.CommunityQualifier,
}

// MsgTypeCmd returns the command printing a message type string.
func MsgTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msgtype",
		Short: "Print a message type",
		Long:  `Print the qualified message type for a family, version and message name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := msgTypeFromFlags(cmd)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), typ)

			return err
		},
	}

	cmd.Flags().StringP(familyFlagName, "f", "", familyFlagUsage)
	cmd.Flags().StringP(versionFlagName, "v", "", versionFlagUsage)
	cmd.Flags().StringP(nameFlagName, "n", "", nameFlagUsage)
	cmd.Flags().StringP(qualifierFlagName, "q", "", qualifierFlagUsage)
	cmd.Flags().Bool(problemReportFlagName, false, problemReportFlagUsage)
	cmd.Flags().Bool(statusFlagName, false, statusFlagUsage)

	return cmd
}

func msgTypeFromFlags(cmd *cobra.Command) (string, error) {
	flags := cmd.Flags()

	familyName, _ := flags.GetString(familyFlagName)
	version, _ := flags.GetString(versionFlagName)
	name, _ := flags.GetString(nameFlagName)
	qualifier, _ := flags.GetString(qualifierFlagName)
	problem, _ := flags.GetBool(problemReportFlagName)
	status, _ := flags.GetBool(statusFlagName)

	if problem && status {
		return "", errors.New("--problem-report and --status are mutually exclusive")
	}

	switch {
	case problem:
		name = messagetype.ProblemReportName
	case status:
		name = messagetype.StatusName
	}

	family, err := messagetype.Lookup(familyName, version)

	switch {
	case err == nil:
	case errors.Is(err, messagetype.ErrUnknownFamily) && qualifier != "":
		family = messagetype.Family{Name: familyName, Version: version}
	default:
		return "", err
	}

	if qualifier != "" {
		q, ok := qualifiers[qualifier]
		if !ok {
			return "", fmt.Errorf("unknown qualifier %q", qualifier)
		}

		family.Qualifier = q
	}

	return family.Type(name)
}

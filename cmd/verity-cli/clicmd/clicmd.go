/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package clicmd holds the verity-cli cobra commands.
package clicmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/config"
	verityctx "github.com/hyperledger/aries-verity-sdk-go/pkg/framework/context"
)

var logger = log.New("verity-sdk/cli")

const (
	configFlagName      = "config"
	configEnvKey        = "VERITY_CLI_CONFIG"
	configFlagShorthand = "c"
	configFlagUsage     = "Path of the verity context file (json or yaml)." +
		" Alternatively, this can be set with the following environment variable: " + configEnvKey

	inFlagName      = "in"
	inFlagShorthand = "i"
	inFlagUsage     = "Input file. Reads standard input if not set."

	outFlagName      = "out"
	outFlagShorthand = "o"
	outFlagUsage     = "Output file. Writes standard output if not set."

	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "VERITY_CLI_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(configFlagName, configFlagShorthand, "", configFlagUsage)
	cmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
}

func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(inFlagName, inFlagShorthand, "", inFlagUsage)
	cmd.Flags().StringP(outFlagName, outFlagShorthand, "", outFlagUsage)
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Infof("logger level set to %s", logLevel)
	}

	return nil
}

// loadContext applies the log level and reads the verity context named by the config flag.
func loadContext(cmd *cobra.Command) (*config.VerityContext, *verityctx.Provider, error) {
	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return nil, nil, err
	}

	if err = setLogLevel(logLevel); err != nil {
		return nil, nil, err
	}

	configFile, err := getUserSetVar(cmd, configFlagName, configEnvKey, false)
	if err != nil {
		return nil, nil, err
	}

	vc, err := config.LoadVerityContext(config.FromFile(filepath.Clean(configFile)))
	if err != nil {
		return nil, nil, err
	}

	p, err := verityctx.FromVerityContext(vc)
	if err != nil {
		return nil, nil, err
	}

	return vc, p, nil
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	name, err := cmd.Flags().GetString(inFlagName)
	if err != nil {
		return nil, fmt.Errorf(inFlagName+" flag not found: %s", err)
	}

	if name == "" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(filepath.Clean(name))
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	name, err := cmd.Flags().GetString(outFlagName)
	if err != nil {
		return fmt.Errorf(outFlagName+" flag not found: %s", err)
	}

	if name == "" {
		_, err = cmd.OutOrStdout().Write(data)

		return err
	}

	return os.WriteFile(filepath.Clean(name), data, 0o600) //nolint:gomnd
}

func trimInput(raw []byte) []byte {
	return []byte(strings.TrimSpace(string(raw)))
}

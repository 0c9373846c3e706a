/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clicmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/client/messaging"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/config"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/message"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/protocol/updateendpoint"
	arieshttp "github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport/http"
	verityctx "github.com/hyperledger/aries-verity-sdk-go/pkg/framework/context"
	"github.com/hyperledger/aries-verity-sdk-go/pkg/metrics"
)

const (
	hostFlagName      = "host"
	hostEnvKey        = "VERITY_CLI_HOST"
	hostFlagShorthand = "a"
	hostFlagUsage     = "Host Name:Port to listen on." +
		" Alternatively, this can be set with the following environment variable: " + hostEnvKey

	pathFlagName  = "path"
	pathFlagUsage = "Path the service posts messages to."
	defaultPath   = "/webhook"

	registerFlagName  = "register-endpoint"
	registerFlagUsage = "Register the endpointUrl of the verity context with the service before listening."

	metricsPath = "/metrics"
)

var errMissingHost = errors.New("host not provided")

type server interface {
	ListenAndServe(host string, router http.Handler) error
}

// HTTPServer represents an actual server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler) error {
	return http.ListenAndServe(host, router) //nolint:gosec
}

// ListenCmd returns the command serving the SDK endpoint: every message the service posts is unpacked and
// printed as JSON.
func ListenCmd(srv server) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for messages",
		Long:  `Serve the SDK endpoint and print the messages the service delivers to it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := getUserSetVar(cmd, hostFlagName, hostEnvKey, false)
			if err != nil {
				return err
			}

			if host == "" {
				return errMissingHost
			}

			path, _ := cmd.Flags().GetString(pathFlagName)
			register, _ := cmd.Flags().GetBool(registerFlagName)

			vc, p, err := loadContext(cmd)
			if err != nil {
				return err
			}

			router, client, err := newRouter(cmd.OutOrStdout(), p, vc, path)
			if err != nil {
				return err
			}

			if register {
				if err = registerEndpoint(cmd.Context(), client, vc.EndpointURL); err != nil {
					return err
				}
			}

			logger.Infof("Starting verity-cli listener on host [%s]", host)

			handler := cors.New(
				cors.Options{
					AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead},
					AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
				},
			).Handler(router)

			if err = srv.ListenAndServe(host, handler); err != nil {
				return fmt.Errorf("failed to start verity-cli listener on [%s], cause:  %w", host, err)
			}

			return nil
		},
	}

	addConfigFlags(cmd)
	cmd.Flags().StringP(hostFlagName, hostFlagShorthand, "", hostFlagUsage)
	cmd.Flags().String(pathFlagName, defaultPath, pathFlagUsage)
	cmd.Flags().Bool(registerFlagName, false, registerFlagUsage)

	return cmd
}

func newRouter(out io.Writer, p *verityctx.Provider, vc *config.VerityContext,
	path string) (*mux.Router, *messaging.Client, error) {
	reg := prometheus.NewRegistry()

	m, err := metrics.New(reg)
	if err != nil {
		return nil, nil, err
	}

	client, err := messaging.New(p, vc, messaging.WithMetrics(m))
	if err != nil {
		return nil, nil, err
	}

	client.SetDefaultHandler(printer(out))

	inbound, err := arieshttp.NewInboundHandler(client.InboundHandler())
	if err != nil {
		return nil, nil, err
	}

	router := mux.NewRouter()
	router.Handle(path, inbound).Methods(http.MethodPost)
	router.Handle(metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router, client, nil
}

func registerEndpoint(ctx context.Context, client *messaging.Client, endpointURL string) error {
	packed, err := updateendpoint.New(endpointURL).UpdateMsgPacked(ctx, client.Packer(), client.Relationship())
	if err != nil {
		return err
	}

	if _, err = client.SendPacked(ctx, packed); err != nil {
		return fmt.Errorf("register endpoint: %w", err)
	}

	logger.Infof("registered endpoint %s", endpointURL)

	return nil
}

// printer writes each message as one line of JSON.
func printer(w io.Writer) func(ctx context.Context, msgName string, msg message.Msg) error {
	var mu sync.Mutex

	return func(_ context.Context, msgName string, msg message.Msg) error {
		out, err := json.Marshal(msg)
		if err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()

		logger.Debugf("received %s message %s", msgName, msg.ID())

		_, err = fmt.Fprintln(w, string(out))

		return err
	}
}

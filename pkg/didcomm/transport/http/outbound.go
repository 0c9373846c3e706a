/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"

	"github.com/hyperledger/aries-verity-sdk-go/pkg/didcomm/transport"
)

var logger = log.New("verity-sdk/transport/http")

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

type outboundCommHTTPOpts struct {
	client     *http.Client
	timeout    *time.Duration
	maxRetries uint64
	backOff    func() backoff.BackOff
}

// OutboundHTTPOpt is an outbound HTTP transport option.
type OutboundHTTPOpt func(opts *outboundCommHTTPOpts)

// WithOutboundHTTPClient sets the http.Client used to post envelopes.
func WithOutboundHTTPClient(client *http.Client) OutboundHTTPOpt {
	return func(opts *outboundCommHTTPOpts) {
		opts.client = client
	}
}

// WithOutboundTimeout sets the timeout of each post. It applies to a copy of the configured client, whatever
// the option order.
func WithOutboundTimeout(timeout time.Duration) OutboundHTTPOpt {
	return func(opts *outboundCommHTTPOpts) {
		opts.timeout = &timeout
	}
}

// WithOutboundTLSConfig creates the client from a tls.Config.
func WithOutboundTLSConfig(tlsConfig *tls.Config) OutboundHTTPOpt {
	return func(opts *outboundCommHTTPOpts) {
		opts.client = &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
		}
	}
}

// WithMaxRetries sets how many times a failed post is resent. Zero disables resending.
func WithMaxRetries(n uint64) OutboundHTTPOpt {
	return func(opts *outboundCommHTTPOpts) {
		opts.maxRetries = n
	}
}

// WithBackOff sets the policy between resends.
func WithBackOff(newBackOff func() backoff.BackOff) OutboundHTTPOpt {
	return func(opts *outboundCommHTTPOpts) {
		opts.backOff = newBackOff
	}
}

// OutboundHTTPClient posts packed envelopes to the service.
type OutboundHTTPClient struct {
	client     *http.Client
	maxRetries uint64
	backOff    func() backoff.BackOff
}

var _ transport.OutboundTransport = (*OutboundHTTPClient)(nil)

// NewOutbound creates an outbound HTTP transport. Without options it uses a client with a default timeout.
func NewOutbound(opts ...OutboundHTTPOpt) (*OutboundHTTPClient, error) {
	clOpts := &outboundCommHTTPOpts{
		client:     &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		backOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}

	for _, opt := range opts {
		opt(clOpts)
	}

	if clOpts.client == nil {
		return nil, errors.New("creation of outbound transport requires an HTTP client")
	}

	client := clOpts.client

	if clOpts.timeout != nil {
		withTimeout := *client
		withTimeout.Timeout = *clOpts.timeout
		client = &withTimeout
	}

	return &OutboundHTTPClient{
		client:     client,
		maxRetries: clOpts.maxRetries,
		backOff:    clOpts.backOff,
	}, nil
}

// Send posts data to url. The same bytes are resent on network errors and 5xx responses; 4xx responses
// are final.
func (cs *OutboundHTTPClient) Send(ctx context.Context, data []byte, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("url is mandatory")
	}

	var (
		respData []byte
		attempt  int
	)

	operation := func() error {
		attempt++

		var err error

		respData, err = cs.post(ctx, data, url)
		if err != nil {
			logger.Debugf("post to [%s] attempt %d failed: %v", url, attempt, err)
		}

		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(cs.backOff(), cs.maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		logger.Errorf("failed to post envelope to [%s] after %d attempt(s): %v", url, attempt, err)

		return nil, err
	}

	return respData, nil
}

func (cs *OutboundHTTPClient) post(ctx context.Context, data []byte, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "build request"))
	}

	req.Header.Set("Content-Type", transport.MediaTypeEnvelope)

	resp, err := cs.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}

		return nil, errors.Wrapf(err, "posting envelope to [%s]", url)
	}

	defer func() {
		if e := resp.Body.Close(); e != nil {
			logger.Errorf("failed to close response body: %v", e)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		return body, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, errors.Errorf("received unsuccessful POST HTTP status from agent at [%s]: %s", url, resp.Status)
	default:
		return nil, backoff.Permanent(errors.Errorf(
			"received unsuccessful POST HTTP status from agent at [%s]: %s", url, resp.Status))
	}
}

// Accept reports whether url is an http(s) url.
func (cs *OutboundHTTPClient) Accept(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

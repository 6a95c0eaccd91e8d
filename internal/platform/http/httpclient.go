// Package http provides a tuned HTTP client for external API calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for outbound API calls.
//
// http.DefaultClient has no timeout, so external calls must always go through
// a client built here. The transport is set explicitly so connection reuse
// and handshake limits are under our control:
//   - Proxy: honored from the environment (HTTP_PROXY etc.)
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConns: 100 to avoid exhaustion under load
//   - TLSHandshakeTimeout: cap on the HTTPS handshake
//
// The overall request timeout is supplied by the caller.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

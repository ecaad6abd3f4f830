// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
)

// RequestIDHeader carries a per-request UUID so client log lines can
// be matched with backend access logs.
const RequestIDHeader = "X-Request-ID"

// NewTransport wraps parent (http.DefaultTransport when nil) so that
// every request advertises gzip, decompresses gzip responses, and
// carries a User-Agent and an X-Request-ID. Headers the caller already
// set are left alone.
func NewTransport(parent http.RoundTripper, userAgent string) http.RoundTripper {
	if parent == nil {
		parent = http.DefaultTransport
	}
	return &identifyingTransport{
		next:      gzhttp.Transport(parent),
		userAgent: userAgent,
	}
}

type identifyingTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (transport *identifyingTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	request = request.Clone(request.Context())
	if request.Header.Get(RequestIDHeader) == "" {
		request.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if transport.userAgent != "" && request.Header.Get("User-Agent") == "" {
		request.Header.Set("User-Agent", transport.userAgent)
	}
	return transport.next.RoundTrip(request)
}

// RequestID returns the request id the transport attached, or "".
func RequestID(request *http.Request) string {
	if request == nil {
		return ""
	}
	return request.Header.Get(RequestIDHeader)
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// ProxyResponseWriter collects what a http.Handler writes so it can be
// returned to the load balancer as a single response.
type ProxyResponseWriter struct {
	headers http.Header
	body    bytes.Buffer
	status  int
}

var _ http.ResponseWriter = &ProxyResponseWriter{}

func NewProxyResponseWriter() *ProxyResponseWriter {
	return &ProxyResponseWriter{headers: http.Header{}}
}

func (r *ProxyResponseWriter) Header() http.Header { return r.headers }

func (r *ProxyResponseWriter) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	return r.body.Write(data)
}

func (r *ProxyResponseWriter) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *ProxyResponseWriter) GetProxyResponse() (events.ALBTargetGroupResponse, error) {
	if r.status == 0 {
		return events.ALBTargetGroupResponse{}, fmt.Errorf("Status code not set on response")
	}

	resp := events.ALBTargetGroupResponse{
		StatusCode:        r.status,
		StatusDescription: fmt.Sprintf("%d %s", r.status, http.StatusText(r.status)),
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
	}

	for k, vs := range r.headers {
		resp.Headers[k] = strings.Join(vs, ",")
		resp.MultiValueHeaders[k] = vs
	}

	if utf8.Valid(r.body.Bytes()) {
		resp.Body = r.body.String()
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(r.body.Bytes())
		resp.IsBase64Encoded = true
	}

	return resp, nil
}

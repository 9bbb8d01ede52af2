// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// CustomHostVariable is the name of the environment variable that contains
// the custom hostname for the request. If this variable is not set the framework
// reverts to `DefaultServerAddress`. The value for a custom host should include
// a protocol: http://my-custom.host.com
const CustomHostVariable = "GO_API_HOST"

// DefaultServerAddress is prepended to the path of each incoming request
const DefaultServerAddress = "https://aws-serverless-go-api.com"

type RequestAccessor struct {
	stripBasePath string
}

func (r *RequestAccessor) ProxyEventToHTTPRequest(req events.ALBTargetGroupRequest) (*http.Request, error) {
	decodedBody := []byte(req.Body)
	if req.IsBase64Encoded {
		base64Body, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		decodedBody = base64Body
	}

	path := req.Path
	if len(r.stripBasePath) > 1 && strings.HasPrefix(path, r.stripBasePath) {
		path = strings.Replace(path, r.stripBasePath, "", 1)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	serverAddress := DefaultServerAddress
	if customAddress, ok := os.LookupEnv(CustomHostVariable); ok {
		serverAddress = customAddress
	}
	path = serverAddress + path

	if query := queryString(req); len(query) > 0 {
		path += "?" + query
	}

	httpRequest, err := http.NewRequest(
		strings.ToUpper(req.HTTPMethod),
		path,
		bytes.NewReader(decodedBody),
	)
	if err != nil {
		log.Printf("Could not convert request %s:%s to http.Request: %s", req.HTTPMethod, req.Path, err)
		return nil, err
	}

	for h := range req.Headers {
		httpRequest.Header.Add(h, req.Headers[h])
	}

	for hk, hvs := range req.MultiValueHeaders {
		for _, hv := range hvs {
			httpRequest.Header.Add(hk, hv)
		}
	}

	// redirects to HTTPS should point at the host the client used
	if host := httpRequest.Header.Get("Host"); len(host) > 0 {
		httpRequest.Host = host
	}

	return httpRequest, nil
}

// queryString prefers multi value parameters (sent when the target group
// has them enabled) and falls back to single value ones. Keys are sorted.
func queryString(req events.ALBTargetGroupRequest) string {
	values := url.Values{}

	if len(req.MultiValueQueryStringParameters) > 0 {
		for q, l := range req.MultiValueQueryStringParameters {
			for _, v := range l {
				values.Add(q, v)
			}
		}
	} else {
		for q, v := range req.QueryStringParameters {
			values.Add(q, v)
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pieces []string
	for _, k := range keys {
		for _, v := range values[k] {
			pieces = append(pieces, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(pieces, "&")
}

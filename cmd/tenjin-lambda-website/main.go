// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"carvel.dev/tenjin/pkg/cmd"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

const (
	stripBasePathEnv   = "TENJIN_STRIP_BASE_PATH"
	maxIncludeDepthEnv = "TENJIN_MAX_INCLUDE_DEPTH"
)

// ALBProxy serves load balancer events with a http.Handler.
type ALBProxy struct {
	RequestAccessor
	handler http.Handler
}

func NewALBProxy(handler http.Handler, stripBasePath string) *ALBProxy {
	return &ALBProxy{
		RequestAccessor: RequestAccessor{stripBasePath: stripBasePath},
		handler:         handler,
	}
}

// Handle answers malformed events with a 400 response rather than an
// invocation error, which the load balancer would report as a 502.
func (p *ALBProxy) Handle(event events.ALBTargetGroupRequest) (events.ALBTargetGroupResponse, error) {
	req, err := p.ProxyEventToHTTPRequest(event)
	if err != nil {
		log.Printf("Converting event for %s %s: %s", event.HTTPMethod, event.Path, err)
		return textResponse(http.StatusBadRequest, "Malformed request"), nil
	}

	w := NewProxyResponseWriter()
	p.handler.ServeHTTP(w, req)

	resp, err := w.GetProxyResponse()
	if err != nil {
		return events.ALBTargetGroupResponse{}, fmt.Errorf("Generating response: %s", err)
	}
	return resp, nil
}

func textResponse(status int, body string) events.ALBTargetGroupResponse {
	return events.ALBTargetGroupResponse{
		StatusCode:        status,
		StatusDescription: fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Headers:           map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:              body,
	}
}

// websiteOptions always redirects to HTTPS since the load balancer
// terminates TLS and forwards X-Forwarded-Proto.
func websiteOptions(lookupEnv func(string) (string, bool)) (*cmd.WebsiteOptions, error) {
	opts := cmd.NewWebsiteOptions()
	opts.RedirectToHTTPS = true

	if val, found := lookupEnv(maxIncludeDepthEnv); found {
		depth, err := strconv.Atoi(val)
		if err != nil || depth <= 0 {
			return nil, fmt.Errorf("Expected %s to be a positive integer, but was '%s'", maxIncludeDepthEnv, val)
		}
		opts.MaxIncludeDepth = depth
	}

	return opts, nil
}

func main() {
	opts, err := websiteOptions(os.LookupEnv)
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(NewALBProxy(opts.Server().Mux(), os.Getenv(stripBasePathEnv)).Handle)
}

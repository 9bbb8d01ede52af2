// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"io"

	cmdrender "carvel.dev/tenjin/pkg/cmd/render"
	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/website"
	"github.com/spf13/cobra"
)

// DefaultWebsiteMaxIncludeDepth keeps an include cycle in a submitted
// template from exhausting the server's stack.
const DefaultWebsiteMaxIncludeDepth = 64

type WebsiteOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
	Debug           bool
	MaxIncludeDepth int
}

func NewWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{MaxIncludeDepth: DefaultWebsiteMaxIncludeDepth}
}

func NewWebsiteCmd(o *WebsiteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Starts website HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", true, "Redirect to HTTPs address")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().IntVar(&o.MaxIncludeDepth, "max-include-depth", o.MaxIncludeDepth, "Fail renders whose includes nest deeper than this")
	return cmd
}

func (o *WebsiteOptions) Server() *website.Server {
	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		RenderFunc:      o.render,
		ErrorFunc:       o.bulkOutErr,
	}
	return website.NewServer(opts)
}

func (o *WebsiteOptions) Run() error {
	return o.Server().Run()
}

// render runs in-process with fresh options for each request.
func (o *WebsiteOptions) render(data []byte) ([]byte, error) {
	ui := cmdui.NewCustomWriterTTY(o.Debug, io.Discard, nil)

	renderOpts := cmdrender.NewOptions()
	renderOpts.MaxIncludeDepth = o.MaxIncludeDepth
	if renderOpts.MaxIncludeDepth <= 0 {
		renderOpts.MaxIncludeDepth = DefaultWebsiteMaxIncludeDepth
	}

	return renderOpts.RunWithBulk(data, ui)
}

func (*WebsiteOptions) bulkOutErr(err error) ([]byte, error) {
	return json.Marshal(cmdrender.BulkFiles{Errors: err.Error()})
}

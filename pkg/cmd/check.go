// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/workspace"
	"github.com/spf13/cobra"
)

// CheckOptions compiles templates without rendering them.
type CheckOptions struct {
	Files       []string
	Recursive   bool
	TemplateExt string
	Debug       bool

	ui cmdui.UI
}

func NewCheckOptions() *CheckOptions {
	return &CheckOptions{Recursive: true, TemplateExt: files.DefaultTemplateExt}
}

func NewCheckCmd(o *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile templates and report syntax errors",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringSliceVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "R", o.Recursive, "Include files from directories")
	cmd.Flags().StringVar(&o.TemplateExt, "template-ext", o.TemplateExt, "Extension of template files")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *CheckOptions) Run() error {
	ui := o.ui
	if ui == nil {
		ui = cmdui.NewTTY(o.Debug)
	}

	fs, err := files.NewFiles(o.Files, files.NewFilesOpts{Recursive: o.Recursive})
	if err != nil {
		return err
	}

	registry, err := workspace.NewTemplateLoader(ui, workspace.TemplateLoaderOpts{TemplateExt: o.TemplateExt}).Load(fs)
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		ui.Printf("ok: %s\n", name)
	}
	ui.Printf("\nSucceeded (%d templates)\n", registry.Len())

	return nil
}

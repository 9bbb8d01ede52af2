// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"time"

	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/workspace"
	"github.com/spf13/cobra"
)

type Options struct {
	Debug       bool
	TemplateExt string
	Templates   []string

	// MaxIncludeDepth of zero leaves include nesting unbounded
	MaxIncludeDepth int

	BulkFilesSourceOpts    BulkFilesSourceOpts
	RegularFilesSourceOpts RegularFilesSourceOpts
	DataValuesFlags        DataValuesFlags
}

type Input struct {
	Files []*files.File
}

type Output struct {
	Files []files.OutputFile
	Err   error
}

type FileSource interface {
	HasInput() bool
	HasOutput() bool
	Input() (Input, error)
	Output(Output) error
}

var _ []FileSource = []FileSource{&BulkFilesSource{}, &RegularFilesSource{}}

func NewOptions() *Options {
	return &Options{
		TemplateExt:            files.DefaultTemplateExt,
		RegularFilesSourceOpts: RegularFilesSourceOpts{recursive: true},
	}
}

func NewCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render templates with data",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().StringVar(&o.TemplateExt, "template-ext", o.TemplateExt, "Extension of template files")
	cmd.Flags().IntVar(&o.MaxIncludeDepth, "max-include-depth", 0, "Fail when includes nest deeper than this (0 for no limit)")
	cmd.Flags().StringSliceVarP(&o.Templates, "template", "t", nil, "Name of template to render (can be specified multiple times) (default all templates)")
	o.BulkFilesSourceOpts.Set(cmd)
	o.RegularFilesSourceOpts.Set(cmd)
	o.DataValuesFlags.Set(cmd)
	return cmd
}

func (o *Options) Run() error {
	ui := cmdui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	srcs := []FileSource{
		NewBulkFilesSource(o.BulkFilesSourceOpts, ui),
		NewRegularFilesSource(o.RegularFilesSourceOpts, ui),
	}

	in, err := o.pickSource(srcs, func(s FileSource) bool { return s.HasInput() }).Input()
	if err != nil {
		return err
	}

	out := o.RunWithFiles(in, ui)

	return o.pickSource(srcs, func(s FileSource) bool { return s.HasOutput() }).Output(out)
}

func (o *Options) RunWithFiles(in Input, ui cmdui.UI) Output {
	templateLoader := workspace.NewTemplateLoader(ui, workspace.TemplateLoaderOpts{TemplateExt: o.TemplateExt})

	registry, err := templateLoader.Load(in.Files)
	if err != nil {
		return Output{Err: err}
	}

	if registry.Len() == 0 {
		return Output{Err: fmt.Errorf("Expected at least one template file (files with extension '%s')", o.templateExt())}
	}

	data, err := workspace.NewDataLoader(ui, o.TemplateExt).Load(in.Files)
	if err != nil {
		return Output{Err: err}
	}

	data, err = o.DataValuesFlags.Apply(data, ui)
	if err != nil {
		return Output{Err: err}
	}

	outputs, err := workspace.RenderAll(registry, o.Templates, datavalues.NewValue(data), workspace.RenderOpts{
		TemplateExt:     o.templateExt(),
		MaxIncludeDepth: o.MaxIncludeDepth,
	})
	if err != nil {
		return Output{Err: err}
	}

	return Output{Files: outputs}
}

func (o *Options) templateExt() string {
	if len(o.TemplateExt) == 0 {
		return files.DefaultTemplateExt
	}
	return o.TemplateExt
}

func (o *Options) pickSource(srcs []FileSource, pickFunc func(FileSource) bool) FileSource {
	for _, src := range srcs {
		if pickFunc(src) {
			return src
		}
	}
	return srcs[len(srcs)-1]
}

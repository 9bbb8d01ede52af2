// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"

	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/template"
	"carvel.dev/tenjin/pkg/texttemplate"
)

type TemplateLoader struct {
	ui   files.UI
	opts TemplateLoaderOpts
}

type TemplateLoaderOpts struct {
	TemplateExt string
}

func NewTemplateLoader(ui files.UI, opts TemplateLoaderOpts) *TemplateLoader {
	if len(opts.TemplateExt) == 0 {
		opts.TemplateExt = files.DefaultTemplateExt
	}
	return &TemplateLoader{ui, opts}
}

// Load compiles every template file and registers it under its template
// name. Other files are skipped. The first compile error stops loading.
func (l *TemplateLoader) Load(fs []*files.File) (*template.Registry, error) {
	registry := template.NewRegistry()

	for _, file := range fs {
		if !file.IsTemplate(l.opts.TemplateExt) {
			continue
		}

		tpl, err := l.compile(file)
		if err != nil {
			return nil, err
		}

		name := file.TemplateName(l.opts.TemplateExt)
		if _, replaced := registry.Register(name, tpl); replaced {
			l.ui.Debugf("template '%s' from %s replaces earlier one\n", name, file.Description())
		} else {
			l.ui.Debugf("registered template '%s' from %s\n", name, file.Description())
		}
	}

	return registry, nil
}

func (l *TemplateLoader) compile(file *files.File) (*texttemplate.Template, error) {
	bs, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", file.Description(), err)
	}

	tpl, err := texttemplate.NewParser().Parse(bs, file.RelativePath())
	if err != nil {
		return nil, fmt.Errorf("Compiling template %s: %w", file.Description(), err)
	}
	return tpl, nil
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"bytes"
	"fmt"

	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/template"
)

type RenderOpts struct {
	TemplateExt     string
	MaxIncludeDepth int
}

// RenderAll renders each named template (all registered templates when
// names is empty) into an output file named after the template plus
// TemplateExt. Rendering stops at the first error.
func RenderAll(registry *template.Registry, names []string, ctx template.Context, opts RenderOpts) ([]files.OutputFile, error) {
	if len(names) == 0 {
		names = registry.Names()
	}

	renderer := template.NewRendererWithOpts(registry, template.RendererOpts{MaxIncludeDepth: opts.MaxIncludeDepth})

	var result []files.OutputFile

	for _, name := range names {
		var buf bytes.Buffer

		err := renderer.RenderNamed(name, ctx, &buf)
		if err != nil {
			return nil, fmt.Errorf("Rendering template '%s': %w", name, err)
		}

		result = append(result, files.NewOutputFile(name+opts.TemplateExt, buf.Bytes()))
	}

	return result, nil
}

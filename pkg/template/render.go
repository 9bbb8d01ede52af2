// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"io"
	"sort"

	"carvel.dev/tenjin/pkg/texttemplate"
)

// Registry maps names to compiled templates for includes. It is filled
// once during setup; afterwards it may be read by concurrent renders.
type Registry struct {
	templates map[string]*texttemplate.Template
}

func NewRegistry() *Registry {
	return &Registry{templates: map[string]*texttemplate.Template{}}
}

// Register adds tpl under name, returning the template it replaced if any.
func (r *Registry) Register(name string, tpl *texttemplate.Template) (*texttemplate.Template, bool) {
	prev, found := r.templates[name]
	r.templates[name] = tpl
	return prev, found
}

func (r *Registry) Get(name string) (*texttemplate.Template, bool) {
	if r == nil {
		return nil, false
	}
	tpl, found := r.templates[name]
	return tpl, found
}

// Names returns registered template names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.templates)
}

// RendererOpts configures a Renderer.
type RendererOpts struct {
	// MaxIncludeDepth bounds how deeply includes may nest. Zero means
	// no bound; an include cycle then recurses until the stack runs out.
	MaxIncludeDepth int
}

// Renderer executes templates, resolving includes through its registry.
// Renderer holds no per-render state.
type Renderer struct {
	registry *Registry
	opts     RendererOpts
}

func NewRenderer(registry *Registry) *Renderer {
	return &Renderer{registry: registry}
}

func NewRendererWithOpts(registry *Registry, opts RendererOpts) *Renderer {
	return &Renderer{registry: registry, opts: opts}
}

// RenderNamed renders the registered template name.
func (r *Renderer) RenderNamed(name string, ctx Context, w io.Writer) error {
	tpl, found := r.registry.Get(name)
	if !found {
		return &TemplateNotFoundError{Name: name}
	}
	return r.Render(tpl, ctx, w)
}

// Render writes tpl evaluated against ctx to w. Output written before a
// failure is not rolled back. Errors from w are returned as is.
func (r *Renderer) Render(tpl *texttemplate.Template, ctx Context, w io.Writer) error {
	return r.render(tpl, ctx, w, 0)
}

// depth counts the includes entered to reach tpl
func (r *Renderer) render(tpl *texttemplate.Template, ctx Context, w io.Writer, depth int) error {
	for _, stmt := range tpl.Statements() {
		switch typedStmt := stmt.(type) {
		case *texttemplate.Content:
			if _, err := io.WriteString(w, typedStmt.Text); err != nil {
				return err
			}

		case *texttemplate.Inject:
			if err := ctx.Inject(NewPath(typedStmt.Path), w); err != nil {
				return err
			}

		case *texttemplate.Cond:
			switch {
			case ctx.Truthy(NewPath(typedStmt.Path)):
				if err := r.render(typedStmt.Then, ctx, w, depth); err != nil {
					return err
				}
			case typedStmt.Else != nil:
				if err := r.render(typedStmt.Else, ctx, w, depth); err != nil {
					return err
				}
			}

		case *texttemplate.For:
			chomp := &Chomp{
				renderer: r,
				body:     typedStmt.Body,
				outer:    ctx,
				name:     typedStmt.Var,
				w:        w,
				depth:    depth,
			}
			if err := ctx.Iterate(NewPath(typedStmt.Path), chomp); err != nil {
				return err
			}

		case *texttemplate.Include:
			included, found := r.registry.Get(typedStmt.Name)
			if !found {
				return &TemplateNotFoundError{Name: typedStmt.Name}
			}
			if r.opts.MaxIncludeDepth > 0 && depth >= r.opts.MaxIncludeDepth {
				return &IncludeDepthError{Name: typedStmt.Name, MaxDepth: r.opts.MaxIncludeDepth}
			}
			includeCtx := ctx
			if len(typedStmt.With) > 0 {
				includeCtx = IncludeContext{Outer: ctx, Base: typedStmt.With}
			}
			if err := r.render(included, includeCtx, w, depth+1); err != nil {
				return err
			}

		default:
			panic(fmt.Sprintf("Unknown statement type %T", typedStmt))
		}
	}

	return nil
}

// Chomp renders a loop body once per element handed to it by
// Context.Iterate. Output goes straight to the sink.
type Chomp struct {
	renderer *Renderer
	body     *texttemplate.Template
	outer    Context
	name     string
	w        io.Writer
	depth    int
}

// Chomp renders the loop body with the loop variable bound to item.
// Errors it returns already name the full path and must not be qualified
// by the collection being iterated.
func (c *Chomp) Chomp(item Context) error {
	return settle(c.renderer.render(c.body, ForContext{Outer: c.outer, Item: item, Name: c.name}, c.w, c.depth))
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace_test

import (
	"errors"
	"io"
	"testing"

	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/template"
	"carvel.dev/tenjin/pkg/texttemplate"
	"carvel.dev/tenjin/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUI struct {
	debug []string
}

func (u *testUI) Printf(string, ...interface{})       {}
func (u *testUI) Debugf(str string, _ ...interface{}) { u.debug = append(u.debug, str) }
func (u *testUI) DebugWriter() io.Writer              { return io.Discard }

func newFiles(t *testing.T, pairs ...string) []*files.File {
	t.Helper()
	var result []*files.File
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, files.MustNewFileFromSource(files.NewBytesSource(pairs[i], []byte(pairs[i+1]))))
	}
	return result
}

func TestLoadAndRenderAll(t *testing.T) {
	fs := newFiles(t,
		"index.html", `<h1>{ site.title }</h1><ul>{ for p in pages }{ include partials/item with p }{ end }</ul>`,
		"partials/item.html", `<li>{ name }</li>`,
		"data.yml", "site:\n  title: Mine\npages:\n- name: a\n",
		"more.json", `{"pages": [{"name": "b"}, {"name": "c&d"}]}`,
		"notes.txt", "ignored",
	)

	ui := &testUI{}

	registry, err := workspace.NewTemplateLoader(ui, workspace.TemplateLoaderOpts{}).Load(fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "partials/item"}, registry.Names())

	data, err := workspace.NewDataLoader(ui, files.DefaultTemplateExt).Load(fs)
	require.NoError(t, err)
	require.NoError(t, datavalues.SetPath(data, "site.title", "Yours"))

	outputs, err := workspace.RenderAll(registry, []string{"index"}, datavalues.NewValue(data), workspace.RenderOpts{TemplateExt: ".html"})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "index.html", outputs[0].RelativePath())
	assert.Equal(t, "<h1>Yours</h1><ul><li>b</li><li>c&amp;d</li></ul>", string(outputs[0].Bytes()))

	outputs, err = workspace.RenderAll(registry, nil, datavalues.NewValue(data), workspace.RenderOpts{TemplateExt: ".out"})
	require.Error(t, err)
	assert.EqualError(t, err, "Rendering template 'partials/item': variable 'name' is undefined")
	assert.True(t, errors.Is(err, template.ErrUndefined))
	assert.Nil(t, outputs)

	assert.NotEmpty(t, ui.debug)
}

func TestTemplateLoaderReportsCompileErrors(t *testing.T) {
	fs := newFiles(t, "broken.html", "ok\n{ for x }")

	_, err := workspace.NewTemplateLoader(&testUI{}, workspace.TemplateLoaderOpts{}).Load(fs)
	require.EqualError(t, err, "Compiling template broken.html: expected 'in', found '}' (broken.html:2:9)")

	var unexpectedErr *texttemplate.UnexpectedError
	assert.True(t, errors.As(err, &unexpectedErr))
}

func TestTemplateLoaderCustomExt(t *testing.T) {
	fs := newFiles(t, "mail/hello.txt", "Hi { name }", "page.html", "{ x }")

	registry, err := workspace.NewTemplateLoader(&testUI{}, workspace.TemplateLoaderOpts{TemplateExt: ".txt"}).Load(fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"mail/hello"}, registry.Names())
}

func TestDataLoaderErrors(t *testing.T) {
	loader := workspace.NewDataLoader(&testUI{}, files.DefaultTemplateExt)

	_, err := loader.Load(newFiles(t, "bad.json", "{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Loading data from bad.json: Unmarshaling JSON: ")

	_, err = loader.Load(newFiles(t, "list.yml", "- 1"))
	require.EqualError(t, err, "Expected data document 1 to be a map, but was []interface {}")

	data, err := loader.LoadFiles(newFiles(t, "a.toml", `x = "1"`, "b.star", `x = "2"`))
	require.NoError(t, err)
	x, _ := data.Get("x")
	assert.Equal(t, "2", mustInject(t, x))
}

func mustInject(t *testing.T, val interface{}) string {
	t.Helper()
	var out []byte
	w := writerFunc(func(p []byte) (int, error) {
		out = append(out, p...)
		return len(p), nil
	})
	require.NoError(t, datavalues.NewValue(val).Inject(template.NewPath(""), w))
	return string(out)
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

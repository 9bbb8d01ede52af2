// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cmdrender "carvel.dev/tenjin/pkg/cmd/render"
	"carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInput(pairs ...string) cmdrender.Input {
	var result []*files.File
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, files.MustNewFileFromSource(files.NewBytesSource(pairs[i], []byte(pairs[i+1]))))
	}
	return cmdrender.Input{Files: result}
}

func TestRenderTemplatesWithData(t *testing.T) {
	in := newInput(
		"index.html", "{ if site.draft }DRAFT { end }{ site.name }:{ for p in pages } { include link with p }{ end }",
		"link.html", `<a href="{ href }">{ title }</a>`,
		"site.yml", "site:\n  name: Blog & Co\npages:\n- href: /a\n  title: A\n- href: /b\n  title: <B>\n",
	)

	opts := cmdrender.NewOptions()
	opts.Templates = []string{"index"}

	out := opts.RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Len(t, out.Files, 1)

	assert.Equal(t, "index.html", out.Files[0].RelativePath())
	assert.Equal(t, `Blog &amp; Co: <a href="/a">A</a> <a href="/b">&lt;B&gt;</a>`, string(out.Files[0].Bytes()))
}

func TestRenderAllTemplatesByDefault(t *testing.T) {
	in := newInput(
		"b.html", "B={ x }",
		"a.html", "A={ x }",
		"values.json", `{"x": 1}`,
	)

	out := cmdrender.NewOptions().RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)

	var names []string
	for _, file := range out.Files {
		names = append(names, file.RelativePath())
	}
	assert.Equal(t, []string{"a.html", "b.html"}, names)
	assert.Equal(t, "A=1", string(out.Files[0].Bytes()))
}

func TestRenderWithCustomTemplateExt(t *testing.T) {
	in := newInput(
		"hello.txt", "Hello { who }!",
		"page.html", "not a template here",
	)

	opts := cmdrender.NewOptions()
	opts.TemplateExt = ".txt"
	opts.DataValuesFlags.KVsFromStrings = []string{"who=<world>"}

	out := opts.RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "hello.txt", out.Files[0].RelativePath())
	assert.Equal(t, "Hello &lt;world&gt;!", string(out.Files[0].Bytes()))
}

func TestRenderErrors(t *testing.T) {
	t.Run("no templates", func(t *testing.T) {
		out := cmdrender.NewOptions().RunWithFiles(newInput("data.yml", "a: 1"), ui.NewTTY(false))
		require.EqualError(t, out.Err, "Expected at least one template file (files with extension '.html')")
	})

	t.Run("compile error", func(t *testing.T) {
		out := cmdrender.NewOptions().RunWithFiles(newInput("index.html", "{ if x }"), ui.NewTTY(false))
		require.EqualError(t, out.Err, "Compiling template index.html: expected text or '{', found nothing (index.html:1:9)")
	})

	t.Run("missing variable", func(t *testing.T) {
		out := cmdrender.NewOptions().RunWithFiles(newInput("index.html", "{ for p in pages }{ p.title }{ end }", "d.yml", "pages:\n- {}"), ui.NewTTY(false))
		require.EqualError(t, out.Err, "Rendering template 'index': variable 'p.title' is undefined")
		assert.True(t, errors.Is(out.Err, template.ErrUndefined))
	})

	t.Run("unknown template", func(t *testing.T) {
		opts := cmdrender.NewOptions()
		opts.Templates = []string{"missing"}
		out := opts.RunWithFiles(newInput("index.html", "x"), ui.NewTTY(false))
		require.EqualError(t, out.Err, "Rendering template 'missing': template 'missing' not found")
	})

	t.Run("include depth", func(t *testing.T) {
		opts := cmdrender.NewOptions()
		cmd := cmdrender.NewCmd(opts)
		require.NoError(t, cmd.Flags().Parse([]string{"--max-include-depth", "3"}))

		out := opts.RunWithFiles(newInput("index.html", "<{ include index }>"), ui.NewTTY(false))
		require.EqualError(t, out.Err, "Rendering template 'index': including template 'index' exceeds maximum include depth of 3")
		assert.True(t, errors.Is(out.Err, template.ErrIncludeTooDeep))
	})
}

func TestRegularOutputToStdoutAndDirectory(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.html"), []byte("hi { name }"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.toml"), []byte(`name = "toml"`), 0600))

	var stdout bytes.Buffer
	tty := ui.NewCustomWriterTTY(false, &stdout, nil)

	opts := cmdrender.NewOptions()
	opts.DataValuesFlags.KVsFromStrings = []string{"name=flag"}

	src := cmdrender.NewRegularFilesSource(regularOpts(t, "-f", dir), tty)
	in, err := src.Input()
	require.NoError(t, err)

	require.NoError(t, src.Output(opts.RunWithFiles(in, tty)))
	assert.Equal(t, "hi flag\n", stdout.String())

	outDir := filepath.Join(dir, "out")
	src = cmdrender.NewRegularFilesSource(regularOpts(t, "-f", filepath.Join(dir, "greet.html"), "-f", filepath.Join(dir, "data.toml"), "-o", outDir), tty)
	in, err = src.Input()
	require.NoError(t, err)
	require.NoError(t, src.Output(cmdrender.NewOptions().RunWithFiles(in, tty)))

	rendered, err := os.ReadFile(filepath.Join(outDir, "greet.html"))
	require.NoError(t, err)
	assert.Equal(t, "hi toml", string(rendered))
	assert.Contains(t, stdout.String(), "rendered: "+filepath.Join(outDir, "greet.html"))
}

func TestRegularInputRejectsDirectoryWhenNotRecursive(t *testing.T) {
	src := cmdrender.NewRegularFilesSource(regularOpts(t, "-f", t.TempDir(), "-R=false"), ui.NewTTY(false))
	_, err := src.Input()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to not be a directory")
}

func regularOpts(t *testing.T, args ...string) cmdrender.RegularFilesSourceOpts {
	t.Helper()
	opts := cmdrender.NewOptions()
	cmd := cmdrender.NewCmd(opts)
	require.NoError(t, cmd.Flags().Parse(args))
	return opts.RegularFilesSourceOpts
}

func TestBulkRoundTrip(t *testing.T) {
	input, err := json.Marshal(cmdrender.BulkFiles{Files: []cmdrender.BulkFile{
		{Name: "tpl/item.html", Data: "[{ . }]"},
		{Name: "index.html", Data: "{ for i in items }{ include tpl/item with i }{ end }"},
		{Name: "data.json", Data: `{"items": ["a", "b"]}`},
	}})
	require.NoError(t, err)

	opts := cmdrender.NewOptions()
	opts.Templates = []string{"index"}

	result, err := opts.RunWithBulk(input, ui.NewTTY(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[{"name":"index.html","data":"[a][b]"}]}`, string(result))

	result, err = cmdrender.NewOptions().RunWithBulk([]byte(`{"files":[{"name":"index.html","data":"{ nope }"}]}`), ui.NewTTY(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":"Rendering template 'index': variable 'nope' is undefined"}`, string(result))

	_, err = cmdrender.NewOptions().RunWithBulk([]byte(`{`), ui.NewTTY(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling bulk files: ")
}

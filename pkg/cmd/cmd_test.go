// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	o := &VersionOptions{ui: cmdui.NewCustomWriterTTY(false, &stdout, nil)}

	require.NoError(t, o.Run())
	assert.Equal(t, "tenjin version "+version.Version+"\n", stdout.String())
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "partials"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("{ include partials/nav }"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partials", "nav.html"), []byte("<nav>{ for l in links }{ l }{ end }</nav>"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.yml"), []byte("links: []"), 0600))

	var stdout bytes.Buffer
	o := NewCheckOptions()
	o.Files = []string{dir}
	o.ui = cmdui.NewCustomWriterTTY(false, &stdout, nil)

	require.NoError(t, o.Run())
	assert.Equal(t, "ok: index\nok: partials/nav\n\nSucceeded (2 templates)\n", stdout.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.html"), []byte("{ for }"), 0600))

	err := o.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Compiling template file '"+filepath.Join(dir, "broken.html")+"': ")
}

func TestWebsiteRendersInProcess(t *testing.T) {
	o := NewWebsiteOptions()
	mux := o.Server().Mux()

	body := `{"files":[{"name":"main.html","data":"<p>{ msg }</p>"},{"name":"data.json","data":"{\"msg\":\"a<b\"}"}]}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	assert.JSONEq(t, `{"files":[{"name":"main.html","data":"<p>a&lt;b</p>"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("not json")))
	assert.Contains(t, rec.Body.String(), `"errors":"Unmarshaling bulk files: `)
}

func TestWebsiteStopsIncludeCycles(t *testing.T) {
	o := NewWebsiteOptions()
	o.MaxIncludeDepth = 8
	mux := o.Server().Mux()

	body := `{"files":[{"name":"a.html","data":"{ include a }"}]}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	assert.JSONEq(t, `{"errors":"Rendering template 'a': including template 'a' exceeds maximum include depth of 8"}`, rec.Body.String())

	// the server keeps serving afterwards
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "{}", rec.Body.String())
}

func TestWebsiteCannotDisableIncludeLimit(t *testing.T) {
	o := NewWebsiteOptions()
	o.MaxIncludeDepth = 0
	mux := o.Server().Mux()

	body := `{"files":[{"name":"a.html","data":"{ include b }"},{"name":"b.html","data":"{ include a }"}]}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	assert.Contains(t, rec.Body.String(), "exceeds maximum include depth of 64")
}

func TestRootCommandWiring(t *testing.T) {
	cmd := NewDefaultTenjinCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"version", "render", "check", "website"})

	for _, flag := range []string{"file", "template", "template-ext", "data-values-file", "data-value", "data-value-yaml", "output", "bulk-in", "bulk-out", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues_test

import (
	"encoding/json"
	"testing"

	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONKeepsKeyOrder(t *testing.T) {
	doc, err := datavalues.FromJSON([]byte(`{"z": 1, "a": {"y": true, "b": [1, 2.5, "x<", null]}, "m": 12345678901234567890}`))
	require.NoError(t, err)

	root := doc.(*orderedmap.Map)
	assert.Equal(t, []string{"z", "a", "m"}, root.Keys())

	z, _ := root.Get("z")
	assert.Equal(t, json.Number("1"), z)

	assert.Equal(t, "1|true,[1,2.5,x&lt;,,],|12345678901234567890",
		mustRender(t, "{ z }|{ for v in a }{ if v.0 }[{ for i in v }{ if i }{ i }{ end },{ end }]{ else }{ v }{ end },{ end }|{ m }", doc))
}

func TestFromJSONErrors(t *testing.T) {
	_, err := datavalues.FromJSON([]byte(`{"a": }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling JSON: ")

	_, err = datavalues.FromJSON([]byte(`{} {}`))
	require.EqualError(t, err, "Unmarshaling JSON: expected end of document")
}

func TestFromYAMLKeepsKeyOrder(t *testing.T) {
	doc, err := datavalues.FromYAML([]byte(`
site:
  title: Blog
  base: &base
    color: red
    size: 2
pages:
- {name: home, theme: *base}
- name: about
`))
	require.NoError(t, err)

	root := doc.(*orderedmap.Map)
	assert.Equal(t, []string{"site", "pages"}, root.Keys())

	assert.Equal(t, "Blog:base,home-red,about-,",
		mustRender(t, "{ site.title }:{ for v in site }{ if v.color }base{ end }{ end },{ for p in pages }{ p.name }-{ if p.theme }{ p.theme.color }{ end },{ end }", doc))
}

func TestFromYAMLEmpty(t *testing.T) {
	doc, err := datavalues.FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.(*orderedmap.Map).Len())

	_, err = datavalues.FromYAML([]byte("a: [1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling YAML: ")
}

func TestFromTOMLInlineTables(t *testing.T) {
	doc, err := datavalues.FromTOML([]byte(`point = { y = 2, x = 1 }`))
	require.NoError(t, err)

	point, found := doc.(*orderedmap.Map).Get("point")
	require.True(t, found)
	assert.ElementsMatch(t, []string{"x", "y"}, point.(*orderedmap.Map).Keys())
	assert.Equal(t, "1,2", mustRender(t, "{ point.x },{ point.y }", doc))
}

func TestFromTOMLKeepsKeyOrder(t *testing.T) {
	doc, err := datavalues.FromTOML([]byte(`
title = "T"
zeta = 1
alpha = 2.5

[owner]
name = "Tom"
dob = 1979-05-27T07:32:00-08:00

[[products]]
sku = 738594937
name = "Hammer"

[[products]]
name = "Nail"
`))
	require.NoError(t, err)

	root := doc.(*orderedmap.Map)
	assert.Equal(t, []string{"title", "zeta", "alpha", "owner", "products"}, root.Keys())

	owner, _ := root.Get("owner")
	assert.Equal(t, []string{"name", "dob"}, owner.(*orderedmap.Map).Keys())

	assert.Equal(t, "T 1 2.5 Tom 1979-05-27T07:32:00-08:00 Hammer,Nail,",
		mustRender(t, "{ title } { zeta } { alpha } { owner.name } { owner.dob } { for p in products }{ p.name },{ end }", doc))
}

func TestFromStarlark(t *testing.T) {
	doc, err := datavalues.FromStarlark("data.star", []byte(`
title = "Hi"
_private = 1

def double(x):
  return x * 2

items = [double(1), double(2)]
config = {"z": 1, "a": True}
tags = ("a", "b")
none = None
`))
	require.NoError(t, err)

	root := doc.(*orderedmap.Map)
	assert.Equal(t, []string{"config", "items", "none", "tags", "title"}, root.Keys())

	assert.Equal(t, "Hi:24:1true:b:true:",
		mustRender(t, "{ title }:{ for i in items }{ i }{ end }:{ for v in config }{ v }{ end }:{ tags.1 }:{ config.a }:{ if none }x{ end }", doc))

	_, err = datavalues.FromStarlark("bad.star", []byte("x = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Executing Starlark: ")
}

func TestDecodeByExtension(t *testing.T) {
	cases := map[string]string{
		"a.json": `{"x": "j"}`,
		"a.yml":  "x: y1",
		"a.YAML": "x: y2",
		"a.toml": `x = "t"`,
		"a.star": `x = "s"`,
	}
	for name, data := range cases {
		doc, err := datavalues.Decode(name, []byte(data))
		require.NoError(t, err, name)
		assert.True(t, datavalues.IsDataFile(name))

		x, found := doc.(*orderedmap.Map).Get("x")
		require.True(t, found)
		assert.NotEmpty(t, x)
	}

	_, err := datavalues.Decode("a.txt", nil)
	require.EqualError(t, err, "Unknown data file format for 'a.txt' (expected .json, .yaml, .yml, .toml or .star)")
	assert.False(t, datavalues.IsDataFile("a.html"))
}

func TestMergeAndSetPath(t *testing.T) {
	first, err := datavalues.FromYAML([]byte("site: {title: A, theme: {color: red}}\nlist: [1, 2]"))
	require.NoError(t, err)
	second, err := datavalues.FromJSON([]byte(`{"site": {"theme": {"size": 3}, "title": "B"}, "list": [3], "extra": true}`))
	require.NoError(t, err)

	merged := datavalues.Merge(first, second).(*orderedmap.Map)
	assert.Equal(t, []string{"site", "list", "extra"}, merged.Keys())

	require.NoError(t, datavalues.SetPath(merged, "site.author.name", "Ann"))
	require.NoError(t, datavalues.SetPath(merged, "site.title", "C"))

	assert.Equal(t, "C red 3 Ann 3,",
		mustRender(t, "{ site.title } { site.theme.color } { site.theme.size } { site.author.name } { for i in list }{ i },{ end }", merged))

	// inputs are untouched
	title, _ := first.(*orderedmap.Map).Get("site")
	val, _ := title.(*orderedmap.Map).Get("title")
	assert.Equal(t, "A", val)

	err = datavalues.SetPath(merged, "site.title.x", "v")
	require.EqualError(t, err, "Expected 'site.title' to be a map to set key path 'site.title.x'")

	err = datavalues.SetPath(merged, "a..b", "v")
	require.EqualError(t, err, "Expected key path 'a..b' to not contain empty segments")
}

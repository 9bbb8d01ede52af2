// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues_test

import (
	"bytes"
	"testing"
	"time"

	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/template"
	"carvel.dev/tenjin/pkg/texttemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string, data interface{}) (string, error) {
	t.Helper()
	tpl, err := texttemplate.Compile(src)
	require.NoError(t, err)

	var out bytes.Buffer
	err = template.NewRenderer(nil).Render(tpl, datavalues.NewValue(data), &out)
	return out.String(), err
}

func mustRender(t *testing.T, src string, data interface{}) string {
	t.Helper()
	out, err := render(t, src, data)
	require.NoError(t, err)
	return out
}

type Author struct {
	Name string `tenjin:"name"`
}

type meta struct {
	Slug string
}

type Post struct {
	meta
	Title    string
	Author   *Author `tenjin:"author"`
	Editor   *Author `tenjin:"editor"`
	Body     string  `tenjin:"body,raw"`
	Comment  string  `tenjin:",sanitize"`
	Tags     []string
	Counts   map[string]int
	Password string `tenjin:"-"`
	draft    bool
}

func TestNewValueStruct(t *testing.T) {
	post := Post{
		meta:     meta{Slug: "hello-world"},
		Title:    "Fish & Chips",
		Author:   &Author{Name: "Ann"},
		Body:     "<p>hi</p>",
		Comment:  "<b>ok</b><script>bad()</script>",
		Tags:     []string{"food", "uk"},
		Counts:   map[string]int{"views": 10, "likes": 3},
		Password: "secret",
		draft:    true,
	}

	assert.Equal(t, "Fish &amp; Chips by Ann", mustRender(t, "{ post.Title } by { post.author.name }", map[string]interface{}{"post": post}))
	assert.Equal(t, "<p>hi</p>", mustRender(t, "{ post.body }", map[string]interface{}{"post": &post}))
	assert.Equal(t, "hello-world", mustRender(t, "{ Slug }", post))
	assert.Equal(t, "food,uk,", mustRender(t, "{ for t in Tags }{ t },{ end }", post))
	assert.Equal(t, "uk", mustRender(t, "{ Tags.1 }", post))
	assert.Equal(t, "3,10,", mustRender(t, "{ for c in Counts }{ c },{ end }", post))
	assert.Equal(t, "10", mustRender(t, "{ Counts.views }", post))
	assert.Equal(t, "no editor", mustRender(t, "{ if editor }{ editor.name }{ else }no editor{ end }", post))

	comment := mustRender(t, "{ Comment }", post)
	assert.Contains(t, comment, "<b>ok</b>")
	assert.NotContains(t, comment, "script")

	for _, hidden := range []string{"Password", "draft", "meta", "Body"} {
		_, err := render(t, "{ "+hidden+" }", post)
		require.EqualError(t, err, "variable '"+hidden+"' is undefined")
	}

	_, err := render(t, "{ editor.name }", post)
	require.EqualError(t, err, "variable 'editor.name' is undefined")
}

func TestNewValueStructIteratesFieldsInOrder(t *testing.T) {
	type pair struct {
		B string
		A int
	}
	assert.Equal(t, "x,1,", mustRender(t, "{ for v in p }{ v },{ end }", map[string]interface{}{"p": pair{"x", 1}}))
}

type upper string

func (u upper) String() string { return "UP:" + string(u) }

func TestNewValueScalars(t *testing.T) {
	data := map[string]interface{}{
		"i8":    int8(-8),
		"u16":   uint16(16),
		"f32":   float32(0.5),
		"bytes": []byte("<raw>"),
		"when":  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"str":   upper("a"),
		"ptr":   (*Author)(nil),
		"named": template.Raw("<i>"),
		"fn":    func() {},
	}

	out := mustRender(t, "{ i8 }|{ u16 }|{ f32 }|{ bytes }|{ when }|{ str }|{ named }|{ if ptr }set{ else }unset{ end }|{ if fn }fn{ end }", data)
	assert.Equal(t, "-8|16|0.5|&lt;raw&gt;|2024-01-02T03:04:05Z|UP:a|<i>|unset|", out)
}

func TestNewValueMapWithNonStringKeys(t *testing.T) {
	data := map[string]interface{}{"m": map[int]string{10: "ten", 2: "two"}}
	assert.Equal(t, "ten", mustRender(t, "{ m.10 }", data))
	// keys are ordered by their textual form
	assert.Equal(t, "ten,two,", mustRender(t, "{ for v in m }{ v },{ end }", data))
}

func TestNewValueNil(t *testing.T) {
	assert.Equal(t, template.Nil{}, datavalues.NewValue(nil))
	assert.Equal(t, template.Nil{}, datavalues.NewValue((*Author)(nil)))

	_, err := render(t, "{ x }", map[string]interface{}{"x": nil})
	require.EqualError(t, err, "variable 'x' is undefined")
}

func TestNewValueNilContainersAreEmpty(t *testing.T) {
	data := map[string]interface{}{
		"m":   map[string]int(nil),
		"s":   []string(nil),
		"any": []interface{}(nil),
	}

	assert.Equal(t, "m:|s:|any:", mustRender(t, "{ if m }m:{ end }{ for v in m }{ v }{ end }|{ if s }s:{ end }{ for v in s }{ v }{ end }|{ if any }any:{ end }{ for v in any }{ v }{ end }", data))

	_, err := render(t, "{ m.k }", data)
	require.EqualError(t, err, "variable 'm.k' is undefined")

	_, err = render(t, "{ s }", data)
	require.EqualError(t, err, "variable 's' is not injectable")
}

func TestNewValueJSONNumbersKeepSpelling(t *testing.T) {
	doc, err := datavalues.FromJSON([]byte(`{"price": 1.50, "hundred": 1e2, "zero": 0.0, "count": 3, "big": 18446744073709551615}`))
	require.NoError(t, err)

	assert.Equal(t, "1.50|1e2|3|18446744073709551615", mustRender(t, "{ price }|{ hundred }|{ count }|{ big }", doc))
	assert.Equal(t, "T,F", mustRender(t, "{ if price }T{ else }F{ end },{ if zero }T{ else }F{ end }", doc))

	_, err = render(t, "{ price.cents }", doc)
	require.EqualError(t, err, "variable 'price.cents' is undefined")

	_, err = render(t, "{ for d in price }{ end }", doc)
	require.EqualError(t, err, "variable 'price' is not iterable")
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filetests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimTrailingMultilineWhitespace(t *testing.T) {
	for _, testcase := range []struct {
		give, want string
	}{
		{
			give: `we want html`,
			want: `we want html`,
		},
		{
			give: `we want html `,
			want: `we want html`,
		},
		{
			give: `we want html	`,
			want: `we want html`,
		},
		{
			give: `we want html
`,
			want: `we want html`,
		},
		{
			give: `
we 
want	
html  `,
			want: `
we
want
html`,
		},
		{
			give: `
we

  want	
	yaml

`,
			want: `
we

  want
	yaml`,
		},
	} {
		assert.Equal(t, testcase.want, TrimTrailingMultilineWhitespace(testcase.give))
	}
}

func TestSplitTemplates(t *testing.T) {
	assert.Equal(t, []NamedTemplate{{Name: MainTemplate, Src: "hello\n{ x }"}}, SplitTemplates("hello\n{ x }"))

	section := "--- main\n<ul>{ include row }</ul>\n--- users/row\n<li>\n</li>"
	assert.Equal(t, []NamedTemplate{
		{Name: MainTemplate, Src: "<ul>{ include row }</ul>"},
		{Name: "users/row", Src: "<li>\n</li>"},
	}, SplitTemplates(section))
}

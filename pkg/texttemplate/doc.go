// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package texttemplate compiles brace-delimited template source into a
Template: a tree of Content, Inject, For, Cond and Include statements.

	Hello { user.name }!
	{ for item in items }<li>{ item }</li>{ end }
	{ if admin }[admin]{ else }[user]{ end }
	{ include footer with site }

'{{' and '}}' produce literal braces. Whitespace inside a directive is
insignificant. Paths are kept as written; dots are interpreted when the
template is rendered (see package template).
*/
package texttemplate

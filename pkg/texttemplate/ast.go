// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"
	"strings"
)

// Template is a compiled template: an ordered sequence of statements.
// It is immutable once returned by the parser and may be shared between
// concurrent renders.
type Template struct {
	body []Statement
}

// Statement is one of *Content, *Inject, *For, *Cond or *Include.
type Statement interface {
	statement()
}

// Content is literal text written verbatim.
type Content struct {
	Text string
}

// Inject writes the value at Path: `{ path }`.
type Inject struct {
	Path string
}

// For renders Body once per element of the collection at Path, with Var
// bound to the element: `{ for Var in Path } Body { end }`.
type For struct {
	Var  string
	Path string
	Body *Template
}

// Cond renders Then when Path is truthy, otherwise Else (which may be nil):
// `{ if Path } Then { else } Else { end }`.
type Cond struct {
	Path string
	Then *Template
	Else *Template
}

// Include renders the registered template Name. When With is not empty,
// paths inside the included template are resolved relative to With:
// `{ include Name with With }`.
type Include struct {
	Name string
	With string
}

var _ = []Statement{&Content{}, &Inject{}, &For{}, &Cond{}, &Include{}}

func (*Content) statement() {}
func (*Inject) statement()  {}
func (*For) statement()     {}
func (*Cond) statement()    {}
func (*Include) statement() {}

func newTemplate(body []Statement) *Template { return &Template{body: body} }

// Statements returns the template body. Callers must not modify it.
func (t *Template) Statements() []Statement { return t.body }

// DebugString prints the statement tree, one statement per line.
func (t *Template) DebugString() string {
	var sb strings.Builder
	t.debug(&sb, "")
	return sb.String()
}

func (t *Template) debug(sb *strings.Builder, indent string) {
	for _, stmt := range t.body {
		switch typedStmt := stmt.(type) {
		case *Content:
			fmt.Fprintf(sb, "%scontent %q\n", indent, typedStmt.Text)
		case *Inject:
			fmt.Fprintf(sb, "%sinject %s\n", indent, typedStmt.Path)
		case *For:
			fmt.Fprintf(sb, "%sfor %s in %s\n", indent, typedStmt.Var, typedStmt.Path)
			typedStmt.Body.debug(sb, indent+"  ")
		case *Cond:
			fmt.Fprintf(sb, "%sif %s\n", indent, typedStmt.Path)
			typedStmt.Then.debug(sb, indent+"  ")
			if typedStmt.Else != nil {
				fmt.Fprintf(sb, "%selse\n", indent)
				typedStmt.Else.debug(sb, indent+"  ")
			}
		case *Include:
			if len(typedStmt.With) > 0 {
				fmt.Fprintf(sb, "%sinclude %s with %s\n", indent, typedStmt.Name, typedStmt.With)
			} else {
				fmt.Fprintf(sb, "%sinclude %s\n", indent, typedStmt.Name)
			}
		default:
			panic(fmt.Sprintf("unknown statement type %T", typedStmt))
		}
	}
}

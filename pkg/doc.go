// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of tenjin.

Packages are layered; each one depends on the others only as far as it must.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

tenjin is built into two executable formats:

	./cmd/tenjin                  // a command-line tool
	./cmd/tenjin-lambda-website   // an AWS Lambda function serving the playground

	(2) => pkg/cmd => (6)
	(2) => pkg/cmd/render => (6)
	(1) => pkg/website => (0)

# The Workspace

A render run compiles every template file into a template.Registry, loads and
merges every data file, and renders the requested templates into output files.

	(2) => pkg/workspace => (5)
	(4) => pkg/files => (0)

# Templating

Template source is lexed and parsed into a small AST (text, inject, for, if,
include). The renderer walks the AST against a template.Context, writing
straight to an io.Writer.

	(5) => pkg/texttemplate => (1)
	(4) => pkg/template => (1)
	(1) => pkg/filepos => (0)

# Data

Host values become contexts either by implementing template.Context, by
building template.Fields / template.List, or through datavalues.NewValue,
which adapts Go values (via reflection) and decoded JSON, YAML, TOML and
Starlark documents.

	(3) => pkg/datavalues => (2)
	(3) => pkg/orderedmap => (0)

# Utilities

	(2) => pkg/cmd/ui => (0)
	(2) => pkg/version => (0)

# Dependencies

	pkg/cmd:
	- pkg/cmd/render
	- pkg/cmd/ui
	- pkg/files
	- pkg/version
	- pkg/website
	- pkg/workspace
	pkg/cmd/render:
	- pkg/cmd/ui
	- pkg/datavalues
	- pkg/files
	- pkg/orderedmap
	- pkg/workspace
	pkg/workspace:
	- pkg/datavalues
	- pkg/files
	- pkg/orderedmap
	- pkg/template
	- pkg/texttemplate
	pkg/datavalues:
	- pkg/orderedmap
	- pkg/template
	pkg/template:
	- pkg/texttemplate
	pkg/texttemplate:
	- pkg/filepos
*/
package pkg

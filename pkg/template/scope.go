// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"io"
)

// ForContext binds Name to Item for the body of a loop. Paths starting
// with Name resolve inside Item; all others go to Outer unchanged, so an
// inner loop shadows an outer loop variable of the same name.
type ForContext struct {
	Outer Context
	Item  Context
	Name  string
}

var _ Context = ForContext{}

func (c ForContext) Truthy(path Path) bool {
	if first, rest, ok := path.Deconstruct(); ok && first == c.Name {
		return c.Item.Truthy(rest)
	}
	return c.Outer.Truthy(path)
}

func (c ForContext) Inject(path Path, w io.Writer) error {
	if first, rest, ok := path.Deconstruct(); ok && first == c.Name {
		return Qualify(c.Item.Inject(rest, w), c.Name)
	}
	return c.Outer.Inject(path, w)
}

func (c ForContext) Iterate(path Path, chomp *Chomp) error {
	if first, rest, ok := path.Deconstruct(); ok && first == c.Name {
		return Qualify(c.Item.Iterate(rest, chomp), c.Name)
	}
	return c.Outer.Iterate(path, chomp)
}

// IncludeContext resolves every path relative to Base within Outer.
type IncludeContext struct {
	Outer Context
	Base  string
}

var _ Context = IncludeContext{}

func (c IncludeContext) Truthy(path Path) bool {
	return c.Outer.Truthy(path.Prepend(c.Base))
}

func (c IncludeContext) Inject(path Path, w io.Writer) error {
	return c.Outer.Inject(path.Prepend(c.Base), w)
}

func (c IncludeContext) Iterate(path Path, chomp *Chomp) error {
	return c.Outer.Iterate(path.Prepend(c.Base), chomp)
}

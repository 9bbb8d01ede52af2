// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"io"
	"strconv"
)

// Collection is a container whose children are addressed by a single
// path segment. Collect turns a Collection into a Context.
type Collection interface {
	Child(segment string) (Context, bool)

	// Each calls fn for every element in order and stops at the
	// first error.
	Each(fn func(item Context) error) error
}

// Collect adapts c to Context. A collection is truthy (even when empty),
// not injectable, and iterates over its elements.
func Collect(c Collection) Context { return collectionContext{c} }

type collectionContext struct {
	coll Collection
}

func (c collectionContext) Truthy(path Path) bool { return CollectionTruthy(c.coll, path) }

func (c collectionContext) Inject(path Path, w io.Writer) error {
	return CollectionInject(c.coll, path, w)
}

func (c collectionContext) Iterate(path Path, chomp *Chomp) error {
	return CollectionIterate(c.coll, path, chomp)
}

func CollectionTruthy(c Collection, path Path) bool {
	segment, rest, ok := path.Deconstruct()
	if !ok {
		return true
	}
	child, found := c.Child(segment)
	return found && child.Truthy(rest)
}

func CollectionInject(c Collection, path Path, w io.Writer) error {
	segment, rest, ok := path.Deconstruct()
	if !ok {
		return NotInjectable(path)
	}
	child, found := c.Child(segment)
	if !found {
		return Undefined(path)
	}
	return Qualify(child.Inject(rest, w), segment)
}

func CollectionIterate(c Collection, path Path, chomp *Chomp) error {
	segment, rest, ok := path.Deconstruct()
	if !ok {
		return c.Each(chomp.Chomp)
	}
	child, found := c.Child(segment)
	if !found {
		return Undefined(path)
	}
	return Qualify(child.Iterate(rest, chomp), segment)
}

// Field is a named member of Fields.
type Field struct {
	Name  string
	Value Context
}

// Fields is a record with fields in declaration order. Iterating a
// record yields the field values.
type Fields []Field

var _ Collection = Fields{}

func (f Fields) Child(segment string) (Context, bool) {
	for _, field := range f {
		if field.Name == segment {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) Each(fn func(Context) error) error {
	for _, field := range f {
		if err := fn(field.Value); err != nil {
			return err
		}
	}
	return nil
}

func (f Fields) Truthy(path Path) bool                 { return CollectionTruthy(f, path) }
func (f Fields) Inject(path Path, w io.Writer) error   { return CollectionInject(f, path, w) }
func (f Fields) Iterate(path Path, chomp *Chomp) error { return CollectionIterate(f, path, chomp) }

// List is a sequence addressed by zero-based numeric segments.
type List []Context

var _ Collection = List{}

func (l List) Child(segment string) (Context, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= len(l) {
		return nil, false
	}
	return l[idx], true
}

func (l List) Each(fn func(Context) error) error {
	for _, item := range l {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func (l List) Truthy(path Path) bool                 { return CollectionTruthy(l, path) }
func (l List) Inject(path Path, w io.Writer) error   { return CollectionInject(l, path, w) }
func (l List) Iterate(path Path, chomp *Chomp) error { return CollectionIterate(l, path, chomp) }

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"carvel.dev/tenjin/pkg/orderedmap"
	"carvel.dev/tenjin/pkg/template"
	"github.com/k14s/starlark-go/starlark"
)

// FromStarlark executes a Starlark program and returns its global
// bindings (in name order) as a document. Functions and names starting
// with '_' are private to the program.
func FromStarlark(name string, data []byte) (interface{}, error) {
	thread := &starlark.Thread{Name: "tenjin"}

	globals, err := starlark.ExecFile(thread, name, data, nil)
	if err != nil {
		return nil, fmt.Errorf("Executing Starlark: %w", err)
	}

	result := orderedmap.NewMap()
	for _, key := range globals.Keys() {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if _, isFunc := globals[key].(starlark.Callable); isFunc {
			continue
		}
		result.Set(key, globals[key])
	}
	return result, nil
}

// NewStarlarkValue adapts a Starlark value. Dicts and structs are records,
// lists and tuples are indexable, and any other iterable (e.g. a set) can
// only be looped over. Iteration goes through starlark.Iterate so nothing
// is copied.
func NewStarlarkValue(val starlark.Value) template.Context {
	switch typedVal := val.(type) {
	case nil, starlark.NoneType:
		return template.Nil{}

	case starlark.Bool:
		return template.Bool(bool(typedVal))

	case starlark.Int:
		if i, ok := typedVal.Int64(); ok {
			return template.Int(i)
		}
		return template.String(typedVal.String())

	case starlark.Float:
		return template.Float(float64(typedVal))

	case starlark.String:
		return template.String(string(typedVal))

	case *starlark.Dict:
		return template.Collect(starlarkDict{typedVal})

	case *starlark.Set:
		return template.Collect(starlarkIterable{typedVal})

	case starlark.Indexable:
		return template.Collect(starlarkIndexable{typedVal})

	case starlark.HasAttrs:
		return template.Collect(starlarkAttrs{typedVal})

	case starlark.Iterable:
		return template.Collect(starlarkIterable{typedVal})

	default:
		return template.String(typedVal.String())
	}
}

type starlarkDict struct {
	dict *starlark.Dict
}

func (d starlarkDict) Child(segment string) (template.Context, bool) {
	val, found, err := d.dict.Get(starlark.String(segment))
	if err != nil || !found {
		return nil, false
	}
	return NewStarlarkValue(val), true
}

// Each visits values in insertion order.
func (d starlarkDict) Each(fn func(template.Context) error) error {
	return iterateStarlark(d.dict, func(key starlark.Value) error {
		val, _, err := d.dict.Get(key)
		if err != nil {
			return err
		}
		return fn(NewStarlarkValue(val))
	})
}

type starlarkIndexable struct {
	seq starlark.Indexable
}

func (s starlarkIndexable) Child(segment string) (template.Context, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= s.seq.Len() {
		return nil, false
	}
	return NewStarlarkValue(s.seq.Index(idx)), true
}

func (s starlarkIndexable) Each(fn func(template.Context) error) error {
	for i := 0; i < s.seq.Len(); i++ {
		if err := fn(NewStarlarkValue(s.seq.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

type starlarkAttrs struct {
	obj starlark.HasAttrs
}

func (s starlarkAttrs) Child(segment string) (template.Context, bool) {
	val, err := s.obj.Attr(segment)
	if err != nil || val == nil {
		return nil, false
	}
	return NewStarlarkValue(val), true
}

// Each visits attributes in name order.
func (s starlarkAttrs) Each(fn func(template.Context) error) error {
	names := s.obj.AttrNames()
	sort.Strings(names)

	for _, name := range names {
		val, err := s.obj.Attr(name)
		if err != nil {
			return err
		}
		if err := fn(NewStarlarkValue(val)); err != nil {
			return err
		}
	}
	return nil
}

type starlarkIterable struct {
	iterable starlark.Iterable
}

func (s starlarkIterable) Child(string) (template.Context, bool) { return nil, false }

func (s starlarkIterable) Each(fn func(template.Context) error) error {
	return iterateStarlark(s.iterable, func(val starlark.Value) error {
		return fn(NewStarlarkValue(val))
	})
}

func iterateStarlark(iterable starlark.Iterable, fn func(starlark.Value) error) error {
	iter := iterable.Iterate()
	defer iter.Done()

	var val starlark.Value
	for iter.Next(&val) {
		if err := fn(val); err != nil {
			return err
		}
	}
	return nil
}

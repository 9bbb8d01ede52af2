// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"carvel.dev/tenjin/pkg/orderedmap"
	"carvel.dev/tenjin/pkg/template"
)

type orderedMap struct {
	m *orderedmap.Map
}

var _ template.Collection = orderedMap{}

func (m orderedMap) Child(segment string) (template.Context, bool) {
	val, found := m.m.Get(segment)
	if !found {
		return nil, false
	}
	return NewValue(val), true
}

func (m orderedMap) Each(fn func(template.Context) error) error {
	return m.m.IterateErr(func(_ string, v interface{}) error {
		return fn(NewValue(v))
	})
}

// list is a slice or an array
type list struct {
	rv reflect.Value
}

var _ template.Collection = list{}

func (l list) Child(segment string) (template.Context, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= l.rv.Len() {
		return nil, false
	}
	return newElem(l.rv.Index(idx)), true
}

func (l list) Each(fn func(template.Context) error) error {
	for i := 0; i < l.rv.Len(); i++ {
		if err := fn(newElem(l.rv.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

type goMap struct {
	rv reflect.Value
}

var _ template.Collection = goMap{}

func (m goMap) Child(segment string) (template.Context, bool) {
	keyType := m.rv.Type().Key()
	if keyType.Kind() == reflect.String {
		val := m.rv.MapIndex(reflect.ValueOf(segment).Convert(keyType))
		if !val.IsValid() {
			return nil, false
		}
		return newElem(val), true
	}
	for _, key := range m.rv.MapKeys() {
		if fmt.Sprint(key.Interface()) == segment {
			return newElem(m.rv.MapIndex(key)), true
		}
	}
	return nil, false
}

// Each visits values in order of their keys' textual form.
func (m goMap) Each(fn func(template.Context) error) error {
	keys := m.rv.MapKeys()
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = fmt.Sprint(key.Interface())
	}
	sort.Sort(byName{keys, names})

	for _, key := range keys {
		if err := fn(newElem(m.rv.MapIndex(key))); err != nil {
			return err
		}
	}
	return nil
}

type byName struct {
	keys  []reflect.Value
	names []string
}

func (b byName) Len() int           { return len(b.keys) }
func (b byName) Less(i, j int) bool { return b.names[i] < b.names[j] }
func (b byName) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.names[i], b.names[j] = b.names[j], b.names[i]
}

type structValue struct {
	rv     reflect.Value
	fields []structField
}

type structField struct {
	name     string
	index    []int
	raw      bool
	sanitize bool
}

var (
	_ template.Collection = structValue{}

	structFieldsCache sync.Map // reflect.Type -> []structField
)

func newStruct(rv reflect.Value) structValue {
	return structValue{rv: rv, fields: structFields(rv.Type())}
}

func (s structValue) Child(segment string) (template.Context, bool) {
	for _, field := range s.fields {
		if field.name == segment {
			return s.value(field), true
		}
	}
	return nil, false
}

func (s structValue) Each(fn func(template.Context) error) error {
	for _, field := range s.fields {
		if err := fn(s.value(field)); err != nil {
			return err
		}
	}
	return nil
}

func (s structValue) value(field structField) template.Context {
	rv, err := s.rv.FieldByIndexErr(field.index)
	if err != nil {
		// nil embedded pointer
		return template.Nil{}
	}
	if (field.raw || field.sanitize) && rv.Kind() == reflect.String {
		if field.raw {
			return template.Raw(rv.String())
		}
		return Sanitized{HTML: rv.String()}
	}
	return newElem(rv)
}

func structFields(t reflect.Type) []structField {
	if cached, found := structFieldsCache.Load(t); found {
		return cached.([]structField)
	}

	var fields []structField

	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}

		name := field.Name
		var opts []string

		if tag, found := field.Tag.Lookup("tenjin"); found {
			if tag == "-" {
				continue
			}
			pieces := strings.Split(tag, ",")
			if len(pieces[0]) > 0 {
				name = pieces[0]
			}
			opts = pieces[1:]
		}

		sf := structField{name: name, index: field.Index}
		for _, opt := range opts {
			switch opt {
			case "raw":
				sf.raw = true
			case "sanitize":
				sf.sanitize = true
			}
		}
		fields = append(fields, sf)
	}

	structFieldsCache.Store(t, fields)
	return fields
}

// newElem adapts a value reached through reflection. Values of unexported
// types cannot be turned back into interfaces, so they stay on the
// reflection path.
func newElem(rv reflect.Value) template.Context {
	if rv.CanInterface() {
		return NewValue(rv.Interface())
	}
	return newReflectValue(rv)
}

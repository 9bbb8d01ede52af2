// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"carvel.dev/tenjin/pkg/orderedmap"
	"carvel.dev/tenjin/pkg/template"
	"github.com/k14s/starlark-go/starlark"
)

// NewValue adapts any Go value to template.Context. Containers are
// wrapped, not copied, and their elements are adapted on access.
//
// nil, nil pointers and nil interfaces are absent (falsy, undefined on
// access). Nil maps and slices are empty containers: truthy, iterating
// nothing. JSON numbers that are not integers keep their source
// spelling when injected ("1.50" stays "1.50").
func NewValue(val interface{}) template.Context {
	switch typedVal := val.(type) {
	case template.Context:
		return typedVal

	case nil:
		return template.Nil{}

	case string:
		return template.String(typedVal)

	case bool:
		return template.Bool(typedVal)

	case int:
		return template.Int(typedVal)

	case int64:
		return template.Int(typedVal)

	case uint64:
		return template.Uint(typedVal)

	case float64:
		return template.Float(typedVal)

	case json.Number:
		if i, err := typedVal.Int64(); err == nil {
			return template.Int(i)
		}
		if u, err := strconv.ParseUint(typedVal.String(), 10, 64); err == nil {
			return template.Uint(u)
		}
		if f, err := typedVal.Float64(); err == nil {
			return jsonNumber{template.Float(f), typedVal.String()}
		}
		return template.String(typedVal.String())

	case *orderedmap.Map:
		if typedVal == nil {
			return template.Nil{}
		}
		return template.Collect(orderedMap{typedVal})

	case []interface{}:
		return template.Collect(list{reflect.ValueOf(typedVal)})

	case starlark.Value:
		return NewStarlarkValue(typedVal)

	case time.Time:
		return template.String(typedVal.Format(time.RFC3339))

	case fmt.Stringer:
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return template.Nil{}
		}
		return template.String(typedVal.String())
	}

	return newReflectValue(reflect.ValueOf(val))
}

// jsonNumber is truthy like its float value but injects its source text.
type jsonNumber struct {
	template.Float
	text string
}

func (n jsonNumber) Inject(path template.Path, w io.Writer) error {
	return template.Raw(n.text).Inject(path, w)
}

func newReflectValue(rv reflect.Value) template.Context {
	switch rv.Kind() {
	case reflect.Invalid:
		return template.Nil{}

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return template.Nil{}
		}
		return newElem(rv.Elem())

	case reflect.Bool:
		return template.Bool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return template.Int(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return template.Uint(rv.Uint())

	case reflect.Float32, reflect.Float64:
		return template.Float(rv.Float())

	case reflect.String:
		return template.String(rv.String())

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return template.String(string(rv.Bytes()))
		}
		return template.Collect(list{rv})

	case reflect.Array:
		return template.Collect(list{rv})

	case reflect.Map:
		return template.Collect(goMap{rv})

	case reflect.Struct:
		return template.Collect(newStruct(rv))

	case reflect.Complex64, reflect.Complex128:
		return template.String(fmt.Sprint(rv.Interface()))

	default:
		// chan, func, unsafe pointer
		return template.Nil{}
	}
}

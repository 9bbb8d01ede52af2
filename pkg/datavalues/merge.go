// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"strings"

	"carvel.dev/tenjin/pkg/orderedmap"
)

// Merge combines documents left to right into a new document. Maps are
// merged key by key (keeping the position of the first occurrence);
// any other value is replaced by the later one. Inputs are not modified.
func Merge(docs ...interface{}) interface{} {
	var result interface{} = orderedmap.NewMap()
	for _, doc := range docs {
		result = merge(result, doc)
	}
	return result
}

func merge(left, right interface{}) interface{} {
	leftMap, leftOk := left.(*orderedmap.Map)
	rightMap, rightOk := right.(*orderedmap.Map)
	if !leftOk || !rightOk {
		return right
	}

	result := orderedmap.NewMap()
	leftMap.Iterate(func(k string, v interface{}) {
		result.Set(k, v)
	})
	rightMap.Iterate(func(k string, v interface{}) {
		if existing, found := result.Get(k); found {
			result.Set(k, merge(existing, v))
		} else {
			result.Set(k, v)
		}
	})
	return result
}

// SetPath sets a dotted key path (e.g. "site.author.name") in doc,
// creating intermediate maps as needed.
func SetPath(doc *orderedmap.Map, path string, val interface{}) error {
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if len(segment) == 0 {
			return fmt.Errorf("Expected key path '%s' to not contain empty segments", path)
		}
	}

	current := doc
	for i, segment := range segments[:len(segments)-1] {
		existing, found := current.Get(segment)
		if !found {
			next := orderedmap.NewMap()
			current.Set(segment, next)
			current = next
			continue
		}
		next, ok := existing.(*orderedmap.Map)
		if !ok {
			return fmt.Errorf("Expected '%s' to be a map to set key path '%s'",
				strings.Join(segments[:i+1], "."), path)
		}
		current = next
	}

	current.Set(segments[len(segments)-1], val)
	return nil
}

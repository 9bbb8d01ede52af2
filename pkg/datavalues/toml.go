// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"sort"

	"carvel.dev/tenjin/pkg/orderedmap"
	"github.com/BurntSushi/toml"
)

// FromTOML decodes a TOML document. Keys are ordered as they appear in
// the document, except inside arrays of tables and inline tables where
// they may be sorted.
func FromTOML(data []byte) (interface{}, error) {
	var raw map[string]interface{}

	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling TOML: %w", err)
	}

	result := orderedmap.NewMap()

	for _, key := range md.Keys() {
		val, found := lookupTOMLKey(raw, key)
		if !found {
			// inside an array of tables
			continue
		}

		parent := tomlParent(result, key[:len(key)-1])
		if parent == nil {
			continue
		}
		name := key[len(key)-1]

		if _, isTable := val.(map[string]interface{}); isTable {
			if _, found := parent.Get(name); !found {
				parent.Set(name, orderedmap.NewMap())
			}
			continue
		}
		parent.Set(name, orderedmap.Conversion{Object: val}.FromUnorderedMaps())
	}

	fillMissingTOMLKeys(result, raw)

	return result, nil
}

// fillMissingTOMLKeys adds keys the metadata did not report (in sorted order).
func fillMissingTOMLKeys(ordered *orderedmap.Map, raw map[string]interface{}) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		existing, found := ordered.Get(key)
		if !found {
			ordered.Set(key, orderedmap.Conversion{Object: raw[key]}.FromUnorderedMaps())
			continue
		}
		existingMap, isOrdered := existing.(*orderedmap.Map)
		rawMap, isRaw := raw[key].(map[string]interface{})
		if isOrdered && isRaw {
			fillMissingTOMLKeys(existingMap, rawMap)
		}
	}
}

func lookupTOMLKey(raw map[string]interface{}, key toml.Key) (interface{}, bool) {
	var current interface{} = raw
	for _, segment := range key {
		table, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = table[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func tomlParent(root *orderedmap.Map, key toml.Key) *orderedmap.Map {
	current := root
	for _, segment := range key {
		val, found := current.Get(segment)
		if !found {
			next := orderedmap.NewMap()
			current.Set(segment, next)
			current = next
			continue
		}
		next, ok := val.(*orderedmap.Map)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decode picks a decoder by the extension of name.
func Decode(name string, data []byte) (interface{}, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".toml":
		return FromTOML(data)
	case ".star":
		return FromStarlark(name, data)
	default:
		return nil, fmt.Errorf("Unknown data file format for '%s' (expected .json, .yaml, .yml, .toml or .star)", name)
	}
}

// IsDataFile reports whether Decode understands the extension of name.
func IsDataFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml", ".star":
		return true
	}
	return false
}

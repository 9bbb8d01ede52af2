// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"

	"carvel.dev/tenjin/pkg/orderedmap"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes the first YAML document keeping mapping key order.
// An empty document decodes to an empty map.
func FromYAML(data []byte) (interface{}, error) {
	var node yaml.Node

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling YAML: %w", err)
	}

	if node.Kind == 0 {
		return orderedmap.NewMap(), nil
	}

	val, err := convertYAMLNode(&node)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling YAML: %w", err)
	}
	return val, nil
}

func convertYAMLNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return orderedmap.NewMap(), nil
		}
		return convertYAMLNode(node.Content[0])

	case yaml.MappingNode:
		result := orderedmap.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: expected map key to be a scalar", keyNode.Line)
			}
			val, err := convertYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			result.Set(keyNode.Value, val)
		}
		return result, nil

	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, itemNode := range node.Content {
			val, err := convertYAMLNode(itemNode)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case yaml.AliasNode:
		return convertYAMLNode(node.Alias)

	case yaml.ScalarNode:
		var val interface{}
		if err := node.Decode(&val); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return val, nil

	default:
		return nil, fmt.Errorf("line %d: unknown YAML node kind %d", node.Line, node.Kind)
	}
}

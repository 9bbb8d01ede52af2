// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"carvel.dev/tenjin/pkg/orderedmap"
)

// FromJSON decodes a JSON document keeping object key order. Numbers are
// kept as json.Number so integers do not turn into floats.
func FromJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	val, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling JSON: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("Unmarshaling JSON: expected end of document")
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		result := orderedmap.NewMap()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, found %v", keyTok)
			}
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return result, nil

	case '[':
		result := []interface{}{}
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unexpected %v", delim)
	}
}

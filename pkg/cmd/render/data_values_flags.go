// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"strings"

	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/orderedmap"
	"carvel.dev/tenjin/pkg/workspace"
	"github.com/spf13/cobra"
)

type DataValuesFlags struct {
	FromFiles []string

	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromFiles   []string

	EnvironFunc  func() []string
	ReadFileFunc func(string) ([]byte, error)
}

func (s *DataValuesFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&s.FromFiles, "data-values-file", nil, "Load data values from file (.json, .yaml, .yml, .toml or .star) (can be specified multiple times)")

	cmd.Flags().StringArrayVar(&s.EnvFromStrings, "data-values-env", nil, "Extract data values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.EnvFromYAML, "data-values-env-yaml", nil, "Extract data values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	cmd.Flags().StringArrayVarP(&s.KVsFromStrings, "data-value", "v", nil, "Set specific data value to given value, as string (format: all.key1.subkey=123) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.KVsFromYAML, "data-value-yaml", nil, "Set specific data value to given value, parsed as YAML (format: all.key1.subkey=true) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.KVsFromFiles, "data-value-file", nil, "Set specific data value to given file contents, as string (format: all.key1.subkey=/file/path) (can be specified multiple times)")
}

type dataValuesFlagsSource struct {
	Values        []string
	TransformFunc func(string) (interface{}, error)
}

type keyValue struct {
	Key   string
	Value interface{}
}

// Apply merges data values files into doc, then sets the individual
// values given via env and KV flags. Later sources win.
func (s *DataValuesFlags) Apply(doc *orderedmap.Map, ui cmdui.UI) (*orderedmap.Map, error) {
	if len(s.FromFiles) > 0 {
		fs, err := files.NewFiles(s.FromFiles, files.NewFilesOpts{})
		if err != nil {
			return nil, err
		}

		fromFiles, err := workspace.NewDataLoader(ui, "").LoadFiles(fs)
		if err != nil {
			return nil, err
		}

		doc = datavalues.Merge(doc, fromFiles).(*orderedmap.Map)
	}

	kvs, err := s.values()
	if err != nil {
		return nil, err
	}

	if len(kvs) > 0 && doc == nil {
		doc = orderedmap.NewMap()
	}

	for _, kv := range kvs {
		ui.Debugf("setting data value '%s'\n", kv.Key)

		err := datavalues.SetPath(doc, kv.Key, kv.Value)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (s *DataValuesFlags) values() ([]keyValue, error) {
	plainValFunc := func(rawVal string) (interface{}, error) { return rawVal, nil }

	yamlValFunc := func(rawVal string) (interface{}, error) {
		val, err := s.parseYAML(rawVal)
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		return val, nil
	}

	var result []keyValue

	for _, src := range []dataValuesFlagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data values from env under prefix '%s': %s", envPrefix, err)
			}
			result = append(result, vals...)
		}
	}

	// KVs and files take precedence over environment variables
	for _, src := range []dataValuesFlagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}} {
		for _, kv := range src.Values {
			val, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data value from KV: %s", err)
			}
			result = append(result, val)
		}
	}

	for _, file := range s.KVsFromFiles {
		val, err := s.file(file)
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from file: %s", err)
		}
		result = append(result, val)
	}

	return result, nil
}

func (s *DataValuesFlags) env(prefix string, valueFunc func(string) (interface{}, error)) ([]keyValue, error) {
	envVars := os.Environ
	if s.EnvironFunc != nil {
		envVars = s.EnvironFunc
	}

	var result []keyValue

	for _, envVar := range envVars() {
		pieces := strings.SplitN(envVar, "=", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from env variable '%s': %s", pieces[0], err)
		}

		// '__' gets translated into a '.' since periods may not be liked by shells
		key := strings.Replace(strings.TrimPrefix(pieces[0], prefix+"_"), "__", ".", -1)
		result = append(result, keyValue{key, val})
	}

	return result, nil
}

func (s *DataValuesFlags) kv(kv string, valueFunc func(string) (interface{}, error)) (keyValue, error) {
	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return keyValue{}, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return keyValue{}, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	return keyValue{pieces[0], val}, nil
}

func (s *DataValuesFlags) parseYAML(data string) (interface{}, error) {
	if len(strings.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return datavalues.FromYAML([]byte(data))
}

func (s *DataValuesFlags) file(kv string) (keyValue, error) {
	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return keyValue{}, fmt.Errorf("Expected format key=/file/path")
	}

	readFile := os.ReadFile
	if s.ReadFileFunc != nil {
		readFile = s.ReadFileFunc
	}

	contents, err := readFile(pieces[1])
	if err != nil {
		return keyValue{}, fmt.Errorf("Reading file '%s': %s", pieces[1], err)
	}

	return keyValue{pieces[0], string(contents)}, nil
}

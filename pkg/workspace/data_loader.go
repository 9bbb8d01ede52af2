// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"

	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/files"
	"carvel.dev/tenjin/pkg/orderedmap"
)

type DataLoader struct {
	ui          files.UI
	templateExt string
}

func NewDataLoader(ui files.UI, templateExt string) *DataLoader {
	if len(templateExt) == 0 {
		templateExt = files.DefaultTemplateExt
	}
	return &DataLoader{ui, templateExt}
}

// Load decodes every data file and merges them in order (later files win).
// Templates and unknown files are skipped.
func (l *DataLoader) Load(fs []*files.File) (*orderedmap.Map, error) {
	var docs []interface{}

	for _, file := range fs {
		if !file.Type(l.templateExt).IsData() {
			continue
		}

		doc, err := l.decode(file)
		if err != nil {
			return nil, err
		}

		l.ui.Debugf("loaded data from %s\n", file.Description())
		docs = append(docs, doc)
	}

	return l.merge(docs)
}

// LoadFiles decodes the given data files regardless of the template
// extension (e.g. files passed with --data-values-file).
func (l *DataLoader) LoadFiles(fs []*files.File) (*orderedmap.Map, error) {
	var docs []interface{}

	for _, file := range fs {
		doc, err := l.decode(file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return l.merge(docs)
}

func (l *DataLoader) decode(file *files.File) (interface{}, error) {
	bs, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", file.Description(), err)
	}

	doc, err := datavalues.Decode(file.RelativePath(), bs)
	if err != nil {
		return nil, fmt.Errorf("Loading data from %s: %w", file.Description(), err)
	}
	return doc, nil
}

func (l *DataLoader) merge(docs []interface{}) (*orderedmap.Map, error) {
	for i, doc := range docs {
		if _, ok := doc.(*orderedmap.Map); !ok {
			return nil, fmt.Errorf("Expected data document %d to be a map, but was %T", i+1, doc)
		}
	}
	return datavalues.Merge(docs...).(*orderedmap.Map), nil
}

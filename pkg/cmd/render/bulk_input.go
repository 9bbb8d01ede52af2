// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"fmt"

	cmdui "carvel.dev/tenjin/pkg/cmd/ui"
	"carvel.dev/tenjin/pkg/files"
	"github.com/spf13/cobra"
)

type BulkFilesSourceOpts struct {
	bulkIn  string
	bulkOut bool
}

func (s *BulkFilesSourceOpts) Set(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.bulkIn, "bulk-in", "", "Accept files in bulk format")
	cmd.Flags().BoolVar(&s.bulkOut, "bulk-out", false, "Output files in bulk format")
}

type BulkFilesSource struct {
	opts BulkFilesSourceOpts
	ui   cmdui.UI
}

type BulkFiles struct {
	Files  []BulkFile `json:"files,omitempty"`
	Errors string     `json:"errors,omitempty"`
}

type BulkFile struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

func NewBulkFilesSource(opts BulkFilesSourceOpts, ui cmdui.UI) *BulkFilesSource {
	return &BulkFilesSource{opts, ui}
}

func (s *BulkFilesSource) HasInput() bool  { return len(s.opts.bulkIn) > 0 }
func (s *BulkFilesSource) HasOutput() bool { return s.opts.bulkOut }

func (s BulkFilesSource) Input() (Input, error) {
	return NewBulkInput([]byte(s.opts.bulkIn))
}

func (s *BulkFilesSource) Output(out Output) error {
	resultBytes, err := NewBulkOutput(out)
	if err != nil {
		return err
	}

	s.ui.Debugf("### result\n")
	s.ui.Printf("%s", resultBytes)

	return nil
}

// NewBulkInput turns a bulk JSON document into input files.
// File order is kept; later data files override earlier ones.
func NewBulkInput(data []byte) (Input, error) {
	var fs BulkFiles

	err := json.Unmarshal(data, &fs)
	if err != nil {
		return Input{}, fmt.Errorf("Unmarshaling bulk files: %s", err)
	}

	var result []*files.File

	for _, f := range fs.Files {
		file, err := files.NewFileFromSource(files.NewBytesSource(f.Name, []byte(f.Data)))
		if err != nil {
			return Input{}, err
		}

		result = append(result, file)
	}

	return Input{Files: result}, nil
}

// NewBulkOutput serializes rendered files, or the error, as bulk JSON.
func NewBulkOutput(out Output) ([]byte, error) {
	fs := BulkFiles{}

	if out.Err != nil {
		fs.Errors = out.Err.Error()
	}

	for _, outputFile := range out.Files {
		fs.Files = append(fs.Files, BulkFile{
			Name: outputFile.RelativePath(),
			Data: string(outputFile.Bytes()),
		})
	}

	return json.Marshal(fs)
}

// RunWithBulk renders bulk JSON input and returns bulk JSON output.
// Rendering errors are reported inside the output document.
func (o *Options) RunWithBulk(data []byte, ui cmdui.UI) ([]byte, error) {
	in, err := NewBulkInput(data)
	if err != nil {
		return nil, err
	}
	return NewBulkOutput(o.RunWithFiles(in, ui))
}

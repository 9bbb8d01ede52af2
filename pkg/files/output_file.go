// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type OutputFile struct {
	relativePath string
	data         []byte
}

func NewOutputFile(relativePath string, data []byte) OutputFile {
	return OutputFile{relativePath, data}
}

func (f OutputFile) RelativePath() string { return f.relativePath }
func (f OutputFile) Bytes() []byte        { return f.data }

func (f OutputFile) Path(dirPath string) string {
	return filepath.Join(dirPath, filepath.FromSlash(f.relativePath))
}

// Create writes the file under dirPath. Readers never observe a partially
// written file.
func (f OutputFile) Create(dirPath string) error {
	resultPath := f.Path(dirPath)

	err := os.MkdirAll(filepath.Dir(resultPath), 0700)
	if err != nil {
		return err
	}

	return atomic.WriteFile(resultPath, bytes.NewReader(f.data))
}

// WriteConcatenated writes the contents of all files to w in order,
// separating files that do not end with a newline.
func WriteConcatenated(w io.Writer, files []OutputFile) error {
	for _, file := range files {
		data := file.Bytes()
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

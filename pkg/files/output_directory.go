// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// OutputDirectory holds rendered templates, one file per template at
// its template path (e.g. "users/row.html").
type OutputDirectory struct {
	path    string
	outputs []OutputFile
	ui      UI
}

func NewOutputDirectory(path string, outputs []OutputFile, ui UI) *OutputDirectory {
	return &OutputDirectory{path, outputs, ui}
}

// Write replaces the directory contents with the rendered files. All
// destinations are checked before anything on disk is touched.
func (d *OutputDirectory) Write() error {
	err := d.checkDirectory()
	if err != nil {
		return err
	}

	err = d.checkDestinations()
	if err != nil {
		return err
	}

	err = os.RemoveAll(d.path)
	if err != nil {
		return fmt.Errorf("Clearing output directory '%s': %s", d.path, err)
	}

	for _, output := range d.outputs {
		err := output.Create(d.path)
		if err != nil {
			return fmt.Errorf("Writing rendered file '%s': %s", output.RelativePath(), err)
		}
		d.ui.Printf("rendered: %s\n", output.Path(d.path))
	}

	d.ui.Debugf("wrote %d files to %s\n", len(d.outputs), d.path)

	return nil
}

// checkDirectory refuses directories whose removal would take the
// templates or their data with it.
func (d *OutputDirectory) checkDirectory() error {
	cleanPath := filepath.Clean(d.path)
	if len(d.path) == 0 || cleanPath == "." || cleanPath == string(filepath.Separator) {
		return fmt.Errorf("Expected output directory to be a dedicated directory, but was '%s'", d.path)
	}
	return nil
}

func (d *OutputDirectory) checkDestinations() error {
	seen := map[string]struct{}{}

	for _, output := range d.outputs {
		relPath := output.RelativePath()
		cleanPath := path.Clean(relPath)

		if path.IsAbs(cleanPath) || cleanPath == "." || cleanPath == ".." || strings.HasPrefix(cleanPath, "../") {
			return fmt.Errorf("Expected rendered file '%s' to stay within output directory", relPath)
		}
		if _, found := seen[cleanPath]; found {
			return fmt.Errorf("Multiple templates render to the same output path: %s", cleanPath)
		}
		seen[cleanPath] = struct{}{}
	}

	return nil
}

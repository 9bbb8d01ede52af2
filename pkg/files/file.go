// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTemplateExt is the extension of template files unless configured otherwise.
const DefaultTemplateExt = ".html"

var (
	jsonExts     = []string{".json"}
	yamlExts     = []string{".yaml", ".yml"}
	tomlExts     = []string{".toml"}
	starlarkExts = []string{".star"}
)

type Type int

const (
	TypeUnknown Type = iota
	TypeTemplate
	TypeJSON
	TypeYAML
	TypeTOML
	TypeStarlark
)

func (t Type) IsData() bool {
	return t == TypeJSON || t == TypeYAML || t == TypeTOML || t == TypeStarlark
}

type File struct {
	src     Source
	relPath string
}

type NewFilesOpts struct {
	// Recursive allows directories; their files are included in sorted order.
	Recursive bool
	// StdinRelativePath is the relative path given to input read from '-'.
	StdinRelativePath string
}

func NewFiles(paths []string, opts NewFilesOpts) ([]*File, error) {
	var fileSrcs []Source

	for _, path := range paths {
		switch {
		case path == "-":
			stdinPath := opts.StdinRelativePath
			if stdinPath == "" {
				stdinPath = "stdin" + DefaultTemplateExt
			}
			fileSrcs = append(fileSrcs, NewStdinSource(stdinPath))

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			fileSrcs = append(fileSrcs, NewCachedSource(NewHTTPSource(path)))

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			if fileInfo.IsDir() {
				if !opts.Recursive {
					return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
				}

				var selectedPaths []string

				err := filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
					if err != nil || fi.IsDir() {
						return err
					}
					selectedPaths = append(selectedPaths, walkedPath)
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %s", path, err)
				}

				sort.Strings(selectedPaths)

				for _, selectedPath := range selectedPaths {
					fileSrcs = append(fileSrcs, NewLocalSource(selectedPath, path))
				}
			} else {
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

// NewFileFromSource creates a File; its relative path always uses '/'.
func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: filepath.ToSlash(relPath)}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

// Type classifies the file by extension. Template extension wins over
// data extensions (e.g. with --template-ext=.json).
func (r *File) Type(templateExt string) Type {
	switch {
	case r.matchesExt([]string{templateExt}):
		return TypeTemplate
	case r.matchesExt(jsonExts):
		return TypeJSON
	case r.matchesExt(yamlExts):
		return TypeYAML
	case r.matchesExt(tomlExts):
		return TypeTOML
	case r.matchesExt(starlarkExts):
		return TypeStarlark
	default:
		return TypeUnknown
	}
}

func (r *File) IsTemplate(templateExt string) bool { return r.Type(templateExt) == TypeTemplate }

// TemplateName is the name a template is registered (and included) under:
// its relative path without the template extension, e.g. "users/row".
func (r *File) TemplateName(templateExt string) string {
	if !r.IsTemplate(templateExt) {
		return r.relPath
	}
	return r.relPath[:len(r.relPath)-len(templateExt)]
}

func (r *File) matchesExt(exts []string) bool {
	filename := strings.ToLower(filepath.Base(r.RelativePath()))
	for _, ext := range exts {
		if len(ext) > 0 && strings.HasSuffix(filename, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

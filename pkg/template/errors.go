// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
)

var (
	ErrUndefined        = errors.New("is undefined")
	ErrNotInjectable    = errors.New("is not injectable")
	ErrNotIterable      = errors.New("is not iterable")
	ErrTemplateNotFound = errors.New("template not found")
	ErrIncludeTooDeep   = errors.New("includes nested too deeply")
)

// PathError records a failed lookup and the full path that failed,
// as written in the template.
type PathError struct {
	Err  error
	Path string

	// set once the error leaves a loop body so that enclosing
	// contexts do not qualify it any further
	settled bool
}

func (e *PathError) Error() string {
	return fmt.Sprintf("variable '%s' %s", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func Undefined(path Path) error     { return &PathError{Err: ErrUndefined, Path: path.String()} }
func NotInjectable(path Path) error { return &PathError{Err: ErrNotInjectable, Path: path.String()} }
func NotIterable(path Path) error   { return &PathError{Err: ErrNotIterable, Path: path.String()} }

// Qualify prefixes segment onto the path of a PathError returned by a
// nested context, so that the error names the path the caller was given.
// Other errors are returned unchanged.
func Qualify(err error, segment string) error {
	pathErr, ok := err.(*PathError)
	if !ok || pathErr.settled {
		return err
	}
	path := segment
	if len(pathErr.Path) > 0 {
		path += string(Separator) + pathErr.Path
	}
	return &PathError{Err: pathErr.Err, Path: path}
}

func settle(err error) error {
	if pathErr, ok := err.(*PathError); ok && !pathErr.settled {
		return &PathError{Err: pathErr.Err, Path: pathErr.Path, settled: true}
	}
	return err
}

type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template '%s' not found", e.Name)
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrTemplateNotFound }

// IncludeDepthError is returned when an include would nest deeper than
// RendererOpts.MaxIncludeDepth allows.
type IncludeDepthError struct {
	Name     string
	MaxDepth int
}

func (e *IncludeDepthError) Error() string {
	return fmt.Sprintf("including template '%s' exceeds maximum include depth of %d", e.Name, e.MaxDepth)
}

func (e *IncludeDepthError) Unwrap() error { return ErrIncludeTooDeep }

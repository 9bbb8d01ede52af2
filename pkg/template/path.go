// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"
)

const Separator = '.'

// Path is a dotted variable path. It is a chain of dotted strings so that
// prefixing a path (for includes) shares the original instead of building
// a new string. Empty segments are ignored.
type Path struct {
	chunk string
	rest  *Path
}

func NewPath(dotted string) Path { return Path{chunk: dotted} }

// Prepend returns a path that starts with segment (itself possibly dotted)
// followed by p.
func (p Path) Prepend(segment string) Path {
	tail := p
	return Path{chunk: segment, rest: &tail}
}

// Deconstruct splits off the first segment. ok is false once the path has
// no segments left.
func (p Path) Deconstruct() (first string, rest Path, ok bool) {
	for {
		chunk := strings.TrimLeft(p.chunk, string(Separator))
		if len(chunk) > 0 {
			idx := strings.IndexByte(chunk, Separator)
			if idx < 0 {
				if p.rest == nil {
					return chunk, Path{}, true
				}
				return chunk, *p.rest, true
			}
			return chunk[:idx], Path{chunk: chunk[idx+1:], rest: p.rest}, true
		}
		if p.rest == nil {
			return "", Path{}, false
		}
		p = *p.rest
	}
}

func (p Path) IsEmpty() bool {
	_, _, ok := p.Deconstruct()
	return !ok
}

// Segments returns all segments of the path.
func (p Path) Segments() []string {
	var result []string
	for {
		first, rest, ok := p.Deconstruct()
		if !ok {
			return result
		}
		result = append(result, first)
		p = rest
	}
}

// String joins the segments with the separator. Only used for
// error reporting and debugging.
func (p Path) String() string {
	return strings.Join(p.Segments(), string(Separator))
}

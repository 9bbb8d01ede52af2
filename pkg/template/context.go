// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"io"
)

// Context is a data source templates are rendered against. Each method
// receives the path relative to the receiver; an empty path addresses the
// receiver itself.
type Context interface {
	// Truthy reports whether the value at path is set and non-zero.
	// Containers are truthy even when empty. Missing values are falsy.
	Truthy(path Path) bool

	// Inject writes the textual form of the scalar at path.
	// Fails with ErrUndefined or ErrNotInjectable (see PathError).
	Inject(path Path, w io.Writer) error

	// Iterate calls chomp.Chomp for each element of the collection at path,
	// in order, stopping at the first error.
	// Fails with ErrUndefined or ErrNotIterable (see PathError).
	Iterate(path Path, chomp *Chomp) error
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Stdin backs the '-' file argument.
var Stdin = NewOnceReader(os.Stdin)

// OnceReader lets a stream be consumed by a single source. Reading it a
// second time fails instead of returning nothing.
type OnceReader struct {
	mu   sync.Mutex
	r    io.Reader
	read bool
}

func NewOnceReader(r io.Reader) *OnceReader { return &OnceReader{r: r} }

func (o *OnceReader) ReadAll() ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.read {
		return nil, fmt.Errorf("Standard input has already been read, has the '-' argument been used more than once?")
	}
	o.read = true

	return io.ReadAll(o.r)
}

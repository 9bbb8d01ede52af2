// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"io"
)

// UI is what commands use to talk to the user. It is a superset of
// files.UI so it can be handed to loaders and output directories.
type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
	DebugWriter() io.Writer
	Writer() io.Writer
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"

	"carvel.dev/tenjin/pkg/filepos"
)

// UnexpectedError is returned when the parser finds a symbol the grammar
// does not allow at that point. Found is "nothing" at end of input.
type UnexpectedError struct {
	Expected string
	Found    string
	Position *filepos.Position
}

func (e *UnexpectedError) Error() string {
	msg := fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	if e.Position.IsKnown() {
		msg += " (" + e.Position.AsCompactString() + ")"
	}
	return msg
}

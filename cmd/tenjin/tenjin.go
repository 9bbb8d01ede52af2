// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"carvel.dev/tenjin/pkg/cmd"
	uierrs "github.com/cppforlife/go-cli-ui/errors"
)

func main() {
	command := cmd.NewDefaultTenjinCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenjin: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}

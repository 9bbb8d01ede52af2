// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to the full set of tenjin's "commands" -- instances of cobra.Command
(not to be confused with ./cmd which contains the bootstrapping for executing tenjin in various environments).

For a list of commands run:

	$ tenjin help

The default command is "render".
*/
package cmd

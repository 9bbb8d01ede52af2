// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	cmdrender "carvel.dev/tenjin/pkg/cmd/render"
	"carvel.dev/tenjin/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

func NewDefaultTenjinCmd() *cobra.Command {
	cmd := cmdrender.NewCmd(cmdrender.NewOptions())

	cmd.Use = "tenjin"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "tenjin renders brace templates with data"
	cmd.Long = `tenjin renders brace templates with data.

Templates use '{ path }' to inject values, '{ for x in path }...{ end }' to loop,
'{ if path }...{ else }...{ end }' for conditions and '{ include name with path }'
to render another template. Write '{{' and '}}' for literal braces.

Data comes from .json, .yaml, .yml, .toml and .star files given alongside templates,
from --data-values-file, and from individual --data-value flags.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdrender.NewCmd(cmdrender.NewOptions()))
	cmd.AddCommand(NewCheckCmd(NewCheckOptions()))
	cmd.AddCommand(NewWebsiteCmd(NewWebsiteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

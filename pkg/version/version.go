// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version of tenjin.
package version

// Version is overridden at build time via
// -ldflags "-X carvel.dev/tenjin/pkg/version.Version=..."
var Version = "develop"

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package workspace is home to primitives for loading and processing tenjin
artifacts: compiling template files into a registry, loading and merging
data files, and rendering templates into output files.
*/
package workspace

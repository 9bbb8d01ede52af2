// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package render implements the "render" command: compile template files,
load data files, and write the rendered templates out.

Input comes either from files given with -f (RegularFilesSource) or from a
single JSON document given with --bulk-in (BulkFilesSource); the latter is
what the website uses.
*/
package render

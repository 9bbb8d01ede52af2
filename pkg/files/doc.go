// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading data from various
file or file-like Source's and for writing output to filesystem files and
directories.

A File is either a template (by the configured template extension, .html by
default) or a data document (.json, .yaml/.yml, .toml, .star). Templates
are named after their relative path without the extension, so that
"partials/nav.html" can be included as `{ include partials/nav }`.
*/
package files

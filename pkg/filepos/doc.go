// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name, line and
column. Parse errors carry a Position so they can point at the offending
directive.
*/
package filepos

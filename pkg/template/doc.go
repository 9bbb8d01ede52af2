// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template renders compiled templates (see package texttemplate)
against data exposed through the Context interface.

A Context answers three questions about a dotted Path: is the value truthy,
write the value to a sink, and call back once per element of the value.
Scalars (String, Raw, Bool, Int, Uint, Float, Nil) and hand-built
composites (Fields, List) are provided here; adapters for arbitrary Go
values and structured documents live in package datavalues.

Loops and includes do not copy data. A loop binds its variable with a
ForContext layered over the enclosing Context, and an include with a
`with` path wraps the Context in an IncludeContext that prefixes every
lookup.
*/
package template

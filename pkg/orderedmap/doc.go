// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a string-keyed map that remembers insertion
order (unlike the native Go map).

Data documents are decoded into this map so that iterating over a record
in a template follows the order of the source document.
*/
package orderedmap

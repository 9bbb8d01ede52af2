// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"io"
	"strconv"
	"strings"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML writes s with '&', '<' and '>' escaped. Quotes are left as is
// so values must only be injected in text positions.
func EscapeHTML(w io.Writer, s string) error {
	_, err := htmlEscaper.WriteString(w, s)
	return err
}

// String is text that is HTML-escaped when injected.
type String string

// Raw is text that is injected verbatim.
type Raw string

type Bool bool

type Int int64

type Uint uint64

type Float float64

// Nil is an absent value: it is falsy and anything else fails as undefined.
type Nil struct{}

var _ = []Context{String(""), Raw(""), Bool(false), Int(0), Uint(0), Float(0), Nil{}}

func (s String) Truthy(path Path) bool { return path.IsEmpty() && len(s) > 0 }

func (s String) Inject(path Path, w io.Writer) error {
	if !path.IsEmpty() {
		return Undefined(path)
	}
	return EscapeHTML(w, string(s))
}

func (s String) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (s Raw) Truthy(path Path) bool { return path.IsEmpty() && len(s) > 0 }

func (s Raw) Inject(path Path, w io.Writer) error {
	return leafWrite(path, w, string(s))
}

func (s Raw) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (b Bool) Truthy(path Path) bool { return path.IsEmpty() && bool(b) }

func (b Bool) Inject(path Path, w io.Writer) error {
	return leafWrite(path, w, strconv.FormatBool(bool(b)))
}

func (b Bool) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (i Int) Truthy(path Path) bool { return path.IsEmpty() && i != 0 }

func (i Int) Inject(path Path, w io.Writer) error {
	return leafWrite(path, w, strconv.FormatInt(int64(i), 10))
}

func (i Int) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (u Uint) Truthy(path Path) bool { return path.IsEmpty() && u != 0 }

func (u Uint) Inject(path Path, w io.Writer) error {
	return leafWrite(path, w, strconv.FormatUint(uint64(u), 10))
}

func (u Uint) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (f Float) Truthy(path Path) bool { return path.IsEmpty() && f != 0 }

func (f Float) Inject(path Path, w io.Writer) error {
	return leafWrite(path, w, strconv.FormatFloat(float64(f), 'g', -1, 64))
}

func (f Float) Iterate(path Path, _ *Chomp) error { return leafIterate(path) }

func (Nil) Truthy(Path) bool                    { return false }
func (Nil) Inject(path Path, _ io.Writer) error { return Undefined(path) }
func (Nil) Iterate(path Path, _ *Chomp) error   { return Undefined(path) }

func leafWrite(path Path, w io.Writer, text string) error {
	if !path.IsEmpty() {
		return Undefined(path)
	}
	_, err := io.WriteString(w, text)
	return err
}

// Scalars have no children, so a remaining path is undefined rather
// than not iterable.
func leafIterate(path Path) error {
	if !path.IsEmpty() {
		return Undefined(path)
	}
	return NotIterable(path)
}

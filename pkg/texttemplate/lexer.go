// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"
	"unicode"
)

type symbolKind int

const (
	symText symbolKind = iota
	symWord
	symOpen
	symClose
)

type symbol struct {
	kind   symbolKind
	val    string // Text and Word only
	offset int    // byte offset in source
}

// describe is how a symbol is shown in parse errors.
func (s symbol) describe() string {
	switch s.kind {
	case symOpen:
		return "'{'"
	case symClose:
		return "'}'"
	default:
		return s.val
	}
}

// lexer scans template source in two modes. In text mode it yields raw text
// up to the next brace (with '{{' and '}}' as escapes for literal braces) and
// an Open symbol for a single '{'. In tag mode (after Open) it skips
// whitespace and yields Words until a '}' switches back to text mode.
//
// One symbol is always buffered so the parser can peek.
type lexer struct {
	src    string
	offset int
	text   bool

	cur    symbol
	hasCur bool
}

func newLexer(src string) *lexer {
	l := &lexer{src: src, text: true}
	l.cur, l.hasCur = l.scan()
	return l
}

func (l *lexer) peek() (symbol, bool) { return l.cur, l.hasCur }

func (l *lexer) next() (symbol, bool) {
	sym, ok := l.cur, l.hasCur
	l.cur, l.hasCur = l.scan()
	return sym, ok
}

func (l *lexer) scan() (symbol, bool) {
	if l.text {
		return l.scanText()
	}
	return l.scanTag()
}

func (l *lexer) scanText() (symbol, bool) {
	rest := l.src[l.offset:]
	start := l.offset

	switch {
	case len(rest) == 0:
		return symbol{offset: start}, false

	case strings.HasPrefix(rest, "{{"):
		l.offset += 2
		return symbol{kind: symText, val: "{", offset: start}, true

	case strings.HasPrefix(rest, "}}"):
		l.offset += 2
		return symbol{kind: symText, val: "}", offset: start}, true

	case rest[0] == '{':
		l.offset++
		l.text = false
		return symbol{kind: symOpen, offset: start}, true

	case rest[0] == '}':
		// stray close brace; parser reports it
		l.offset++
		return symbol{kind: symClose, offset: start}, true
	}

	end := strings.IndexAny(rest, "{}")
	if end < 0 {
		end = len(rest)
	}
	l.offset += end
	return symbol{kind: symText, val: rest[:end], offset: start}, true
}

func (l *lexer) scanTag() (symbol, bool) {
	rest := l.src[l.offset:]
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	l.offset += len(rest) - len(trimmed)
	start := l.offset

	switch {
	case len(trimmed) == 0:
		return symbol{offset: start}, false

	case trimmed[0] == '{':
		// nested open brace; parser reports it
		l.offset++
		return symbol{kind: symOpen, offset: start}, true

	case trimmed[0] == '}':
		l.offset++
		l.text = true
		return symbol{kind: symClose, offset: start}, true
	}

	end := strings.IndexFunc(trimmed, isWordEnd)
	if end < 0 {
		end = len(trimmed)
	}
	l.offset += end
	return symbol{kind: symWord, val: trimmed[:end], offset: start}, true
}

func isWordEnd(r rune) bool {
	return r == '{' || r == '}' || unicode.IsSpace(r)
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"

	"carvel.dev/tenjin/pkg/filepos"
)

// Grammar:
//
//	stmt    := cond | for | include | inject
//	cond    := 'if' path '}' block [ '{' 'else' '}' block ] '{' 'end'
//	for     := 'for' ident 'in' path '}' block '{' 'end'
//	include := 'include' path [ 'with' path ]
//	inject  := path
//
//	ident   := word without '.'
//	path    := word
//
// Keywords are only recognized where the grammar expects them, so a bare
// top-level value named e.g. `for` can only be reached as a sub-path.
const (
	keywordIf      = "if"
	keywordElse    = "else"
	keywordEnd     = "end"
	keywordFor     = "for"
	keywordIn      = "in"
	keywordInclude = "include"
	keywordWith    = "with"
)

type Parser struct {
	associatedName string
	src            string
	lex            *lexer
}

func NewParser() *Parser {
	return &Parser{}
}

// Compile parses template source that is not associated with any file.
func Compile(src string) (*Template, error) {
	return NewParser().Parse([]byte(src), "")
}

// Parse compiles data into a Template. associatedName is used in error
// positions. Parsing stops at the first error.
func (p *Parser) Parse(dataBs []byte, associatedName string) (*Template, error) {
	p.associatedName = associatedName
	p.src = string(dataBs)
	p.lex = newLexer(p.src)

	var body []Statement

	for {
		sym, ok := p.lex.next()
		if !ok {
			return newTemplate(body), nil
		}

		switch sym.kind {
		case symText:
			body = appendContent(body, sym.val)

		case symOpen:
			stmt, err := p.stmt()
			if err != nil {
				return nil, err
			}
			if err := p.expect(symClose, "", "'}'"); err != nil {
				return nil, err
			}
			body = append(body, stmt)

		default:
			return nil, p.unexpected("text or '{'", sym, ok)
		}
	}
}

func (p *Parser) stmt() (Statement, error) {
	sym, ok := p.lex.peek()
	if !ok || sym.kind != symWord {
		return nil, p.unexpected("'if', 'for', 'include' or path", sym, ok)
	}

	switch sym.val {
	case keywordIf:
		return p.cond()
	case keywordFor:
		return p.forLoop()
	case keywordInclude:
		return p.include()
	default:
		return p.inject()
	}
}

func (p *Parser) cond() (Statement, error) {
	if err := p.expect(symWord, keywordIf, "'if'"); err != nil {
		return nil, err
	}

	pred, err := p.path()
	if err != nil {
		return nil, err
	}

	if err := p.expect(symClose, "", "'}'"); err != nil {
		return nil, err
	}

	then, term, err := p.block(keywordElse, keywordEnd)
	if err != nil {
		return nil, err
	}

	stmt := &Cond{Path: pred, Then: then}

	if term == keywordElse {
		if err := p.expect(symClose, "", "'}'"); err != nil {
			return nil, err
		}
		stmt.Else, _, err = p.block(keywordEnd)
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) forLoop() (Statement, error) {
	if err := p.expect(symWord, keywordFor, "'for'"); err != nil {
		return nil, err
	}

	ident, err := p.ident()
	if err != nil {
		return nil, err
	}

	if err := p.expect(symWord, keywordIn, "'in'"); err != nil {
		return nil, err
	}

	collection, err := p.path()
	if err != nil {
		return nil, err
	}

	if err := p.expect(symClose, "", "'}'"); err != nil {
		return nil, err
	}

	body, _, err := p.block(keywordEnd)
	if err != nil {
		return nil, err
	}

	return &For{Var: ident, Path: collection, Body: body}, nil
}

func (p *Parser) include() (Statement, error) {
	if err := p.expect(symWord, keywordInclude, "'include'"); err != nil {
		return nil, err
	}

	name, err := p.path()
	if err != nil {
		return nil, err
	}

	stmt := &Include{Name: name}

	if sym, ok := p.lex.peek(); ok && sym.kind == symWord && sym.val == keywordWith {
		p.lex.next()
		stmt.With, err = p.path()
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) inject() (Statement, error) {
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	return &Inject{Path: path}, nil
}

// block collects statements until a directive opening with one of the
// terminators. The terminator word is consumed and returned; the closing
// brace after it is left to the caller.
func (p *Parser) block(terminators ...string) (*Template, string, error) {
	var body []Statement

	for {
		sym, ok := p.lex.next()
		if !ok {
			return nil, "", p.unexpected("text or '{'", sym, ok)
		}

		switch sym.kind {
		case symText:
			body = appendContent(body, sym.val)

		case symOpen:
			if next, ok := p.lex.peek(); ok && next.kind == symWord {
				for _, term := range terminators {
					if next.val == term {
						p.lex.next()
						return newTemplate(body), term, nil
					}
				}
			}

			stmt, err := p.stmt()
			if err != nil {
				return nil, "", err
			}
			if err := p.expect(symClose, "", "'}'"); err != nil {
				return nil, "", err
			}
			body = append(body, stmt)

		default:
			return nil, "", p.unexpected("text or '{'", sym, ok)
		}
	}
}

func (p *Parser) ident() (string, error) {
	sym, ok := p.lex.next()
	if ok && sym.kind == symWord && !strings.ContainsRune(sym.val, '.') {
		return sym.val, nil
	}
	return "", p.unexpected("ident", sym, ok)
}

func (p *Parser) path() (string, error) {
	sym, ok := p.lex.next()
	if ok && sym.kind == symWord {
		return sym.val, nil
	}
	return "", p.unexpected("path", sym, ok)
}

// expect consumes the next symbol and checks its kind (and value, for words).
func (p *Parser) expect(kind symbolKind, val string, expected string) error {
	sym, ok := p.lex.next()
	if ok && sym.kind == kind && (kind != symWord || sym.val == val) {
		return nil
	}
	return p.unexpected(expected, sym, ok)
}

func (p *Parser) unexpected(expected string, sym symbol, found bool) error {
	err := &UnexpectedError{
		Expected: expected,
		Found:    "nothing",
		Position: filepos.NewPositionAtOffset(p.src, sym.offset, p.associatedName),
	}
	if found {
		err.Found = sym.describe()
	}
	return err
}

// appendContent merges adjacent text (e.g. around brace escapes) into one
// Content statement.
func appendContent(body []Statement, text string) []Statement {
	if len(body) > 0 {
		if last, ok := body[len(body)-1].(*Content); ok {
			body[len(body)-1] = &Content{Text: last.Text + text}
			return body
		}
	}
	return append(body, &Content{Text: text})
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
	"strings"
)

type Position struct {
	lineNum *int // 1 based
	colNum  int  // 1 based
	file    string
	known   bool
}

func NewPosition(lineNum, colNum int) *Position {
	if lineNum <= 0 || colNum <= 0 {
		panic("Lines and columns are 1 based")
	}
	return &Position{lineNum: &lineNum, colNum: colNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum", column "colNum" within the file "file"
func NewPositionInFile(lineNum, colNum int, file string) *Position {
	p := NewPosition(lineNum, colNum)
	p.file = file
	return p
}

// NewPositionAtOffset computes the line and column of the byte offset within src.
func NewPositionAtOffset(src string, offset int, file string) *Position {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	lineNum := strings.Count(before, "\n") + 1
	colNum := offset - strings.LastIndexByte(before, '\n')
	return NewPositionInFile(lineNum, colNum, file)
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

// NewUnknownPositionInFile produces a Position of a known file at an unknown line.
func NewUnknownPositionInFile(file string) *Position {
	return &Position{file: file}
}

func (p *Position) SetFile(file string) { p.file = file }

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	if p.lineNum == nil {
		panic("Position was not properly initialized")
	}
	return *p.lineNum
}

func (p *Position) ColNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.colNum
}

func (p *Position) GetFile() string {
	if p == nil {
		return ""
	}
	return p.file
}

func (p *Position) AsString() string {
	if p.IsKnown() {
		return fmt.Sprintf("line %d col %d", p.LineNum(), p.ColNum())
	}
	return "line ?"
}

func (p *Position) AsCompactString() string {
	filePrefix := p.GetFile()
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if p.IsKnown() {
		return fmt.Sprintf("%s%d:%d", filePrefix, p.LineNum(), p.ColNum())
	}
	return fmt.Sprintf("%s?", filePrefix)
}

// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sexp

import (
	"unicode"

	"github.com/consensys/go-bdshape/pkg/util/source"
)

// Parse a given source file into exactly one S-expression, or return an error
// if it is malformed.  A source map is also returned for error reporting.
func Parse(srcfile *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(srcfile)
	//
	term, err := p.Parse()
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, p.error("unexpected end-of-file")
	} else if p.SkipWhiteSpace(); p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	//
	return term, p.srcmap, nil
}

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if it is malformed.  Unlike Parse, this continues after the
// first S-expression is encountered.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = NewParser(srcfile)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given source file
// into one or more S-expressions.
type Parser struct {
	srcfile *source.File
	text    []rune
	index   int
	// Spans of the constructed S-Expressions in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		srcmap:  source.NewSourceMap[SExp](*srcfile),
	}
}

// SourceMap returns the source map constructed so far.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil at the end of the input.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip whitespace first, so the term's span starts at its first character.
	p.SkipWhiteSpace()
	//
	start := p.index
	//
	switch token := p.Next(); {
	case token == nil:
		return nil, nil
	case len(token) == 1 && token[0] == ')':
		p.index--
		return nil, p.error("unexpected end-of-list")
	case len(token) == 1 && token[0] == '(':
		elements, err := p.parseSequence(start)
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	default:
		term = &Symbol{string(token)}
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// Next extracts the next token, returning nil at the end of the input.
func (p *Parser) Next() []rune {
	p.SkipWhiteSpace()
	//
	if p.index == len(p.text) {
		return nil
	} else if r := p.text[p.index]; r == '(' || r == ')' {
		p.index++
		return p.text[p.index-1 : p.index]
	}
	//
	return p.parseSymbol()
}

// SkipWhiteSpace skips over any whitespace, including ';' line comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch r := p.text[p.index]; {
		case r == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(r):
			p.index++
		default:
			return
		}
	}
}

func (p *Parser) parseSymbol() []rune {
	end := p.index
	//
	for end < len(p.text) && !isDelimiter(p.text[end]) {
		end++
	}
	//
	token := p.text[p.index:end]
	p.index = end
	//
	return token
}

func (p *Parser) parseSequence(start int) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			span := source.NewSpan(start, start+1)
			return nil, p.srcfile.SyntaxError(span, "unterminated list")
		} else if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a syntax error at the current position in the input.
func (p *Parser) error(msg string) *source.SyntaxError {
	span := source.NewSpan(p.index, min(p.index+1, len(p.text)))
	return p.srcfile.SyntaxError(span, msg)
}

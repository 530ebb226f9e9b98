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
package source

import "fmt"

// Span represents a contiguous slice of the original text, retained as
// physical indices so that enclosing lines can be recovered.
type Span struct {
	// The first character of this span.
	start int
	// One past the final character of this span.
	end int
}

// NewSpan constructs a new span.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the starting index of this span.
func (p *Span) Start() int {
	return p.start
}

// End returns one past the last index of this span.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p *Span) Length() int {
	return p.end - p.start
}

// Map associates terms parsed from a source file with the spans of text they
// originated from.  This allows errors detected after parsing to be reported
// against the exact offending text.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the underlying source file on which this map operates.
func (p *Map[T]) Source() File {
	return p.srcfile
}

// Put registers a new item with a given span.  Registering the same item twice
// is an internal failure.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", item))
	}
	//
	p.mapping[item] = span
}

// Has determines whether a given item is registered in this map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given item.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}
	//
	panic(fmt.Sprintf("invalid source map key: %v", item))
}

// SyntaxError constructs a syntax error for a given item of this map.
func (p *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(item), msg)
}

// SyntaxErrors wraps a single syntax error into an array, as is convenient
// when passing sets of errors around.
func (p *Map[T]) SyntaxErrors(item T, msg string) []SyntaxError {
	return []SyntaxError{*p.SyntaxError(item, msg)}
}

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

import "strings"

// Formatter lays out S-Expressions so that, where possible, no line exceeds a
// given width.  Lists which do not fit are broken only when their head symbol
// has a registered rule.
type Formatter struct {
	width uint
	// Number of leading elements kept on the opening line, by head symbol.
	rules map[string]uint
	// Indentation applied to broken elements.
	indent uint
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, make(map[string]uint), 2}
}

// Break registers a rule for lists headed by a given symbol.  When such a list
// does not fit, its first keep elements stay on the opening line and each
// remaining element starts a new, indented line.
func (p *Formatter) Break(head string, keep uint) *Formatter {
	p.rules[head] = max(1, keep)
	return p
}

// Format a given S-Expression.
func (p *Formatter) Format(sexp SExp) string {
	var builder strings.Builder
	//
	p.format(0, sexp, &builder)
	//
	return builder.String()
}

func (p *Formatter) format(column uint, sexp SExp, out *strings.Builder) {
	flat := sexp.String(true)
	list := sexp.AsList()
	//
	if list == nil || column+uint(len(flat)) <= p.width {
		out.WriteString(flat)
		return
	}
	//
	keep, ok := p.rules[list.Head()]
	//
	if !ok || uint(list.Len()) <= keep {
		out.WriteString(flat)
		return
	}
	//
	out.WriteString("(")
	//
	for i, e := range list.Elements[:keep] {
		if i != 0 {
			out.WriteString(" ")
		}
		//
		out.WriteString(e.String(true))
	}
	//
	for _, e := range list.Elements[keep:] {
		out.WriteString("\n")
		out.WriteString(strings.Repeat(" ", int(column+p.indent)))
		p.format(column+p.indent, e, out)
	}
	//
	out.WriteString(")")
}

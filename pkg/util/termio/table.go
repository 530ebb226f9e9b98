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
package termio

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TablePrinter is useful for printing tables to the terminal.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	rows := make([][]string, height)
	escapes := make([][]string, height)
	//
	for i := range rows {
		rows[i] = make([]string, width)
		escapes[i] = make([]string, width)
	}
	//
	return &TablePrinter{make([]uint, width), rows, escapes, true}
}

// Set the contents of a given cell in this table
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], textWidth(val))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape sets the escape (e.g. colour) used when printing a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the use of ANSI escapes.  Disabling escapes
// is useful when the output is not a terminal, as otherwise the escape
// characters become visible.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetRow sets the contents of an entire row in this table
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, v := range vals {
		p.Set(uint(i), row, v)
	}
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := range p.widths {
		p.widths[i] = min(p.widths[i], width)
	}
}

// Print the table to a given writer.
func (p *TablePrinter) Print(out io.Writer) {
	for i, row := range p.rows {
		var builder strings.Builder
		//
		for j, cell := range row {
			escape := p.escapes[i][j]
			//
			if p.enableEscapes && escape != "" {
				builder.WriteString(escape)
			}
			//
			builder.WriteString(" ")
			builder.WriteString(pad(cell, p.widths[j]))
			//
			if p.enableEscapes && escape != "" {
				builder.WriteString(ResetAnsiEscape().Build())
			}
			//
			builder.WriteString(" |")
		}
		//
		fmt.Fprintln(out, builder.String())
	}
}

// Right-align a cell within a given width, truncating where necessary.
func pad(cell string, width uint) string {
	n := textWidth(cell)
	//
	switch {
	case n <= width:
		return strings.Repeat(" ", int(width-n)) + cell
	case width <= 2:
		return strings.Repeat(".", int(width))
	default:
		return string([]rune(cell)[:width-2]) + ".."
	}
}

func textWidth(text string) uint {
	return uint(utf8.RuneCountInString(text))
}

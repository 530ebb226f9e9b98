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
package cmd

import (
	"fmt"
	"io"

	"github.com/consensys/go-bdshape/pkg/dbm"
	"github.com/consensys/go-bdshape/pkg/lisp"
	"github.com/consensys/go-bdshape/pkg/util/termio"
)

// Print a shape as a (possibly multi-line) declaration.
func printShape(out io.Writer, shape lisp.NamedShape, config OutputConfig) {
	fmt.Fprintln(out, lisp.Format(shape, config.Minimized, config.TextWidth))
}

// Print the bound matrix of a shape, where the entry in row i and column j
// bounds xi - xj.  Non-redundant entries are highlighted.
func printMatrix(out io.Writer, shape lisp.NamedShape, config OutputConfig) {
	m := shape.Shape.Matrix()
	//
	if m == nil {
		fmt.Fprintf(out, "%s is empty\n", shape.Name)
		return
	}
	//
	var (
		n         = m.Order()
		reduction = dbm.Reduce(m)
		tp        = termio.NewTablePrinter(n+1, n+1)
		highlight = termio.BoldAnsiEscape().FgColour(termio.TERM_YELLOW)
		labels    = append([]string{"0"}, shape.Vars...)
	)
	//
	for i := uint(0); i < n; i++ {
		tp.Set(i+1, 0, labels[i])
		tp.Set(0, i+1, labels[i])
		//
		for j := uint(0); j < n; j++ {
			tp.Set(j+1, i+1, m.Get(i, j).String())
			//
			if reduction.IsNonRedundant(i, j) {
				tp.SetEscape(j+1, i+1, highlight)
			}
		}
	}
	//
	tp.AnsiEscapes(config.Colour)
	tp.SetMaxWidths(config.TextWidth / (n + 1))
	tp.Print(out)
}

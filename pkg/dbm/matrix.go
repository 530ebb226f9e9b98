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
package dbm

import (
	"fmt"
	"strings"

	"github.com/consensys/go-bdshape/pkg/util/math"
)

// Matrix is a dense bound matrix over a space of dimension n, holding (n+1) x
// (n+1) entries.  Entry (i,j) bounds the difference xi - xj from above, where
// index 0 denotes the constant zero and index v+1 denotes variable v.  Thus,
// (i,0) is an upper bound on xi and (0,j) is an upper bound on -xj.  Missing
// bounds are represented by +∞, and negative infinity is never stored.
type Matrix struct {
	// space dimension
	dim uint
	// row-major entries
	cells []math.InfRat
}

// New constructs the matrix of the universe over a given space dimension,
// where every entry is +∞ except the diagonal which is 0.
func New(dim uint) *Matrix {
	var (
		n = dim + 1
		m = &Matrix{dim, make([]math.InfRat, n*n)}
	)
	//
	for i := range m.cells {
		m.cells[i] = math.PosInfinity
	}
	//
	for i := uint(0); i < n; i++ {
		m.cells[i*n+i] = math.Zero
	}
	//
	return m
}

// SpaceDimension returns the space dimension of this matrix, which is one
// less than its order.
func (m *Matrix) SpaceDimension() uint {
	return m.dim
}

// Order returns the number of rows (and columns) of this matrix.
func (m *Matrix) Order() uint {
	return m.dim + 1
}

// Get returns the bound on xi - xj.
func (m *Matrix) Get(i, j uint) math.InfRat {
	return m.cells[i*(m.dim+1)+j]
}

// Set the bound on xi - xj.  This will panic if the bound is -∞.
func (m *Matrix) Set(i, j uint, val math.InfRat) {
	if val.IsNegInfinity() {
		panic(fmt.Sprintf("invalid bound (%d,%d) = -∞", i, j))
	}
	//
	m.cells[i*(m.dim+1)+j] = val
}

// Tighten the bound on xi - xj to be no greater than val, returning true if
// this changed the matrix.
func (m *Matrix) Tighten(i, j uint, val math.InfRat) bool {
	if val.Cmp(m.Get(i, j)) < 0 {
		m.Set(i, j, val)
		return true
	}
	//
	return false
}

// Forget every bound involving index v (except the trivial bound on its
// diagonal).
func (m *Matrix) Forget(v uint) {
	for k := uint(0); k <= m.dim; k++ {
		if k != v {
			m.Set(v, k, math.PosInfinity)
			m.Set(k, v, math.PosInfinity)
		}
	}
}

// IsUniverse checks whether every off-diagonal bound is +∞.
func (m *Matrix) IsUniverse() bool {
	for i := uint(0); i <= m.dim; i++ {
		for j := uint(0); j <= m.dim; j++ {
			if i != j && !m.Get(i, j).IsPosInfinity() {
				return false
			}
		}
	}
	//
	return true
}

// Clone returns a deep copy of this matrix.
func (m *Matrix) Clone() *Matrix {
	var cells = make([]math.InfRat, len(m.cells))
	//
	copy(cells, m.cells)
	//
	return &Matrix{m.dim, cells}
}

// Resize this matrix to a given space dimension.  Bounds between retained
// indices are preserved, whilst those of any new index are +∞.
func (m *Matrix) Resize(dim uint) {
	var (
		n = dim + 1
		r = New(dim)
	)
	//
	for i := uint(0); i < min(n, m.dim+1); i++ {
		for j := uint(0); j < min(n, m.dim+1); j++ {
			r.cells[i*n+j] = m.Get(i, j)
		}
	}
	//
	*m = *r
}

// Remap constructs a matrix over a given space dimension where index i of
// this matrix becomes index f(i), whilst indices for which f returns false are
// dropped.  Index 0 always maps to itself, and f must be injective.
func (m *Matrix) Remap(dim uint, f func(uint) (uint, bool)) *Matrix {
	var (
		r     = New(dim)
		index = make([]int, m.dim+1)
	)
	//
	for i := uint(1); i <= m.dim; i++ {
		if k, ok := f(i); ok {
			index[i] = int(k)
		} else {
			index[i] = -1
		}
	}
	//
	for i, ri := range index {
		for j, rj := range index {
			if ri >= 0 && rj >= 0 && i != j {
				r.Set(uint(ri), uint(rj), m.Get(uint(i), uint(j)))
			}
		}
	}
	//
	return r
}

// Equal checks whether two matrices have the same dimension and identical
// entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.dim != o.dim {
		return false
	}
	//
	for i := range m.cells {
		if m.cells[i].Cmp(o.cells[i]) != 0 {
			return false
		}
	}
	//
	return true
}

// LessOrEqual checks whether every entry of this matrix is no greater than
// the corresponding entry of another matrix (of the same dimension).
func (m *Matrix) LessOrEqual(o *Matrix) bool {
	for i := range m.cells {
		if m.cells[i].Cmp(o.cells[i]) > 0 {
			return false
		}
	}
	//
	return true
}

// MaxAssign replaces every entry of this matrix with the maximum of it and the
// corresponding entry of another matrix.
func (m *Matrix) MaxAssign(o *Matrix) {
	for i := range m.cells {
		m.cells[i] = m.cells[i].Max(o.cells[i])
	}
}

// MinAssign replaces every entry of this matrix with the minimum of it and the
// corresponding entry of another matrix, returning true if this changed
// anything.
func (m *Matrix) MinAssign(o *Matrix) bool {
	var changed = false
	//
	for i := range m.cells {
		if o.cells[i].Cmp(m.cells[i]) < 0 {
			m.cells[i] = o.cells[i]
			changed = true
		}
	}
	//
	return changed
}

func (m *Matrix) String() string {
	var rows []string
	//
	for i := uint(0); i <= m.dim; i++ {
		var row []string
		//
		for j := uint(0); j <= m.dim; j++ {
			row = append(row, m.Get(i, j).String())
		}
		//
		rows = append(rows, strings.Join(row, " "))
	}
	//
	return strings.Join(rows, "\n")
}

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
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// Close computes the shortest-path closure of a matrix in place, such that
// every entry holds the tightest bound implied by the others.  This returns
// false if the matrix contains a negative cycle (i.e. the bounds are
// unsatisfiable), in which case its contents are meaningless.  Closing an
// already closed matrix leaves it unchanged.
func Close(m *Matrix) bool {
	var (
		n     = m.dim + 1
		cells = m.cells
	)
	// Loop order is fixed (k → i → j).
	for k := uint(0); k < n; k++ {
		baseK := k * n
		//
		for i := uint(0); i < n; i++ {
			ik := cells[i*n+k]
			//
			if ik.IsPosInfinity() {
				continue
			}
			//
			baseI := i * n
			//
			for j := uint(0); j < n; j++ {
				kj := cells[baseK+j]
				//
				if kj.IsPosInfinity() {
					continue
				}
				//
				if cand := ik.Add(kj); cand.Cmp(cells[baseI+j]) < 0 {
					cells[baseI+j] = cand
				}
			}
		}
	}
	//
	return checkDiagonal(m)
}

// IncrementalClose recomputes the closure of a matrix in place, assuming it
// was closed before the bounds involving index v were tightened.  This
// returns false if the matrix contains a negative cycle.
func IncrementalClose(m *Matrix, v uint) bool {
	var n = m.dim + 1
	// Close row and column v through every other index.
	for k := uint(0); k < n; k++ {
		if k == v {
			continue
		}
		//
		if vk := m.Get(v, k); !vk.IsPosInfinity() {
			for j := uint(0); j < n; j++ {
				if kj := m.Get(k, j); !kj.IsPosInfinity() {
					m.Tighten(v, j, vk.Add(kj))
				}
			}
		}
		//
		if kv := m.Get(k, v); !kv.IsPosInfinity() {
			for i := uint(0); i < n; i++ {
				if ik := m.Get(i, k); !ik.IsPosInfinity() {
					m.Tighten(i, v, ik.Add(kv))
				}
			}
		}
	}
	// Propagate through v
	for i := uint(0); i < n; i++ {
		iv := m.Get(i, v)
		//
		if iv.IsPosInfinity() {
			continue
		}
		//
		for j := uint(0); j < n; j++ {
			if vj := m.Get(v, j); !vj.IsPosInfinity() {
				m.Tighten(i, j, iv.Add(vj))
			}
		}
	}
	//
	return checkDiagonal(m)
}

// IsClosed checks whether a matrix satisfies the triangle inequality, and its
// diagonal is zero.
func IsClosed(m *Matrix) bool {
	var n = m.dim + 1
	//
	for k := uint(0); k < n; k++ {
		if m.Get(k, k).Sign() != 0 {
			return false
		}
		//
		for i := uint(0); i < n; i++ {
			for j := uint(0); j < n; j++ {
				ik, kj := m.Get(i, k), m.Get(k, j)
				//
				if !ik.IsPosInfinity() && !kj.IsPosInfinity() && ik.Add(kj).Cmp(m.Get(i, j)) < 0 {
					return false
				}
			}
		}
	}
	//
	return true
}

// Check for a negative diagonal entry, whilst resetting the diagonal to zero
// otherwise.
func checkDiagonal(m *Matrix) bool {
	var n = m.dim + 1
	//
	for i := uint(0); i < n; i++ {
		if m.Get(i, i).Sign() < 0 {
			return false
		}
	}
	//
	for i := uint(0); i < n; i++ {
		m.Set(i, i, math.Zero)
	}
	//
	return true
}

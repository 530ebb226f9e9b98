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
	"github.com/bits-and-blooms/bitset"
)

// Reduction identifies the non-redundant entries of a closed matrix.  The
// entries marked as non-redundant form the smallest set of bounds from which
// the closure can be recovered.
type Reduction struct {
	order uint
	// leader of each zero-equivalence class
	leaders []uint
	// set of non-redundant entries (i,j) at bit i*order+j
	nonRedundant *bitset.BitSet
}

// Reduce computes the shortest-path reduction of a closed (and non-empty)
// matrix.  Two indices i and j are zero-equivalent when xi - xj is fixed,
// and the least index of each class is its leader.  The members of each class
// are connected in a single cycle of increasing index, whilst a bound between
// two leaders i and j is redundant if it is implied through some other leader
// k.
func Reduce(m *Matrix) *Reduction {
	var (
		n       = m.dim + 1
		leaders = make([]uint, n)
		r       = &Reduction{n, leaders, bitset.New(n * n)}
	)
	// Identify zero-equivalence classes
	for i := uint(0); i < n; i++ {
		leaders[i] = i
		//
		for j := uint(0); j < i; j++ {
			if leaders[j] == j && isZeroCycle(m, i, j) {
				leaders[i] = j
				break
			}
		}
	}
	// Connect members of each class
	for i := uint(0); i < n; i++ {
		if leaders[i] != i {
			continue
		}
		//
		last := i
		//
		for j := i + 1; j < n; j++ {
			if leaders[j] == i {
				r.nonRedundant.Set(last*n + j)
				last = j
			}
		}
		//
		if last != i {
			r.nonRedundant.Set(last*n + i)
		}
	}
	// Bounds between leaders
	for i := uint(0); i < n; i++ {
		if leaders[i] != i {
			continue
		}
		//
		for j := uint(0); j < n; j++ {
			if i != j && leaders[j] == j && !m.Get(i, j).IsPosInfinity() && !isImplied(m, leaders, i, j) {
				r.nonRedundant.Set(i*n + j)
			}
		}
	}
	//
	return r
}

// IsNonRedundant checks whether the entry (i,j) is non-redundant.
func (r *Reduction) IsNonRedundant(i, j uint) bool {
	return r.nonRedundant.Test(i*r.order + j)
}

// IsRedundant checks whether the entry (i,j) is redundant.
func (r *Reduction) IsRedundant(i, j uint) bool {
	return !r.IsNonRedundant(i, j)
}

// Leader returns the leader of the zero-equivalence class containing i.
func (r *Reduction) Leader(i uint) uint {
	return r.leaders[i]
}

// Count returns the number of non-redundant entries.
func (r *Reduction) Count() uint {
	return r.nonRedundant.Count()
}

// Check whether xi - xj is fixed, i.e. m[i][j] + m[j][i] == 0.
func isZeroCycle(m *Matrix, i, j uint) bool {
	ij, ji := m.Get(i, j), m.Get(j, i)
	//
	if ij.IsPosInfinity() || ji.IsPosInfinity() {
		return false
	}
	//
	return ij.Add(ji).Sign() == 0
}

// Check whether the bound (i,j) is implied by the path through some other
// leader k.
func isImplied(m *Matrix, leaders []uint, i, j uint) bool {
	ij := m.Get(i, j)
	//
	for k := range leaders {
		var kk = uint(k)
		//
		if kk == i || kk == j || leaders[k] != kk {
			continue
		}
		//
		ik, kj := m.Get(i, kk), m.Get(kk, j)
		//
		if !ik.IsPosInfinity() && !kj.IsPosInfinity() && ik.Add(kj).Cmp(ij) == 0 {
			return true
		}
	}
	//
	return false
}

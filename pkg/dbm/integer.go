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

// TightenInteger rounds down every finite bound (i,j) where both i and j are
// integral indices, as determined by the given predicate (index 0 is always
// integral).  This returns true if any bound changed, in which case the matrix
// may no longer be closed.
func TightenInteger(m *Matrix, integral func(uint) bool) bool {
	var (
		n       = m.dim + 1
		changed = false
	)
	//
	for i := uint(0); i < n; i++ {
		if i != 0 && !integral(i) {
			continue
		}
		//
		for j := uint(0); j < n; j++ {
			if i == j || (j != 0 && !integral(j)) {
				continue
			}
			//
			if val := m.Get(i, j); val.IsFinite() && !val.IsInteger() {
				m.Set(i, j, val.Floor())
				changed = true
			}
		}
	}
	//
	return changed
}

// IsIntegral checks whether every finite bound of a matrix is an integer.
func IsIntegral(m *Matrix) bool {
	for _, val := range m.cells {
		if val.IsFinite() && !val.IsInteger() {
			return false
		}
	}
	//
	return true
}

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
package lp

import (
	"math/big"

	"github.com/consensys/go-bdshape/pkg/linear"
)

// tableau is a dense simplex tableau over exact rationals.  Every variable x
// of the problem is split into two non-negative columns x⁺ and x⁻ (where x =
// x⁺ - x⁻), every inequality receives a surplus column and every row receives
// an artificial column for the first phase.  The final column of each row
// holds its right-hand side.
type tableau struct {
	// number of problem variables
	nvars int
	// index of first artificial column
	artificial int
	// total number of columns (excluding right-hand side)
	width int
	// constraint rows
	rows [][]big.Rat
	// reduced costs, where the final entry holds the negated objective value.
	cost []big.Rat
	// basic variable of each row
	basis []int
}

func newTableau(dim uint, cs linear.ConstraintSystem) *tableau {
	var (
		n       = int(dim)
		m       = len(cs)
		surplus = 0
	)
	//
	for _, c := range cs {
		if c.IsInequality() {
			surplus++
		}
	}
	//
	t := &tableau{nvars: n, artificial: 2*n + surplus, width: 2*n + surplus + m}
	t.rows = make([][]big.Rat, m)
	t.basis = make([]int, m)
	//
	for i, s := 0, 2*n; i < m; i++ {
		var (
			row = make([]big.Rat, t.width+1)
			e   = cs[i].Expr()
		)
		// Row encodes e - b ⋈ -b, where b is the constant of e.
		for j := 0; j < n; j++ {
			row[j].SetInt(e.Coefficient(linear.Variable(j)))
			row[n+j].Neg(&row[j])
		}
		//
		if cs[i].IsInequality() {
			row[s].SetInt64(-1)
			s++
		}
		//
		row[t.width].SetInt(e.Inhomogeneous())
		row[t.width].Neg(&row[t.width])
		// Ensure right-hand side is non-negative
		if row[t.width].Sign() < 0 {
			for j := range row {
				row[j].Neg(&row[j])
			}
		}
		//
		row[t.artificial+i].SetInt64(1)
		t.rows[i] = row
		t.basis[i] = t.artificial + i
	}
	//
	return t
}

// Run the first phase of the simplex method to find a basic feasible
// solution.  This returns false if no such solution exists.  Otherwise, all
// artificial columns are driven out of the basis, and redundant rows are
// removed.
func (t *tableau) feasible() bool {
	t.cost = make([]big.Rat, t.width+1)
	// Phase one minimises the sum of artificial variables.
	for _, row := range t.rows {
		for j := 0; j < t.artificial; j++ {
			t.cost[j].Sub(&t.cost[j], &row[j])
		}
		//
		t.cost[t.width].Sub(&t.cost[t.width], &row[t.width])
	}
	//
	t.simplex(t.width)
	//
	if t.cost[t.width].Sign() != 0 {
		return false
	}
	// Drive artificial variables out of the basis
	for i := 0; i < len(t.rows); {
		if t.basis[i] < t.artificial {
			i++
			continue
		}
		//
		if col := t.nonZeroColumn(i); col >= 0 {
			t.pivot(i, col)
			i++
		} else {
			t.removeRow(i)
		}
	}
	//
	return true
}

// Run the second phase of the simplex method, minimising a given objective.
// This returns false if the objective is unbounded.
func (t *tableau) optimise(obj linear.Expr) bool {
	t.cost = make([]big.Rat, t.width+1)
	//
	for j := 0; j < t.nvars; j++ {
		t.cost[j].SetInt(obj.Coefficient(linear.Variable(j)))
		t.cost[t.nvars+j].Neg(&t.cost[j])
	}
	// Price out basic variables
	for i, row := range t.rows {
		if f := new(big.Rat).Set(&t.cost[t.basis[i]]); f.Sign() != 0 {
			subRow(t.cost, row, f)
		}
	}
	//
	return t.simplex(t.artificial)
}

// Apply the simplex method using Bland's rule, which guarantees termination.
// Only columns below limit may enter the basis.  This returns false if the
// objective is unbounded.
func (t *tableau) simplex(limit int) bool {
	var ratio, best big.Rat
	//
	for {
		enter := -1
		//
		for j := 0; j < limit; j++ {
			if t.cost[j].Sign() < 0 {
				enter = j
				break
			}
		}
		//
		if enter < 0 {
			return true
		}
		//
		leave := -1
		//
		for i, row := range t.rows {
			if row[enter].Sign() <= 0 {
				continue
			}
			//
			ratio.Quo(&row[t.width], &row[enter])
			//
			if leave < 0 {
				best.Set(&ratio)
				leave = i
			} else if c := ratio.Cmp(&best); c < 0 || (c == 0 && t.basis[i] < t.basis[leave]) {
				best.Set(&ratio)
				leave = i
			}
		}
		//
		if leave < 0 {
			return false
		}
		//
		t.pivot(leave, enter)
	}
}

// Pivot on a given row and column, making the column basic for that row.
func (t *tableau) pivot(r int, c int) {
	var (
		row = t.rows[r]
		piv = new(big.Rat).Set(&row[c])
	)
	//
	for j := range row {
		row[j].Quo(&row[j], piv)
	}
	//
	for i, other := range t.rows {
		if i != r && other[c].Sign() != 0 {
			subRow(other, row, new(big.Rat).Set(&other[c]))
		}
	}
	//
	if t.cost[c].Sign() != 0 {
		subRow(t.cost, row, new(big.Rat).Set(&t.cost[c]))
	}
	//
	t.basis[r] = c
}

// Find a non-artificial column with a non-zero entry in a given row, or
// return -1 if none exists.
func (t *tableau) nonZeroColumn(r int) int {
	for j := 0; j < t.artificial; j++ {
		if t.rows[r][j].Sign() != 0 {
			return j
		}
	}
	//
	return -1
}

func (t *tableau) removeRow(r int) {
	t.rows = append(t.rows[:r], t.rows[r+1:]...)
	t.basis = append(t.basis[:r], t.basis[r+1:]...)
}

// Extract the current basic solution in terms of the original variables.
func (t *tableau) solution() []*big.Rat {
	point := make([]*big.Rat, t.nvars)
	//
	for j := range point {
		point[j] = new(big.Rat)
	}
	//
	for i, k := range t.basis {
		switch {
		case k < t.nvars:
			point[k].Add(point[k], &t.rows[i][t.width])
		case k < 2*t.nvars:
			point[k-t.nvars].Sub(point[k-t.nvars], &t.rows[i][t.width])
		}
	}
	//
	return point
}

// Compute dst := dst - f*src.
func subRow(dst []big.Rat, src []big.Rat, f *big.Rat) {
	var tmp big.Rat
	//
	for j := range dst {
		if src[j].Sign() != 0 {
			tmp.Mul(f, &src[j])
			dst[j].Sub(&dst[j], &tmp)
		}
	}
}

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
	"testing"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	x = linear.Var(0)
	y = linear.Var(1)
	k = linear.NewExpr
)

func Test_Problem_01(t *testing.T) {
	// max x + y subject to x <= 2, y <= 3
	p := NewProblem(2)
	require.NoError(t, p.AddConstraints(linear.ConstraintSystem{
		linear.Leq(x, k(2)), linear.Leq(y, k(3)),
	}))
	require.NoError(t, p.SetObjective(x.Plus(y)))
	p.SetMaximize(true)
	//
	require.Equal(t, Optimized, p.Solve())
	assert.Equal(t, "5", p.OptimalValue().RatString())
	assert.Equal(t, "2", p.OptimizingPoint()[0].RatString())
	assert.Equal(t, "3", p.OptimizingPoint()[1].RatString())
	// minimising is unbounded
	p.SetMaximize(false)
	assert.Equal(t, Unbounded, p.Solve())
	assert.Nil(t, p.OptimalValue())
}

func Test_Problem_02(t *testing.T) {
	// x >= 3, x <= 1
	p := NewProblem(1)
	require.NoError(t, p.AddConstraint(linear.Geq(x, k(3))))
	require.NoError(t, p.AddConstraint(linear.Leq(x, k(1))))
	//
	assert.False(t, p.IsSatisfiable())
	assert.Equal(t, Unfeasible, p.Solve())
	assert.Nil(t, p.OptimizingPoint())
}

func Test_Problem_03(t *testing.T) {
	// 3x == 2, x - y <= 1/2 written as 2x - 2y <= 1; min y
	p := NewProblem(2)
	require.NoError(t, p.AddConstraint(linear.Eq(x.Times(3), k(2))))
	require.NoError(t, p.AddConstraint(linear.Leq(x.Times(2).Minus(y.Times(2)), k(1))))
	require.NoError(t, p.SetObjective(y.PlusConst(1)))
	//
	require.Equal(t, Optimized, p.Solve())
	assert.Equal(t, "7/6", p.OptimalValue().RatString())
}

func Test_Problem_04(t *testing.T) {
	// Redundant equalities
	p := NewProblem(2)
	require.NoError(t, p.AddConstraints(linear.ConstraintSystem{
		linear.Eq(x, y), linear.Eq(y, x), linear.Eq(x.Times(2), y.Times(2)),
		linear.Geq(x, k(-4)), linear.Leq(y, k(7)),
	}))
	require.NoError(t, p.SetObjective(x.Minus(y.Times(3))))
	p.SetMaximize(true)
	//
	require.Equal(t, Optimized, p.Solve())
	assert.Equal(t, "8", p.OptimalValue().RatString())
}

func Test_Problem_05(t *testing.T) {
	p := NewProblem(1)
	//
	assert.ErrorIs(t, p.AddConstraint(linear.Geq(y, k(0))), ErrDimensionMismatch)
	assert.ErrorIs(t, p.SetObjective(y), ErrDimensionMismatch)
	// No constraints with a constant objective
	require.NoError(t, p.SetObjective(k(4)))
	require.Equal(t, Optimized, p.Solve())
	assert.Equal(t, "4", p.OptimalValue().RatString())
}

func Test_Problem_06(t *testing.T) {
	// Strict inequalities give suprema: x < 1
	p := NewProblem(1)
	require.NoError(t, p.AddConstraint(linear.Lt(x, k(1))))
	require.NoError(t, p.SetObjective(x))
	p.SetMaximize(true)
	//
	require.Equal(t, Optimized, p.Solve())
	assert.Equal(t, "1", p.OptimalValue().RatString())
}

func Test_Bounds_01(t *testing.T) {
	cs := linear.ConstraintSystem{
		linear.Geq(x, k(1)), linear.Leq(x, k(3)), linear.Leq(y.Minus(x), k(2)), linear.Geq(y, x),
	}
	itv, err := Bounds(2, cs, y.Times(2))
	//
	require.NoError(t, err)
	assert.Equal(t, "[2,10]", itv.String())
	//
	itv, err = Bounds(2, cs, y.Minus(x.Times(3)))
	require.NoError(t, err)
	assert.Equal(t, "[-6,0]", itv.String())
}

func Test_Bounds_02(t *testing.T) {
	itv, err := Bounds(2, linear.ConstraintSystem{linear.Geq(x, k(1))}, x.Plus(y))
	//
	require.NoError(t, err)
	assert.True(t, itv.IsUniverse())
	//
	itv, err = Bounds(1, linear.ConstraintSystem{linear.Geq(x, k(1)), linear.Leq(x, k(0))}, x)
	require.NoError(t, err)
	assert.True(t, itv.IsEmpty())
	//
	itv, err = Bounds(1, linear.ConstraintSystem{linear.Geq(x, k(1))}, x)
	require.NoError(t, err)
	assert.Equal(t, "[1,+∞]", itv.String())
	assert.Equal(t, 0, itv.MinValue().CmpRat(big.NewRat(1, 1)))
}

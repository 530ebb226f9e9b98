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
package bds

import (
	"math/big"
	"testing"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	A = linear.Var(0)
	B = linear.Var(1)
	C = linear.Var(2)
	k = linear.NewExpr
)

func unit() *big.Int { return big.NewInt(1) }

// Construct a shape from constraints, failing the test on error.
func shape(t *testing.T, dim uint, cs ...linear.Constraint) *Shape {
	t.Helper()
	//
	s, err := NewShape(dim, linear.UniverseElement)
	require.NoError(t, err)
	require.NoError(t, s.AddConstraints(cs))
	//
	return s
}

func Test_Shape_01(t *testing.T) {
	s := shape(t, 2, linear.Leq(A, k(2)), linear.Leq(A.Minus(B), k(3)), linear.Leq(B, k(2)))
	//
	assert.Equal(t, "A <= 2, A - B <= 3, B <= 2", s.String())
	assert.False(t, s.IsEmpty())
	assert.False(t, s.IsUniverse())
	assert.False(t, s.IsBounded())
	assert.Equal(t, uint(2), s.AffineDimension())
}

func Test_Shape_02(t *testing.T) {
	s, err := NewShape(3, linear.UniverseElement)
	require.NoError(t, err)
	assert.True(t, s.IsUniverse())
	assert.Equal(t, "true", s.String())
	//
	e, err := NewShape(3, linear.EmptyElement)
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "false", e.String())
	assert.Equal(t, uint(0), e.AffineDimension())
	//
	_, err = NewShape(MaxSpaceDimension+1, linear.UniverseElement)
	assert.ErrorIs(t, err, ErrMaxSpaceDimension)
	assert.ErrorIs(t, err, ErrLength)
}

func Test_Shape_03(t *testing.T) {
	// Inconsistent cycle
	s := shape(t, 2, linear.Leq(A.Minus(B), k(-1)), linear.Leq(B.Minus(A), k(0)))
	assert.True(t, s.IsEmpty())
	assert.True(t, s.IsBounded())
	assert.Equal(t, "{0 >= 1}", s.Constraints().String())
}

func Test_Shape_04(t *testing.T) {
	s, _ := NewShape(2, linear.UniverseElement)
	// Dimension incompatible
	err := s.AddConstraint(linear.Leq(C.Minus(B), k(2)))
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	// Strict
	assert.ErrorIs(t, s.AddConstraint(linear.Lt(A, k(2))), ErrStrictInequality)
	// Not a bounded difference
	assert.ErrorIs(t, s.AddConstraint(linear.Leq(A.Plus(B), k(2))), ErrNotBoundedDifference)
	assert.ErrorIs(t, s.AddConstraint(linear.Leq(A.Times(2).Minus(B), k(2))), ErrNotBoundedDifference)
	// Atomic
	err = s.AddConstraints(linear.ConstraintSystem{linear.Leq(A, k(1)), linear.Lt(B, k(2))})
	assert.ErrorIs(t, err, ErrStrictInequality)
	assert.True(t, s.IsUniverse())
	// Trivial constraints are always accepted
	require.NoError(t, s.AddConstraint(linear.Leq(k(0), k(1))))
	assert.True(t, s.IsUniverse())
	require.NoError(t, s.AddConstraint(linear.Lt(k(1), k(0))))
	assert.True(t, s.IsEmpty())
}

func Test_Shape_05(t *testing.T) {
	// Closure idempotence
	s := shape(t, 3, linear.Leq(A.Minus(B), k(1)), linear.Leq(B.Minus(C), k(2)), linear.Leq(C, k(0)))
	m1 := s.Matrix()
	m2 := s.Matrix()
	assert.True(t, m1.Equal(m2))
	assert.Equal(t, "3", m1.Get(1, 0).String())
	//
	o := shape(t, 3, s.Constraints()...)
	assert.True(t, o.Equal(s))
	o = shape(t, 3, s.MinimizedConstraints()...)
	assert.True(t, o.Equal(s))
	assert.Len(t, s.MinimizedConstraints(), 3)
}

func Test_Shape_06(t *testing.T) {
	// Equalities are recovered from zero cycles.
	s := shape(t, 3, linear.Eq(A, k(1)), linear.Eq(B.Minus(A), k(2)), linear.Leq(C, k(5)))
	cs := s.MinimizedConstraints()
	//
	assert.Len(t, cs, 3)
	assert.Equal(t, uint(1), s.AffineDimension())
	assert.False(t, s.IsDiscrete())
	//
	ok, err := s.Constrains(2)
	require.NoError(t, err)
	assert.True(t, ok)
	//
	u, _ := NewShape(3, linear.UniverseElement)
	ok, _ = u.Constrains(1)
	assert.False(t, ok)
	//
	_, err = u.Constrains(linear.Variable(3))
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
}

func Test_Shape_07(t *testing.T) {
	s := shape(t, 2, linear.Eq(A, k(1)), linear.Eq(B, k(-2)))
	//
	assert.True(t, s.IsDiscrete())
	assert.True(t, s.IsBounded())
	assert.True(t, s.ContainsIntegerPoint())
	assert.True(t, s.IsTopologicallyClosed())
	//
	h := shape(t, 1, linear.Eq(A.Times(2), k(1)))
	assert.False(t, h.ContainsIntegerPoint())
}

func Test_Shape_08(t *testing.T) {
	s, err := FromConstraints(linear.ConstraintSystem{linear.Geq(A, k(1)), linear.Leq(B, k(2))})
	require.NoError(t, err)
	assert.Equal(t, uint(2), s.SpaceDimension())
	//
	_, err = FromConstraints(linear.ConstraintSystem{linear.Geq(A.Plus(B), k(1))})
	assert.ErrorIs(t, err, ErrNotBoundedDifference)
	// Clones are independent
	c := s.Clone()
	require.NoError(t, c.AddConstraint(linear.Leq(A, k(0))))
	assert.True(t, c.IsEmpty())
	assert.False(t, s.IsEmpty())
}

func Test_Refine_01(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Geq(B, k(0)))
	// A + B <= 4 implies A <= 4 and B <= 4
	require.NoError(t, s.RefineWithConstraint(linear.Leq(A.Plus(B), k(4))))
	//
	expected := shape(t, 2, linear.Geq(A, k(0)), linear.Geq(B, k(0)), linear.Leq(A, k(4)), linear.Leq(B, k(4)))
	assert.True(t, s.Equal(expected), s.String())
	// Strict inequalities are approximated by their closure
	require.NoError(t, s.RefineWithConstraint(linear.Lt(A, k(2))))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(0)), linear.Geq(B, k(0)), linear.Leq(A, k(2)),
		linear.Leq(B, k(4)))))
	//
	assert.ErrorIs(t, s.RefineWithConstraint(linear.Leq(C, k(2))), ErrDimensionIncompatible)
}

func Test_Refine_02(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Geq(B, k(0)))
	//
	require.NoError(t, s.RefineWithConstraints(linear.ConstraintSystem{linear.Leq(A.Plus(B), k(-1))}))
	assert.True(t, s.IsEmpty())
}

func Test_Unconstrain_01(t *testing.T) {
	s := shape(t, 3, linear.Leq(A, k(2)), linear.Leq(A.Minus(B), k(1)), linear.Leq(C, k(3)))
	//
	require.NoError(t, s.Unconstrain(0))
	assert.True(t, s.Equal(shape(t, 3, linear.Leq(C, k(3)))))
	// Implied bounds survive
	s = shape(t, 3, linear.Leq(A, k(2)), linear.Leq(B.Minus(A), k(1)), linear.Leq(C, k(3)))
	require.NoError(t, s.UnconstrainSet(linear.NewVarSet(0, 2)))
	assert.True(t, s.Equal(shape(t, 3, linear.Leq(B, k(3)))))
	//
	assert.ErrorIs(t, s.Unconstrain(linear.Variable(3)), ErrDimensionIncompatible)
}

func Test_Relation_01(t *testing.T) {
	s := shape(t, 1, linear.Eq(A, k(1)))
	//
	r, err := s.RelationWith(linear.Eq(A, k(1)))
	require.NoError(t, err)
	assert.True(t, r.Implies(relation.IsIncluded.And(relation.Saturates)))
	//
	r, _ = s.RelationWith(linear.Geq(A, k(0)))
	assert.Equal(t, relation.IsIncluded, r)
	//
	r, _ = s.RelationWith(linear.Gt(A, k(1)))
	assert.Equal(t, relation.Saturates.And(relation.IsDisjoint), r)
}

func Test_Relation_02(t *testing.T) {
	s := shape(t, 1, linear.Geq(A, k(1)))
	//
	r, _ := s.RelationWith(linear.Eq(A, k(1)))
	assert.Equal(t, relation.StrictlyIntersects, r)
	//
	r, _ = s.RelationWith(linear.Geq(A, k(1)))
	assert.Equal(t, relation.IsIncluded, r)
	//
	r, _ = s.RelationWith(linear.Lt(A, k(0)))
	assert.Equal(t, relation.IsDisjoint, r)
	//
	_, err := s.RelationWith(linear.Geq(B, k(0)))
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
}

func Test_Relation_03(t *testing.T) {
	// Included constraints have disjoint negations.
	s := shape(t, 2, linear.Geq(A, k(1)), linear.Leq(A.Minus(B), k(2)), linear.Leq(B, k(3)))
	cs := linear.ConstraintSystem{
		linear.Geq(A, k(0)), linear.Leq(A, k(5)), linear.Geq(B.Minus(A), k(-2)), linear.Leq(A.Plus(B), k(8)),
	}
	//
	for _, c := range cs {
		r, err := s.RelationWith(c)
		require.NoError(t, err)
		assert.True(t, r.Implies(relation.IsIncluded), c.String())
		//
		if nc, ok := c.Negate(); ok {
			r, err = s.RelationWith(nc)
			require.NoError(t, err)
			assert.True(t, r.Implies(relation.IsDisjoint), nc.String())
		}
	}
}

func Test_Relation_04(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)), linear.Leq(B.Minus(A), k(0)))
	//
	r, err := s.RelationWithGenerator(linear.Point(A.Plus(B)))
	require.NoError(t, err)
	assert.Equal(t, relation.Subsumes, r)
	//
	r, _ = s.RelationWithGenerator(linear.Point(A.Times(3)))
	assert.Equal(t, relation.GenNothing, r)
	// B may decrease indefinitely
	r, _ = s.RelationWithGenerator(linear.Ray(B.Neg()))
	assert.Equal(t, relation.Subsumes, r)
	r, _ = s.RelationWithGenerator(linear.Line(B))
	assert.Equal(t, relation.GenNothing, r)
	//
	_, err = s.RelationWithGenerator(linear.Point(C))
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
}

func Test_Optimise_01(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)), linear.Leq(B.Minus(A), k(1)), linear.Geq(B, k(0)))
	//
	opt, ok, err := s.Maximize(A.Plus(B))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "5", opt.Value.RatString())
	assert.True(t, opt.Attained)
	assert.Len(t, opt.Point, 2)
	//
	opt, ok, _ = s.Minimize(A.Minus(B.Times(2)))
	require.True(t, ok)
	assert.Equal(t, "-4", opt.Value.RatString())
	//
	ok, _ = s.BoundsFromAbove(A.Plus(B))
	assert.True(t, ok)
}

func Test_Optimise_02(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(B, k(1)))
	//
	_, ok, err := s.Maximize(A)
	require.NoError(t, err)
	assert.False(t, ok)
	//
	ok, _ = s.BoundsFromAbove(A)
	assert.False(t, ok)
	ok, _ = s.BoundsFromBelow(A.Minus(B))
	assert.True(t, ok)
	//
	e, _ := NewShape(2, linear.EmptyElement)
	_, ok, _ = e.Minimize(A)
	assert.False(t, ok)
	ok, _ = e.BoundsFromAbove(A)
	assert.True(t, ok)
	//
	_, _, err = s.Maximize(C)
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
}

func Test_Contains_01(t *testing.T) {
	x := shape(t, 2, linear.Leq(A, k(2)), linear.Geq(B, k(0)))
	y := shape(t, 2, linear.Leq(A, k(1)), linear.Geq(B, k(0)), linear.Leq(A.Minus(B), k(0)))
	//
	ok, err := x.Contains(y)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = x.StrictlyContains(y)
	assert.True(t, ok)
	ok, _ = y.Contains(x)
	assert.False(t, ok)
	ok, _ = x.StrictlyContains(x.Clone())
	assert.False(t, ok)
	//
	z := shape(t, 2, linear.Geq(A, k(3)))
	ok, _ = x.IsDisjointFrom(z)
	assert.True(t, ok)
	ok, _ = x.IsDisjointFrom(y)
	assert.False(t, ok)
	//
	_, err = x.Contains(shape(t, 3))
	assert.ErrorIs(t, err, ErrDimensionIncompatible)
}

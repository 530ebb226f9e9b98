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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AffinePreimage_01(t *testing.T) {
	s := shape(t, 2, linear.Leq(A, k(2)), linear.Leq(A.Minus(B), k(3)), linear.Leq(B, k(2)))
	//
	require.NoError(t, s.AffinePreimage(0, B, unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Leq(B, k(2)))), s.String())
	assert.Equal(t, "B <= 2", s.String())
}

func Test_AffineImage_01(t *testing.T) {
	s := shape(t, 3, linear.Leq(A, k(-1)), linear.Leq(B, k(0)), linear.Geq(C, k(0)))
	//
	require.NoError(t, s.AffineImage(0, A.Times(2), big.NewInt(3)))
	//
	expected := shape(t, 3, linear.Leq(A.Times(3), k(-2)), linear.Leq(B, k(0)), linear.Geq(C, k(0)))
	assert.True(t, s.Equal(expected), s.String())
}

func Test_AffineImage_02(t *testing.T) {
	// Invertible image followed by its preimage
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(3)), linear.Leq(B.Minus(A), k(1)))
	x := s.Clone()
	//
	require.NoError(t, x.AffineImage(0, A.PlusConst(2), unit()))
	assert.True(t, x.Equal(shape(t, 2, linear.Geq(A, k(2)), linear.Leq(A, k(5)), linear.Leq(B.Minus(A), k(-1)))),
		x.String())
	require.NoError(t, x.AffinePreimage(0, A.PlusConst(2), unit()))
	assert.True(t, x.Equal(s), x.String())
}

func Test_AffineImage_03(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Leq(B, k(7)))
	// B := A + 1
	require.NoError(t, s.AffineImage(1, A.PlusConst(1), unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Eq(B.Minus(A), k(1)))))
	// A := 5
	require.NoError(t, s.AffineImage(0, k(5), unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Eq(A, k(5)), linear.Geq(B, k(1)), linear.Leq(B, k(2)))), s.String())
}

func Test_AffineImage_04(t *testing.T) {
	s := shape(t, 3, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Geq(B, k(0)), linear.Leq(B, k(2)))
	// C := A + B
	require.NoError(t, s.AffineImage(2, A.Plus(B), unit()))
	//
	expected := shape(t, 3, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Geq(B, k(0)), linear.Leq(B, k(2)),
		linear.Geq(C, k(0)), linear.Leq(C, k(3)),
		linear.Geq(C.Minus(A), k(0)), linear.Leq(C.Minus(A), k(2)),
		linear.Geq(C.Minus(B), k(0)), linear.Leq(C.Minus(B), k(1)))
	assert.True(t, s.Equal(expected), s.String())
}

func Test_AffineImage_05(t *testing.T) {
	s := shape(t, 2)
	//
	assert.ErrorIs(t, s.AffineImage(0, A, big.NewInt(0)), ErrZeroDenominator)
	assert.ErrorIs(t, s.AffineImage(2, A, unit()), ErrDimensionIncompatible)
	assert.ErrorIs(t, s.AffinePreimage(0, C, unit()), ErrDimensionIncompatible)
	// Empty shapes are unaffected
	e, _ := NewShape(2, linear.EmptyElement)
	require.NoError(t, e.AffineImage(0, B, unit()))
	assert.True(t, e.IsEmpty())
}

func Test_GeneralizedAffineImage_01(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)), linear.Geq(B, k(1)), linear.Leq(B, k(3)))
	// A' <= B
	require.NoError(t, s.GeneralizedAffineImage(0, linear.LessOrEqual, B, unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Leq(A.Minus(B), k(0)), linear.Geq(B, k(1)), linear.Leq(B, k(3)))),
		s.String())
	// A' >= 2*B (approximated)
	require.NoError(t, s.GeneralizedAffineImage(0, linear.GreaterOrEqual, B.Times(2), unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(2)), linear.Geq(A.Minus(B), k(1)), linear.Geq(B, k(1)),
		linear.Leq(B, k(3)))), s.String())
}

func Test_GeneralizedAffineImage_02(t *testing.T) {
	s := shape(t, 2)
	//
	assert.ErrorIs(t, s.GeneralizedAffineImage(0, linear.LessThan, B, unit()), ErrStrictInequality)
	assert.ErrorIs(t, s.GeneralizedAffineImage(0, linear.NotEqual, B, unit()), ErrInvalidRelationSymbol)
	assert.ErrorIs(t, s.GeneralizedAffinePreimage(0, linear.GreaterThan, B, unit()), ErrStrictInequality)
	assert.ErrorIs(t, s.GeneralizedAffineImageLhsRhs(A, linear.NotEqual, B), ErrInvalidRelationSymbol)
	assert.ErrorIs(t, s.GeneralizedAffineImageLhsRhs(A, linear.Equal, C), ErrDimensionIncompatible)
	assert.ErrorIs(t, s.GeneralizedAffinePreimage(0, linear.Equal, B, big.NewInt(0)), ErrZeroDenominator)
}

func Test_GeneralizedAffineImage_03(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)))
	// Equality coincides with the affine image
	x := s.Clone()
	y := s.Clone()
	require.NoError(t, x.GeneralizedAffineImage(1, linear.Equal, A.PlusConst(1), unit()))
	require.NoError(t, y.AffineImage(1, A.PlusConst(1), unit()))
	assert.True(t, x.Equal(y))
	// The sign of the denominator does not affect the relation
	require.NoError(t, s.GeneralizedAffineImage(1, linear.LessOrEqual, A.Neg(), big.NewInt(-1)))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)), linear.Leq(B.Minus(A), k(0)))),
		s.String())
}

func Test_GeneralizedAffinePreimage_01(t *testing.T) {
	s := shape(t, 2, linear.Leq(A, k(2)), linear.Geq(B, k(0)), linear.Leq(B, k(5)))
	// A' >= B
	require.NoError(t, s.GeneralizedAffinePreimage(0, linear.GreaterOrEqual, B, unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(B, k(0)), linear.Leq(B, k(2)))), s.String())
}

func Test_GeneralizedAffinePreimage_02(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(4)), linear.Leq(B, k(1)))
	// A' <= A + 1 means the original A satisfies A + 1 >= 0
	require.NoError(t, s.GeneralizedAffinePreimage(0, linear.LessOrEqual, A.PlusConst(1), unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(-1)), linear.Leq(B, k(1)))), s.String())
}

func Test_GeneralizedAffineImageLhsRhs_01(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Geq(B, k(0)), linear.Leq(B, k(1)))
	// A' <= B + 1
	require.NoError(t, s.GeneralizedAffineImageLhsRhs(A, linear.LessOrEqual, B.PlusConst(1)))
	assert.Equal(t, uint(2), s.SpaceDimension())
	assert.True(t, s.Equal(shape(t, 2, linear.Leq(A.Minus(B), k(1)), linear.Geq(B, k(0)), linear.Leq(B, k(1)))),
		s.String())
	// Constant left-hand sides merely refine
	require.NoError(t, s.GeneralizedAffineImageLhsRhs(k(0), linear.LessOrEqual, B))
	assert.False(t, s.IsEmpty())
	require.NoError(t, s.GeneralizedAffineImageLhsRhs(k(2), linear.LessOrEqual, B))
	assert.True(t, s.IsEmpty())
}

func Test_GeneralizedAffinePreimageLhsRhs_01(t *testing.T) {
	s := shape(t, 2, linear.Leq(A, k(2)), linear.Leq(A.Minus(B), k(3)), linear.Leq(B, k(2)))
	x := s.Clone()
	//
	require.NoError(t, s.GeneralizedAffinePreimageLhsRhs(A, linear.Equal, B))
	require.NoError(t, x.AffinePreimage(0, B, unit()))
	assert.Equal(t, uint(2), s.SpaceDimension())
	assert.True(t, s.Equal(x), s.String())
}

func Test_BoundedAffineImage_01(t *testing.T) {
	s := shape(t, 2, linear.Geq(A, k(5)), linear.Leq(A, k(6)), linear.Geq(B, k(0)), linear.Leq(B, k(1)))
	// B <= A' <= B + 2
	require.NoError(t, s.BoundedAffineImage(0, B, B.PlusConst(2), unit()))
	//
	expected := shape(t, 2, linear.Geq(A.Minus(B), k(0)), linear.Leq(A.Minus(B), k(2)), linear.Geq(B, k(0)),
		linear.Leq(B, k(1)))
	assert.True(t, s.Equal(expected), s.String())
	//
	assert.ErrorIs(t, s.BoundedAffineImage(0, B, C, unit()), ErrDimensionIncompatible)
	assert.ErrorIs(t, s.BoundedAffineImage(0, B, B, big.NewInt(0)), ErrZeroDenominator)
}

func Test_BoundedAffinePreimage_01(t *testing.T) {
	s := shape(t, 2, linear.Leq(A, k(1)), linear.Geq(B, k(0)))
	// 0 <= A' <= 2
	require.NoError(t, s.BoundedAffinePreimage(0, k(0), k(2), unit()))
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(B, k(0)))), s.String())
	//
	s = shape(t, 2, linear.Geq(A, k(3)), linear.Geq(B, k(0)))
	require.NoError(t, s.BoundedAffinePreimage(0, k(0), k(2), unit()))
	assert.True(t, s.IsEmpty())
}

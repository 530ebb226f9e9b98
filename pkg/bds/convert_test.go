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

	"github.com/consensys/go-bdshape/pkg/box"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Box_01(t *testing.T) {
	b, err := box.FromConstraints(2, linear.ConstraintSystem{linear.Geq(A, k(1)), linear.Leq(A, k(3)),
		linear.Leq(B.Times(2), k(1))})
	require.NoError(t, err)
	//
	s, err := FromBox(b)
	require.NoError(t, err)
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A, k(1)), linear.Leq(A, k(3)), linear.Leq(B.Times(2), k(1)))))
	assert.True(t, s.ToBox().Equal(b))
}

func Test_Box_02(t *testing.T) {
	// Boxes lose relational information
	s := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(2)), linear.Leq(B.Minus(A), k(1)))
	b := s.ToBox()
	//
	assert.Equal(t, "A in [0,2], B in [-∞,3]", b.String())
	//
	r, err := FromBox(b)
	require.NoError(t, err)
	//
	ok, _ := r.StrictlyContains(s)
	assert.True(t, ok)
	// Empty
	e, _ := NewShape(2, linear.EmptyElement)
	assert.True(t, e.ToBox().IsEmpty())
	r, _ = FromBox(box.New(2, linear.EmptyElement))
	assert.True(t, r.IsEmpty())
}

func Test_Generators_01(t *testing.T) {
	gs := linear.GeneratorSystem{linear.Point(A), linear.Point(A.Plus(B.Times(2))), linear.Point(k(0))}
	//
	s, err := FromGenerators(gs)
	require.NoError(t, err)
	//
	expected := shape(t, 2, linear.Geq(A, k(0)), linear.Leq(A, k(1)), linear.Geq(B, k(0)), linear.Leq(B, k(2)),
		linear.Leq(A.Minus(B), k(1)), linear.Leq(B.Minus(A), k(1)))
	assert.True(t, s.Equal(expected), s.String())
	// Every generator is subsumed
	for _, g := range gs {
		r, err := s.RelationWithGenerator(g)
		require.NoError(t, err)
		assert.Equal(t, "subsumes", r.String())
	}
}

func Test_Generators_02(t *testing.T) {
	gs := linear.GeneratorSystem{linear.RationalPoint(A, big.NewInt(2)), linear.Ray(A), linear.Line(B)}
	//
	s, err := FromGenerators(gs)
	require.NoError(t, err)
	assert.True(t, s.Equal(shape(t, 2, linear.Geq(A.Times(2), k(1)))), s.String())
	// No points
	_, err = FromGenerators(linear.GeneratorSystem{linear.Ray(A)})
	assert.ErrorIs(t, err, ErrInvalidGenerators)
	// Empty system
	s, err = FromGenerators(linear.GeneratorSystem{})
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

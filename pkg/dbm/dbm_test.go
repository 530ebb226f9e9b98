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
	"testing"

	"github.com/consensys/go-bdshape/pkg/util/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Matrix_01(t *testing.T) {
	m := New(2)
	//
	assert.Equal(t, uint(3), m.Order())
	assert.True(t, m.IsUniverse())
	assert.True(t, m.Get(1, 1).Equals(math.Zero))
	assert.True(t, m.Get(1, 2).IsPosInfinity())
	assert.Panics(t, func() { m.Set(0, 1, math.NegInfinity) })
	//
	assert.True(t, m.Tighten(1, 0, bound(2)))
	assert.False(t, m.Tighten(1, 0, bound(3)))
	assert.False(t, m.IsUniverse())
}

func Test_Matrix_02(t *testing.T) {
	m := New(1)
	m.Set(1, 0, bound(5))
	// Grow then shrink
	m.Resize(3)
	assert.Equal(t, uint(3), m.SpaceDimension())
	assert.True(t, m.Get(1, 0).Equals(bound(5)))
	assert.True(t, m.Get(3, 0).IsPosInfinity())
	assert.True(t, m.Get(3, 3).Equals(math.Zero))
	m.Resize(1)
	//
	expected := New(1)
	expected.Set(1, 0, bound(5))
	assert.True(t, m.Equal(expected))
}

func Test_Matrix_03(t *testing.T) {
	m := New(2)
	m.Set(1, 0, bound(1))
	m.Set(0, 2, bound(-4))
	m.Set(1, 2, bound(7))
	// Swap the two variables
	r := m.Remap(2, func(i uint) (uint, bool) { return 3 - i, true })
	//
	assert.True(t, r.Get(2, 0).Equals(bound(1)))
	assert.True(t, r.Get(0, 1).Equals(bound(-4)))
	assert.True(t, r.Get(2, 1).Equals(bound(7)))
	// Drop the first variable
	r = m.Remap(1, func(i uint) (uint, bool) { return i - 1, i == 2 })
	assert.True(t, r.Get(0, 1).Equals(bound(-4)))
	assert.True(t, r.Get(1, 0).IsPosInfinity())
}

func Test_Matrix_04(t *testing.T) {
	a, b := New(1), New(1)
	a.Set(1, 0, bound(1))
	b.Set(1, 0, bound(3))
	b.Set(0, 1, bound(0))
	//
	assert.True(t, a.Clone().Equal(a))
	assert.False(t, a.LessOrEqual(b))
	c := a.Clone()
	c.MaxAssign(b)
	assert.True(t, c.Get(1, 0).Equals(bound(3)))
	assert.True(t, c.Get(0, 1).IsPosInfinity())
	assert.True(t, c.MinAssign(b))
	assert.True(t, c.Equal(b))
	assert.False(t, c.MinAssign(b))
}

func Test_Close_01(t *testing.T) {
	// x <= 2, x - y <= 3, y <= 2
	m := New(2)
	m.Set(1, 0, bound(2))
	m.Set(1, 2, bound(3))
	m.Set(2, 0, bound(2))
	m.Set(0, 2, bound(-1))
	//
	require.True(t, Close(m))
	assert.True(t, IsClosed(m))
	// x - y <= 2 - 1
	assert.True(t, m.Get(1, 2).Equals(bound(1)))
	// Idempotent
	c := m.Clone()
	require.True(t, Close(c))
	assert.True(t, c.Equal(m))
}

func Test_Close_02(t *testing.T) {
	// x <= 2, x >= 5
	m := New(1)
	m.Set(1, 0, bound(2))
	m.Set(0, 1, bound(-5))
	//
	assert.False(t, Close(m))
}

func Test_Close_03(t *testing.T) {
	// x - y <= -1, y - z <= -1, z - x <= 1
	m := New(3)
	m.Set(1, 2, bound(-1))
	m.Set(2, 3, bound(-1))
	m.Set(3, 1, bound(1))
	//
	assert.False(t, Close(m))
}

func Test_IncrementalClose_01(t *testing.T) {
	m := New(3)
	m.Set(1, 2, bound(1))
	m.Set(2, 3, bound(1))
	require.True(t, Close(m))
	// Now constrain z <= 0
	n := m.Clone()
	m.Set(3, 0, bound(0))
	n.Set(3, 0, bound(0))
	require.True(t, IncrementalClose(m, 3))
	require.True(t, Close(n))
	assert.True(t, m.Equal(n))
	assert.True(t, m.Get(1, 0).Equals(bound(2)))
	// Then z >= 1
	m.Set(0, 3, bound(-1))
	assert.False(t, IncrementalClose(m, 3))
}

func Test_Reduce_01(t *testing.T) {
	// x <= 1, y <= 2, x - y <= 1 (redundant wrt. closure)
	m := New(2)
	m.Set(1, 0, bound(1))
	m.Set(2, 0, bound(2))
	m.Set(0, 2, bound(0))
	require.True(t, Close(m))
	//
	r := Reduce(m)
	assert.True(t, r.IsNonRedundant(1, 0))
	assert.True(t, r.IsNonRedundant(2, 0))
	assert.True(t, r.IsNonRedundant(0, 2))
	// x - y <= 1 follows from x <= 1 and -y <= 0
	assert.True(t, r.IsRedundant(1, 2))
	assert.Equal(t, uint(3), r.Count())
}

func Test_Reduce_02(t *testing.T) {
	// x == y, y == 3
	m := New(2)
	m.Set(1, 2, bound(0))
	m.Set(2, 1, bound(0))
	m.Set(2, 0, bound(3))
	m.Set(0, 2, bound(-3))
	require.True(t, Close(m))
	//
	r := Reduce(m)
	assert.Equal(t, uint(0), r.Leader(1))
	assert.Equal(t, uint(0), r.Leader(2))
	// Single cycle 0 -> 1 -> 2 -> 0
	assert.True(t, r.IsNonRedundant(0, 1))
	assert.True(t, r.IsNonRedundant(1, 2))
	assert.True(t, r.IsNonRedundant(2, 0))
	assert.Equal(t, uint(3), r.Count())
}

func Test_TightenInteger_01(t *testing.T) {
	// 2A >= 1, 2B >= -1, 2A - 2B >= 1
	m := New(2)
	m.Set(0, 1, math.NewInfRat64(-1, 2))
	m.Set(0, 2, math.NewInfRat64(1, 2))
	m.Set(2, 1, math.NewInfRat64(-1, 2))
	require.True(t, Close(m))
	assert.False(t, IsIntegral(m))
	//
	assert.True(t, TightenInteger(m, func(uint) bool { return true }))
	require.True(t, Close(m))
	assert.True(t, IsIntegral(m))
	assert.True(t, m.Get(0, 1).Equals(bound(-1)))
	assert.True(t, m.Get(0, 2).Equals(bound(0)))
	assert.True(t, m.Get(2, 1).Equals(bound(-1)))
}

func Test_TightenInteger_02(t *testing.T) {
	// 2A == 1 has no integral solution
	m := New(1)
	m.Set(1, 0, math.NewInfRat64(1, 2))
	m.Set(0, 1, math.NewInfRat64(-1, 2))
	require.True(t, Close(m))
	// Only non-integral indices are untouched
	assert.False(t, TightenInteger(m, func(uint) bool { return false }))
	assert.True(t, TightenInteger(m, func(uint) bool { return true }))
	assert.False(t, Close(m))
}

func bound(val int64) math.InfRat {
	return math.NewInfRat64(val, 1)
}

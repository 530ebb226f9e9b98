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
package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InfRat_Add_01(t *testing.T) {
	x := NewInfRat64(1, 2)
	y := NewInfRat64(1, 3)
	assert.Equal(t, "5/6", x.Add(y).String())
}

func Test_InfRat_Add_02(t *testing.T) {
	x := NewInfRat64(-7, 1)
	assert.True(t, x.Add(PosInfinity).IsPosInfinity())
	assert.True(t, NegInfinity.Add(x).IsNegInfinity())
	assert.Panics(t, func() { PosInfinity.Add(NegInfinity) })
}

func Test_InfRat_Add_03(t *testing.T) {
	// Operands must not be modified by arithmetic.
	x := NewInfRat64(3, 1)
	y := NewInfRat64(4, 1)
	z := x.Add(y)
	assert.Equal(t, "3", x.String())
	assert.Equal(t, "4", y.String())
	assert.Equal(t, "7", z.String())
}

func Test_InfRat_Cmp_01(t *testing.T) {
	x := NewInfRat64(1, 2)
	assert.Equal(t, -1, NegInfinity.Cmp(x))
	assert.Equal(t, 1, PosInfinity.Cmp(x))
	assert.Equal(t, 0, PosInfinity.Cmp(PosInfinity))
	assert.Equal(t, -1, x.Cmp(NewInfRat64(2, 3)))
	assert.Equal(t, 0, x.Cmp(NewInfRat64(2, 4)))
}

func Test_InfRat_MulRat_01(t *testing.T) {
	assert.True(t, PosInfinity.MulRat(big.NewRat(-2, 1)).IsNegInfinity())
	assert.True(t, PosInfinity.MulRat(big.NewRat(0, 1)).IsFinite())
	assert.Equal(t, "-2/3", NewInfRat64(-1, 1).MulRat(big.NewRat(2, 3)).String())
	assert.Equal(t, "-3/2", NewInfRat64(1, 1).DivRat(big.NewRat(-2, 3)).String())
}

func Test_InfRat_Floor_01(t *testing.T) {
	checkFloorCeil(t, 1, 2, "0", "1")
	checkFloorCeil(t, -1, 2, "-1", "0")
	checkFloorCeil(t, 7, 3, "2", "3")
	checkFloorCeil(t, -7, 3, "-3", "-2")
	checkFloorCeil(t, 4, 1, "4", "4")
}

func Test_InfRat_Floor_02(t *testing.T) {
	assert.True(t, PosInfinity.Floor().IsPosInfinity())
	assert.True(t, NegInfinity.Ceil().IsNegInfinity())
}

func Test_Interval_01(t *testing.T) {
	a := NewInterval64(1, 3)
	b := NewInterval64(7, 12)
	assert.Equal(t, "[1,12]", a.Insert(b).String())
	assert.True(t, a.Intersect(b).IsEmpty())
	assert.Equal(t, "[8,15]", a.Add(b).String())
	assert.Equal(t, "[-11,-4]", a.Sub(b).String())
}

func Test_Interval_02(t *testing.T) {
	a := NewInterval(NegInfinity, NewInfRat64(2, 1))
	b := a.ScaleRat(big.NewRat(-1, 2))
	assert.Equal(t, "[-1,+∞]", b.String())
	assert.True(t, b.Contains(big.NewRat(100, 1)))
	assert.False(t, b.Contains(big.NewRat(-2, 1)))
	assert.True(t, NewInterval64(0, 1).Within(b))
	assert.True(t, EMPTY.Within(b))
}

func checkFloorCeil(t *testing.T, num, den int64, floor, ceil string) {
	t.Helper()
	//
	x := NewInfRat64(num, den)
	assert.Equal(t, floor, x.Floor().String())
	assert.Equal(t, ceil, x.Ceil().String())
}

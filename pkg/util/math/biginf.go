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
	"fmt"
	"math/big"
)

const notAnInfinity = 0
const negativeInfinity = 1
const positiveInfinity = 2

// PosInfinity represents positive infinity
var PosInfinity = InfRat{big.Rat{}, positiveInfinity}

// NegInfinity represents negative infinity
var NegInfinity = InfRat{big.Rat{}, negativeInfinity}

// Zero represents the finite value 0.
var Zero = InfRat{big.Rat{}, notAnInfinity}

// InfRat represents an unbound (i.e. big) rational value which can,
// additionally, be either negative infinity or positive infinity.  Values are
// immutable: every operation returns a fresh value and never modifies the
// underlying rational of its operands.
type InfRat struct {
	// value of this rational, meaningless when sign signals an infinity.
	val big.Rat
	// sign indicates whether we are not an infinity, or are negative infinity
	// or positive infinity.
	sign uint8
}

// NewInfRat constructs a finite value from a given rational.  Observe this will
// clone the given rational.
func NewInfRat(val *big.Rat) InfRat {
	var r InfRat
	//
	r.val.Set(val)
	//
	return r
}

// NewInfRat64 constructs the finite value num/den.  This will panic if den is
// zero.
func NewInfRat64(num int64, den int64) InfRat {
	var r InfRat
	//
	r.val.SetFrac64(num, den)
	//
	return r
}

// NewInfInt constructs a finite (integral) value from a given big integer.
func NewInfInt(val *big.Int) InfRat {
	var r InfRat
	//
	r.val.SetInt(val)
	//
	return r
}

// Add two (potentially infinite) rationals together.  Adding positive and
// negative infinity is undefined and will panic.
func (p InfRat) Add(other InfRat) InfRat {
	var val big.Rat
	//
	switch {
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		val.Add(&p.val, &other.val)
		//
		return InfRat{val, notAnInfinity}
	case p.sign == notAnInfinity:
		return other
	case other.sign == notAnInfinity || p.sign == other.sign:
		return p
	default:
		panic(fmt.Sprintf("undefined sum (%s + %s)", p.String(), other.String()))
	}
}

// Sub subtracts a (potentially infinite) value from this (potentially infinite)
// value.
func (p InfRat) Sub(other InfRat) InfRat {
	return p.Add(other.Neg())
}

// AddRat adds a finite rational onto this (potentially infinite) value.
func (p InfRat) AddRat(other *big.Rat) InfRat {
	if p.sign != notAnInfinity {
		return p
	}
	//
	var val big.Rat
	//
	val.Add(&p.val, other)
	//
	return InfRat{val, notAnInfinity}
}

// Neg negates this (potentially infinite) rational.
func (p InfRat) Neg() InfRat {
	switch p.sign {
	case positiveInfinity:
		return NegInfinity
	case negativeInfinity:
		return PosInfinity
	default:
		var val big.Rat
		//
		val.Neg(&p.val)
		//
		return InfRat{val, notAnInfinity}
	}
}

// MulRat multiplies this (potentially infinite) value by a finite rational.
// Multiplying an infinity by zero yields zero, which is the convention used
// when evaluating linear expressions whose coefficient is zero.
func (p InfRat) MulRat(factor *big.Rat) InfRat {
	switch {
	case factor.Sign() == 0:
		return Zero
	case p.sign == notAnInfinity:
		var val big.Rat
		//
		val.Mul(&p.val, factor)
		//
		return InfRat{val, notAnInfinity}
	case factor.Sign() > 0:
		return p
	default:
		return p.Neg()
	}
}

// DivRat divides this (potentially infinite) value by a non-zero finite
// rational.  This will panic if the divisor is zero.
func (p InfRat) DivRat(divisor *big.Rat) InfRat {
	if divisor.Sign() == 0 {
		panic("division by zero")
	}
	//
	var inv big.Rat
	//
	inv.Inv(divisor)
	//
	return p.MulRat(&inv)
}

// Cmp performs a comparison of two (potentially infinite) rational values.
// Infinities of the same sign compare equal.
func (p InfRat) Cmp(o InfRat) int {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return p.val.Cmp(&o.val)
	case p.sign == o.sign:
		return 0
	case p.sign == negativeInfinity || o.sign == positiveInfinity:
		return -1
	default:
		return 1
	}
}

// CmpRat compares a potentially infinite value against a finite rational.
func (p InfRat) CmpRat(other *big.Rat) int {
	switch p.sign {
	case notAnInfinity:
		return p.val.Cmp(other)
	case negativeInfinity:
		return -1
	default:
		return 1
	}
}

// Equals checks whether two (potentially infinite) values are identical.
func (p InfRat) Equals(o InfRat) bool {
	return p.Cmp(o) == 0
}

// Min determines the least of two values.
func (p InfRat) Min(o InfRat) InfRat {
	if p.Cmp(o) <= 0 {
		return p
	}
	//
	return o
}

// Max determines the greatest of two values.
func (p InfRat) Max(o InfRat) InfRat {
	if p.Cmp(o) >= 0 {
		return p
	}
	//
	return o
}

// Floor returns the greatest integer not greater than this value.  Infinities
// are returned unchanged.
func (p InfRat) Floor() InfRat {
	if p.sign != notAnInfinity || p.val.IsInt() {
		return p
	}
	//
	var (
		q   big.Int
		m   big.Int
		val big.Rat
	)
	// Euclidean division rounds towards negative infinity for positive
	// denominators, which big.Rat always has.
	q.DivMod(p.val.Num(), p.val.Denom(), &m)
	val.SetInt(&q)
	//
	return InfRat{val, notAnInfinity}
}

// Ceil returns the least integer not less than this value.  Infinities are
// returned unchanged.
func (p InfRat) Ceil() InfRat {
	return p.Neg().Floor().Neg()
}

// IsFinite returns true if this represents a finite rational value.
func (p InfRat) IsFinite() bool {
	return p.sign == notAnInfinity
}

// IsPosInfinity returns true if this represents positive infinity.
func (p InfRat) IsPosInfinity() bool {
	return p.sign == positiveInfinity
}

// IsNegInfinity returns true if this represents negative infinity.
func (p InfRat) IsNegInfinity() bool {
	return p.sign == negativeInfinity
}

// IsInteger returns true if this is a finite integral value.
func (p InfRat) IsInteger() bool {
	return p.sign == notAnInfinity && p.val.IsInt()
}

// Sign returns -1, 0 or +1 depending on the sign of this value, where
// infinities have the sign of their direction.
func (p InfRat) Sign() int {
	switch p.sign {
	case positiveInfinity:
		return 1
	case negativeInfinity:
		return -1
	default:
		return p.val.Sign()
	}
}

// Rat converts a potentially infinite rational into a finite value.  This will
// panic if this value is an infinity.  The result is a fresh copy.
func (p InfRat) Rat() *big.Rat {
	if p.sign != notAnInfinity {
		panic("cannot cast infinity into a big rational")
	}
	//
	return new(big.Rat).Set(&p.val)
}

func (p InfRat) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-∞"
	case positiveInfinity:
		return "+∞"
	default:
		return p.val.RatString()
	}
}

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

// UNIVERSE represents the interval which encloses all other intervals.
var UNIVERSE Interval = Interval{NegInfinity, PosInfinity}

// EMPTY represents the interval which contains no values at all.
var EMPTY Interval = Interval{PosInfinity, NegInfinity}

// Interval provides a closed range of rationals, such as [0,1], [-1/2,18],
// etc.  Either bound may be infinite, in which case the interval is unbounded
// in that direction.  An interval whose lower bound exceeds its upper bound is
// empty.  Intervals are used to approximate the possible values that a given
// linear expression could evaluate to.
type Interval struct {
	min InfRat
	max InfRat
}

// NewInterval creates an interval representing a given (possibly empty) range.
func NewInterval(lower InfRat, upper InfRat) Interval {
	return Interval{lower, upper}
}

// NewInterval64 creates an interval representing a given integer range.
func NewInterval64(lower int64, upper int64) Interval {
	return Interval{NewInfRat64(lower, 1), NewInfRat64(upper, 1)}
}

// PointInterval creates the singleton interval [val,val].
func PointInterval(val InfRat) Interval {
	return Interval{val, val}
}

// IsEmpty determines whether or not this interval contains no values.
func (p Interval) IsEmpty() bool {
	return p.min.Cmp(p.max) > 0 || p.min.IsPosInfinity() || p.max.IsNegInfinity()
}

// IsFinite determines whether or not both bounds of this interval are finite.
func (p Interval) IsFinite() bool {
	return p.min.IsFinite() && p.max.IsFinite()
}

// IsUniverse determines whether or not this interval is unbounded in both
// directions.
func (p Interval) IsUniverse() bool {
	return p.min.IsNegInfinity() && p.max.IsPosInfinity()
}

// IsSingleton determines whether or not this interval contains exactly one
// value.
func (p Interval) IsSingleton() bool {
	return p.IsFinite() && p.min.Cmp(p.max) == 0
}

// MinValue returns the minimum value that this interval includes.
func (p Interval) MinValue() InfRat {
	return p.min
}

// MaxValue returns the maximum value that this interval includes.
func (p Interval) MaxValue() InfRat {
	return p.max
}

// Contains checks whether a given value is contained with this interval
func (p Interval) Contains(val *big.Rat) bool {
	return p.min.CmpRat(val) <= 0 && p.max.CmpRat(val) >= 0
}

// Within checks whether this interval is contained within the given bounds.
func (p Interval) Within(val Interval) bool {
	if p.IsEmpty() {
		return true
	}
	//
	return p.min.Cmp(val.min) >= 0 && p.max.Cmp(val.max) <= 0
}

// Equals checks whether two intervals contain exactly the same values.
func (p Interval) Equals(o Interval) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return p.IsEmpty() && o.IsEmpty()
	}
	//
	return p.min.Cmp(o.min) == 0 && p.max.Cmp(o.max) == 0
}

// Insert returns the least interval enclosing both this interval and the given
// interval (i.e. their hull).
func (p Interval) Insert(val Interval) Interval {
	switch {
	case p.IsEmpty():
		return val
	case val.IsEmpty():
		return p
	}
	//
	return Interval{p.min.Min(val.min), p.max.Max(val.max)}
}

// Intersect returns the intersection of this interval with another.
func (p Interval) Intersect(val Interval) Interval {
	return Interval{p.min.Max(val.min), p.max.Min(val.max)}
}

// Add two intervals together
func (p Interval) Add(q Interval) Interval {
	if p.IsEmpty() || q.IsEmpty() {
		return EMPTY
	}
	//
	return Interval{p.min.Add(q.min), p.max.Add(q.max)}
}

// Sub subtracts another interval from this.
func (p Interval) Sub(q Interval) Interval {
	if p.IsEmpty() || q.IsEmpty() {
		return EMPTY
	}
	//
	return Interval{p.min.Sub(q.max), p.max.Sub(q.min)}
}

// ScaleRat multiplies this interval by a finite rational.  A negative factor
// swaps the bounds.
func (p Interval) ScaleRat(factor *big.Rat) Interval {
	if p.IsEmpty() {
		return EMPTY
	}
	//
	lo := p.min.MulRat(factor)
	hi := p.max.MulRat(factor)
	//
	if factor.Sign() < 0 {
		return Interval{hi, lo}
	}
	//
	return Interval{lo, hi}
}

func (p Interval) String() string {
	if p.IsEmpty() {
		return "∅"
	}
	//
	return fmt.Sprintf("[%s,%s]", p.min.String(), p.max.String())
}

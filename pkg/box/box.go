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
package box

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/relation"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// ErrDimensionIncompatible is returned when a constraint, expression or box
// has a space dimension greater than that of the box it is combined with.
var ErrDimensionIncompatible = errors.New("dimension incompatible")

// ErrNotInterval is returned when a constraint involving more than one
// variable is added to a box.
var ErrNotInterval = errors.New("not an interval constraint")

// Box is a rational box, i.e. the cartesian product of one closed interval for
// each dimension.
type Box struct {
	intervals []math.Interval
	empty     bool
}

// New constructs either the universe or the empty box of a given dimension.
func New(dim uint, kind linear.DegenerateElement) *Box {
	var b = &Box{make([]math.Interval, dim), kind == linear.EmptyElement}
	//
	for i := range b.intervals {
		b.intervals[i] = math.UNIVERSE
	}
	//
	return b
}

// FromConstraints constructs the box of a given dimension described by a
// system of interval constraints.
func FromConstraints(dim uint, cs linear.ConstraintSystem) (*Box, error) {
	var b = New(dim, linear.UniverseElement)
	//
	for _, c := range cs {
		if err := b.AddConstraint(c); err != nil {
			return nil, err
		}
	}
	//
	return b, nil
}

// SpaceDimension returns the dimension of this box.
func (b *Box) SpaceDimension() uint {
	return uint(len(b.intervals))
}

// Clone returns a deep copy of this box.
func (b *Box) Clone() *Box {
	var intervals = make([]math.Interval, len(b.intervals))
	//
	copy(intervals, b.intervals)
	//
	return &Box{intervals, b.empty}
}

// Interval returns the interval of a given variable.
func (b *Box) Interval(v linear.Variable) math.Interval {
	if b.IsEmpty() {
		return math.EMPTY
	}
	//
	return b.intervals[v]
}

// SetInterval assigns the interval of a given variable.
func (b *Box) SetInterval(v linear.Variable, itv math.Interval) {
	b.intervals[v] = itv
	b.empty = b.empty || itv.IsEmpty()
}

// IsEmpty checks whether this box contains no points.
func (b *Box) IsEmpty() bool {
	if b.empty {
		return true
	}
	//
	for _, itv := range b.intervals {
		if itv.IsEmpty() {
			b.empty = true
			return true
		}
	}
	//
	return false
}

// IsUniverse checks whether this box contains every point.
func (b *Box) IsUniverse() bool {
	if b.IsEmpty() {
		return false
	}
	//
	for _, itv := range b.intervals {
		if !itv.IsUniverse() {
			return false
		}
	}
	//
	return true
}

// IsBounded checks whether every interval of this box is finite.
func (b *Box) IsBounded() bool {
	if b.IsEmpty() {
		return true
	}
	//
	for _, itv := range b.intervals {
		if !itv.IsFinite() {
			return false
		}
	}
	//
	return true
}

// AddConstraint intersects this box with a constraint involving at most one
// variable.  Strict inequalities are approximated by their closure.
func (b *Box) AddConstraint(c linear.Constraint) error {
	if c.SpaceDimension() > b.SpaceDimension() {
		return fmt.Errorf("%w: %s in %d dimensions", ErrDimensionIncompatible, c.String(), b.SpaceDimension())
	} else if c.IsInconsistent() {
		b.empty = true
		return nil
	} else if c.IsTautological() {
		return nil
	}
	//
	v, j, a, k, ok := c.BoundedDifference()
	//
	if !ok || j != nil {
		return fmt.Errorf("%w: %s", ErrNotInterval, c.String())
	}
	// a*v + k ⋈ 0 gives a bound of -k/a on v.
	var (
		val = math.NewInfRat(new(big.Rat).SetFrac(k.Neg(k), a))
		itv math.Interval
	)
	//
	switch {
	case c.IsEquality():
		itv = math.PointInterval(val)
	case a.Sign() > 0:
		itv = math.NewInterval(val, math.PosInfinity)
	default:
		itv = math.NewInterval(math.NegInfinity, val)
	}
	//
	b.SetInterval(v, b.intervals[v].Intersect(itv))
	//
	return nil
}

// Evaluate determines the exact range of values a given expression takes over
// this box.
func (b *Box) Evaluate(e linear.Expr) (math.Interval, error) {
	if e.SpaceDimension() > b.SpaceDimension() {
		return math.EMPTY, fmt.Errorf("%w: %s in %d dimensions", ErrDimensionIncompatible, e.String(), b.SpaceDimension())
	} else if b.IsEmpty() {
		return math.EMPTY, nil
	}
	//
	var itv = math.PointInterval(math.NewInfInt(e.Inhomogeneous()))
	//
	for _, v := range e.NonZeroVars() {
		k := new(big.Rat).SetInt(e.Coefficient(v))
		itv = itv.Add(b.intervals[v].ScaleRat(k))
	}
	//
	return itv, nil
}

// RelationWith determines the relationship between this box and a given
// constraint.
func (b *Box) RelationWith(c linear.Constraint) (relation.ConRelation, error) {
	itv, err := b.Evaluate(c.Expr())
	//
	if err != nil {
		return relation.Nothing, err
	} else if itv.IsEmpty() {
		return relation.Empty, nil
	}
	//
	return relation.Classify(c.Kind(), itv.MinValue(), itv.MaxValue()), nil
}

// Contains checks whether this box contains another box of the same
// dimension.
func (b *Box) Contains(o *Box) (bool, error) {
	if b.SpaceDimension() != o.SpaceDimension() {
		return false, fmt.Errorf("%w: %d vs %d dimensions", ErrDimensionIncompatible, b.SpaceDimension(),
			o.SpaceDimension())
	} else if o.IsEmpty() {
		return true, nil
	} else if b.IsEmpty() {
		return false, nil
	}
	//
	for i, itv := range o.intervals {
		if !itv.Within(b.intervals[i]) {
			return false, nil
		}
	}
	//
	return true, nil
}

// Equal checks whether two boxes contain the same points.
func (b *Box) Equal(o *Box) bool {
	if b.SpaceDimension() != o.SpaceDimension() {
		return false
	} else if b.IsEmpty() || o.IsEmpty() {
		return b.IsEmpty() == o.IsEmpty()
	}
	//
	for i, itv := range o.intervals {
		if !itv.Equals(b.intervals[i]) {
			return false
		}
	}
	//
	return true
}

// UpperBoundAssign assigns to this box the smallest box containing both it
// and another.
func (b *Box) UpperBoundAssign(o *Box) error {
	if b.SpaceDimension() != o.SpaceDimension() {
		return fmt.Errorf("%w: %d vs %d dimensions", ErrDimensionIncompatible, b.SpaceDimension(),
			o.SpaceDimension())
	} else if o.IsEmpty() {
		return nil
	} else if b.IsEmpty() {
		*b = *o.Clone()
		return nil
	}
	//
	for i, itv := range o.intervals {
		b.intervals[i] = b.intervals[i].Insert(itv)
	}
	//
	return nil
}

// IntersectionAssign assigns to this box its intersection with another.
func (b *Box) IntersectionAssign(o *Box) error {
	if b.SpaceDimension() != o.SpaceDimension() {
		return fmt.Errorf("%w: %d vs %d dimensions", ErrDimensionIncompatible, b.SpaceDimension(),
			o.SpaceDimension())
	}
	//
	for i, itv := range o.intervals {
		b.SetInterval(linear.Variable(i), b.intervals[i].Intersect(itv))
	}
	//
	b.empty = b.empty || o.empty
	//
	return nil
}

// Constraints returns the interval constraints describing this box.  An empty
// box is described by the single constraint 0 >= 1.
func (b *Box) Constraints() linear.ConstraintSystem {
	var cs linear.ConstraintSystem
	//
	if b.IsEmpty() {
		return linear.ConstraintSystem{linear.Geq(linear.NewExpr(0), linear.NewExpr(1))}
	}
	//
	for i, itv := range b.intervals {
		var (
			v      = linear.Variable(i)
			lo, hi = itv.MinValue(), itv.MaxValue()
		)
		//
		switch {
		case itv.IsSingleton():
			cs = append(cs, linear.DifferenceEq(&v, nil, lo.Rat()))
			continue
		case lo.IsFinite():
			cs = append(cs, linear.DifferenceLeq(nil, &v, lo.Neg().Rat()))
		}
		//
		if hi.IsFinite() {
			cs = append(cs, linear.DifferenceLeq(&v, nil, hi.Rat()))
		}
	}
	//
	return cs
}

func (b *Box) String() string {
	var items []string
	//
	if b.IsEmpty() {
		return "false"
	}
	//
	for i, itv := range b.intervals {
		if !itv.IsUniverse() {
			items = append(items, fmt.Sprintf("%s in %s", linear.Variable(i), itv.String()))
		}
	}
	//
	if len(items) == 0 {
		return "true"
	}
	//
	return strings.Join(items, ", ")
}

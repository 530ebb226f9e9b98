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

	"github.com/consensys/go-bdshape/pkg/dbm"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/relation"
)

// IntersectionAssign assigns to this shape its intersection with another of
// the same dimension.
func (s *Shape) IntersectionAssign(o *Shape) error {
	if s.SpaceDimension() != o.SpaceDimension() {
		return dimensionError("IntersectionAssign", "shape", o.SpaceDimension(), s.SpaceDimension())
	} else if o.status == statusEmpty {
		s.setEmpty()
	} else if s.status != statusEmpty && s.matrix.MinAssign(o.matrix) {
		s.markNotClosed()
	}
	//
	return nil
}

// UpperBoundAssign assigns to this shape the smallest shape containing both
// it and another of the same dimension (i.e. their convex hull, approximated
// by bounded differences).
func (s *Shape) UpperBoundAssign(o *Shape) error {
	if s.SpaceDimension() != o.SpaceDimension() {
		return dimensionError("UpperBoundAssign", "shape", o.SpaceDimension(), s.SpaceDimension())
	}
	//
	s.upperBound(o)
	//
	return nil
}

// UpperBoundAssignIfExact assigns to this shape the upper bound of it and
// another, provided this upper bound is exactly their union.  Otherwise, this
// shape is left unchanged and false is returned.
func (s *Shape) UpperBoundAssignIfExact(o *Shape) (bool, error) {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false, dimensionError("UpperBoundAssignIfExact", "shape", o.SpaceDimension(), s.SpaceDimension())
	}
	//
	return s.upperBoundIfExact(o, false), nil
}

// IntegerUpperBoundAssignIfExact is the variant of UpperBoundAssignIfExact
// considering only integral points.  That is, the upper bound is assigned if
// every integral point it contains is contained in one of the two shapes.
// Upon success, the result is the upper bound of the integral tightening of
// both shapes.
func (s *Shape) IntegerUpperBoundAssignIfExact(o *Shape) (bool, error) {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false, dimensionError("IntegerUpperBoundAssignIfExact", "shape", o.SpaceDimension(),
			s.SpaceDimension())
	}
	//
	return s.upperBoundIfExact(o, true), nil
}

// DifferenceAssign assigns to this shape the smallest shape containing every
// point of it not contained in another.
func (s *Shape) DifferenceAssign(o *Shape) error {
	if s.SpaceDimension() != o.SpaceDimension() {
		return dimensionError("DifferenceAssign", "shape", o.SpaceDimension(), s.SpaceDimension())
	} else if !o.close() || !s.close() {
		return nil
	} else if o.contains(s) {
		s.setEmpty()
		return nil
	}
	//
	result, _ := NewShape(s.SpaceDimension(), linear.EmptyElement)
	//
	for _, c := range o.MinimizedConstraints() {
		// Skip constraints satisfied by every point
		if rel, _ := s.RelationWith(c); rel.Implies(relation.IsIncluded) {
			continue
		}
		// Each piece is the closure of part of the complement of c.
		var (
			e      = c.Expr()
			zero   = linear.NewExpr(0)
			pieces = []linear.Constraint{linear.Leq(e, zero)}
		)
		//
		if c.IsEquality() {
			pieces = append(pieces, linear.Geq(e, zero))
		}
		//
		for _, p := range pieces {
			z := s.Clone()
			z.refine(p)
			//
			if z.close() {
				result.upperBound(z)
			}
		}
	}
	//
	*s = *result
	//
	return nil
}

// DropSomeNonIntegerPoints removes from this shape some points with
// non-integral coordinates, by rounding every bound down to an integer.  No
// integral point is removed.
func (s *Shape) DropSomeNonIntegerPoints() {
	if !s.close() {
		return
	}
	//
	if dbm.TightenInteger(s.matrix, func(uint) bool { return true }) {
		s.markNotClosed()
	}
}

// DropSomeNonIntegerPointsOf is the variant of DropSomeNonIntegerPoints which
// only tightens bounds whose variables are all in a given set.
func (s *Shape) DropSomeNonIntegerPointsOf(vs linear.VarSet) error {
	if vs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("DropSomeNonIntegerPointsOf", "variable set", vs.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() {
		return nil
	}
	//
	integral := func(i uint) bool { return vs.Contains(*variable(i)) }
	//
	if dbm.TightenInteger(s.matrix, integral) {
		s.markNotClosed()
	}
	//
	return nil
}

// Assign the upper bound of this shape and another of the same dimension.
func (s *Shape) upperBound(o *Shape) {
	if !o.close() {
		return
	} else if !s.close() {
		*s = *o.Clone()
		return
	}
	// Max of two closed matrices is closed.
	s.matrix.MaxAssign(o.matrix)
	s.markClosed()
}

// Assign the upper bound of this shape and another, provided it is exact.
// For every non-redundant bound xi - xj <= k of this shape, the points of the
// upper bound violating it must be contained in the other shape.  Since these
// points form the set U ∧ xi - xj > k, it suffices to check its closure U ∧ xi
// - xj >= k (or, for integers, U ∧ xi - xj >= k+1).
func (s *Shape) upperBoundIfExact(o *Shape, integer bool) bool {
	var x, y = s.Clone(), o.Clone()
	//
	if integer {
		x.DropSomeNonIntegerPoints()
		y.DropSomeNonIntegerPoints()
	}
	//
	if !y.close() {
		*s = *x
		return true
	} else if !x.close() {
		*s = *y
		return true
	}
	//
	var (
		u = x.Clone()
		r = x.reduce()
		n = x.matrix.Order()
	)
	//
	u.upperBound(y)
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			k := x.matrix.Get(i, j)
			//
			if i == j || r.IsRedundant(i, j) || u.matrix.Get(i, j).Cmp(k) <= 0 {
				continue
			}
			// Points of u violating the bound.
			if integer {
				k = k.AddRat(one)
			}
			//
			z := u.Clone()
			z.matrix.Tighten(j, i, k.Neg())
			z.markNotClosed()
			//
			if integer {
				z.DropSomeNonIntegerPoints()
			}
			//
			if z.close() && !y.contains(z) {
				return false
			}
		}
	}
	//
	*s = *u
	//
	return true
}

var one = big.NewRat(1, 1)

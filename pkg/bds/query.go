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

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/lp"
	"github.com/consensys/go-bdshape/pkg/relation"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// Optimum describes the optimal value of an expression over a shape.
type Optimum struct {
	// Value is the supremum (or infimum) of the expression.
	Value *big.Rat
	// Attained indicates whether the value is attained by some point of the
	// shape, which always holds since shapes are topologically closed.
	Attained bool
	// Point is a point of the shape at which the value is attained.
	Point []*big.Rat
}

// RelationWith determines the relationship between this shape and a given
// constraint.
func (s *Shape) RelationWith(c linear.Constraint) (relation.ConRelation, error) {
	if c.SpaceDimension() > s.SpaceDimension() {
		return relation.Nothing, dimensionError("RelationWith", "constraint", c.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() {
		return relation.Empty, nil
	}
	//
	itv := s.rangeOf(c.Expr())
	//
	return relation.Classify(c.Kind(), itv.MinValue(), itv.MaxValue()), nil
}

// RelationWithGenerator determines whether a given generator is subsumed by
// this shape, i.e. whether adding it would leave the shape unchanged.
func (s *Shape) RelationWithGenerator(g linear.Generator) (relation.GenRelation, error) {
	if g.SpaceDimension() > s.SpaceDimension() {
		return relation.GenNothing, dimensionError("RelationWithGenerator", "generator", g.SpaceDimension(),
			s.SpaceDimension())
	} else if !s.close() {
		return relation.GenNothing, nil
	}
	//
	var (
		n      = s.matrix.Order()
		coords = make([]*big.Rat, n)
		diff   big.Rat
	)
	// The zero index has coordinate zero
	coords[0] = new(big.Rat)
	//
	for i := uint(1); i < n; i++ {
		coords[i] = g.Coordinate(*variable(i))
	}
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			bound := s.matrix.Get(i, j)
			//
			if i == j || bound.IsPosInfinity() {
				continue
			}
			//
			diff.Sub(coords[i], coords[j])
			// Points must satisfy every bound, whilst directions must not
			// increase any bounded difference (or change it, for lines).
			switch {
			case g.IsPointOrClosurePoint() && bound.CmpRat(&diff) < 0:
				return relation.GenNothing, nil
			case g.IsRay() && diff.Sign() > 0:
				return relation.GenNothing, nil
			case g.IsLine() && diff.Sign() != 0:
				return relation.GenNothing, nil
			}
		}
	}
	//
	return relation.Subsumes, nil
}

// BoundsFromAbove checks whether a given expression is bounded from above in
// this shape (which holds trivially for an empty shape).
func (s *Shape) BoundsFromAbove(e linear.Expr) (bool, error) {
	if e.SpaceDimension() > s.SpaceDimension() {
		return false, dimensionError("BoundsFromAbove", "expression", e.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() {
		return true, nil
	}
	//
	return s.rangeOf(e).MaxValue().IsFinite(), nil
}

// BoundsFromBelow checks whether a given expression is bounded from below in
// this shape (which holds trivially for an empty shape).
func (s *Shape) BoundsFromBelow(e linear.Expr) (bool, error) {
	if e.SpaceDimension() > s.SpaceDimension() {
		return false, dimensionError("BoundsFromBelow", "expression", e.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() {
		return true, nil
	}
	//
	return s.rangeOf(e).MinValue().IsFinite(), nil
}

// Maximize determines the supremum of a given expression over this shape.
// This returns false if the shape is empty, or the expression is unbounded
// from above.
func (s *Shape) Maximize(e linear.Expr) (Optimum, bool, error) {
	if e.SpaceDimension() > s.SpaceDimension() {
		return Optimum{}, false, dimensionError("Maximize", "expression", e.SpaceDimension(), s.SpaceDimension())
	}
	//
	return s.optimise(e, true)
}

// Minimize determines the infimum of a given expression over this shape.
// This returns false if the shape is empty, or the expression is unbounded
// from below.
func (s *Shape) Minimize(e linear.Expr) (Optimum, bool, error) {
	if e.SpaceDimension() > s.SpaceDimension() {
		return Optimum{}, false, dimensionError("Minimize", "expression", e.SpaceDimension(), s.SpaceDimension())
	}
	//
	return s.optimise(e, false)
}

func (s *Shape) optimise(e linear.Expr, maximise bool) (Optimum, bool, error) {
	if !s.close() {
		return Optimum{}, false, nil
	}
	//
	var p = lp.NewProblem(s.SpaceDimension())
	// Dimensions already checked.
	if err := p.AddConstraints(s.Constraints()); err != nil {
		return Optimum{}, false, err
	} else if err := p.SetObjective(e); err != nil {
		return Optimum{}, false, err
	}
	//
	p.SetMaximize(maximise)
	//
	if p.Solve() != lp.Optimized {
		return Optimum{}, false, nil
	}
	//
	return Optimum{p.OptimalValue(), true, p.OptimizingPoint()}, true, nil
}

// Contains checks whether this shape contains every point of another shape of
// the same dimension.
func (s *Shape) Contains(o *Shape) (bool, error) {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false, dimensionError("Contains", "shape", o.SpaceDimension(), s.SpaceDimension())
	}
	//
	return s.contains(o), nil
}

// StrictlyContains checks whether this shape contains another, but is not
// equal to it.
func (s *Shape) StrictlyContains(o *Shape) (bool, error) {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false, dimensionError("StrictlyContains", "shape", o.SpaceDimension(), s.SpaceDimension())
	}
	//
	return s.contains(o) && !o.contains(s), nil
}

// IsDisjointFrom checks whether this shape and another have no point in
// common.
func (s *Shape) IsDisjointFrom(o *Shape) (bool, error) {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false, dimensionError("IsDisjointFrom", "shape", o.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() || !o.close() {
		return true, nil
	}
	// Disjoint iff some pair of opposing bounds forms a negative cycle.
	n := s.matrix.Order()
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			ij, ji := s.matrix.Get(i, j), o.matrix.Get(j, i)
			//
			if !ij.IsPosInfinity() && !ji.IsPosInfinity() && ij.Add(ji).Sign() < 0 {
				return true, nil
			}
		}
	}
	//
	return false, nil
}

// Check whether this shape contains another of the same dimension.  Only the
// other shape needs to be closed, since it is contained iff each of its bounds
// is at least as tight.
func (s *Shape) contains(o *Shape) bool {
	if !o.close() {
		return true
	} else if s.status == statusEmpty {
		return false
	}
	//
	return o.matrix.LessOrEqual(s.matrix)
}

// Determine the range of e/d - xu over this (closed, non-empty) shape, where u
// is nil for the zero index.
func (s *Shape) rangeOfDifference(e linear.Expr, d *big.Int, u *linear.Variable) math.Interval {
	if u != nil {
		e = e.Minus(linear.Var(*u).TimesInt(d))
	}
	//
	return s.rangeOf(e).ScaleRat(new(big.Rat).SetFrac(big.NewInt(1), d))
}

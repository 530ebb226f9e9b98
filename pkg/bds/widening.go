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
	"fmt"
	"math/big"
	"slices"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/relation"
	"github.com/consensys/go-bdshape/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// CC76ExtrapolationAssign assigns to this shape its extrapolation with a
// previous iterate y (which should be contained in this shape), such that
// every bound of this shape weaker than that of y is relaxed to +∞.  If tp is
// non-nil and positive, then an imprecise extrapolation instead consumes one
// token and leaves this shape unchanged.
func (s *Shape) CC76ExtrapolationAssign(y *Shape, tp *uint) error {
	return s.CC76ExtrapolationAssignWithStopPoints(y, nil, tp)
}

// CC76ExtrapolationAssignWithStopPoints is as for CC76ExtrapolationAssign,
// except that unstable bounds are relaxed to the least stop point above them
// (or +∞ if there is none).
func (s *Shape) CC76ExtrapolationAssignWithStopPoints(y *Shape, stops []*big.Rat, tp *uint) error {
	if err := s.checkWidening("CC76ExtrapolationAssign", y); err != nil {
		return err
	}
	//
	points := slices.Clone(stops)
	slices.SortFunc(points, func(a, b *big.Rat) int { return a.Cmp(b) })
	//
	s.widenWithTokens(tp, func(x *Shape) { x.cc76(y, points) })
	//
	return nil
}

// BHMZ05WideningAssign assigns to this shape its widening with a previous
// iterate y (which should be contained in this shape), such that every bound
// which is either redundant in y or differs from that in y is dropped.  Tokens
// are handled as for CC76ExtrapolationAssign.
func (s *Shape) BHMZ05WideningAssign(y *Shape, tp *uint) error {
	if err := s.checkWidening("BHMZ05WideningAssign", y); err != nil {
		return err
	}
	//
	s.widenWithTokens(tp, func(x *Shape) { x.bhmz05(y) })
	//
	return nil
}

// LimitedCC76ExtrapolationAssign is as for CC76ExtrapolationAssign, except that
// the result is intersected with those bounded difference constraints of cs
// which are satisfied by this shape.
func (s *Shape) LimitedCC76ExtrapolationAssign(y *Shape, cs linear.ConstraintSystem, tp *uint) error {
	const op = "LimitedCC76ExtrapolationAssign"
	//
	if err := s.checkWidening(op, y); err != nil {
		return err
	} else if err := s.checkLimiting(op, cs); err != nil {
		return err
	}
	//
	s.widenWithTokens(tp, func(x *Shape) {
		limit := x.limitingShape(cs)
		x.cc76(y, nil)
		x.limit(limit)
	})
	//
	return nil
}

// LimitedBHMZ05ExtrapolationAssign is as for BHMZ05WideningAssign, except that
// the result is intersected with those bounded difference constraints of cs
// which are satisfied by this shape.
func (s *Shape) LimitedBHMZ05ExtrapolationAssign(y *Shape, cs linear.ConstraintSystem, tp *uint) error {
	const op = "LimitedBHMZ05ExtrapolationAssign"
	//
	if err := s.checkWidening(op, y); err != nil {
		return err
	} else if err := s.checkLimiting(op, cs); err != nil {
		return err
	}
	//
	s.widenWithTokens(tp, func(x *Shape) {
		limit := x.limitingShape(cs)
		x.bhmz05(y)
		x.limit(limit)
	})
	//
	return nil
}

// CC76NarrowingAssign assigns to this shape its narrowing with y (which should
// be contained in this shape), such that every bound of this shape which is
// +∞ takes the corresponding finite bound of y.
func (s *Shape) CC76NarrowingAssign(y *Shape) error {
	if s.SpaceDimension() != y.SpaceDimension() {
		return dimensionError("CC76NarrowingAssign", "shape", y.SpaceDimension(), s.SpaceDimension())
	} else if !y.close() {
		s.setEmpty()
		return nil
	} else if !s.close() {
		return nil
	}
	//
	var (
		n       = s.matrix.Order()
		changed = false
	)
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if i != j && s.matrix.Get(i, j).IsPosInfinity() && y.matrix.Get(i, j).IsFinite() {
				s.matrix.Set(i, j, y.matrix.Get(i, j))
				changed = true
			}
		}
	}
	//
	if changed {
		s.markNotClosed()
	}
	//
	return nil
}

// Apply a given widening to this shape, unless a positive number of tokens
// remains.  In that case, the widening is computed on a copy and, if it would
// lose precision, a token is consumed.  Either way this shape is unchanged.
func (s *Shape) widenWithTokens(tp *uint, widen func(*Shape)) {
	if tp != nil && *tp > 0 {
		x := s.Clone()
		widen(x)
		//
		if !s.contains(x) {
			*tp--
			log.Debugf("widening token consumed (%d remaining)", *tp)
		}
		//
		return
	}
	//
	widen(s)
}

// Relax every bound of this shape weaker than the corresponding bound of y.
func (s *Shape) cc76(y *Shape, stops []*big.Rat) {
	if !y.close() || !s.close() {
		return
	}
	//
	var n = s.matrix.Order()
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if xij := s.matrix.Get(i, j); i != j && y.matrix.Get(i, j).Cmp(xij) < 0 {
				s.matrix.Set(i, j, nextStopPoint(xij, stops))
			}
		}
	}
	//
	s.markNotClosed()
}

// Drop every bound of this shape which is redundant in y, or differs from the
// bound of y.  Nothing is dropped when y is a single point, or when the affine
// dimension has grown.
func (s *Shape) bhmz05(y *Shape) {
	if !y.close() || !s.close() {
		return
	} else if dim := y.AffineDimension(); dim == 0 || dim != s.AffineDimension() {
		return
	}
	//
	var (
		n = s.matrix.Order()
		r = y.reduce()
	)
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if i != j && (r.IsRedundant(i, j) || !s.matrix.Get(i, j).Equals(y.matrix.Get(i, j))) {
				s.matrix.Set(i, j, math.PosInfinity)
			}
		}
	}
	// Dropping bounds from a reduced matrix can break closure
	s.markNotClosed()
}

// Construct the shape of those bounded difference constraints of cs which are
// satisfied by this shape.
func (s *Shape) limitingShape(cs linear.ConstraintSystem) *Shape {
	limit, _ := NewShape(s.SpaceDimension(), linear.UniverseElement)
	//
	if !s.close() {
		return limit
	}
	//
	for _, c := range cs {
		i, j, a, b, ok := c.BoundedDifference()
		//
		if !ok {
			continue
		}
		//
		itv := s.rangeOf(c.Expr())
		//
		if relation.Classify(c.Kind(), itv.MinValue(), itv.MaxValue()).Implies(relation.IsIncluded) {
			limit.addDifference(i, j, a, b, c.Kind())
		}
	}
	//
	return limit
}

// Intersect this (widened) shape with a limiting shape.
func (s *Shape) limit(o *Shape) {
	if s.status != statusEmpty && s.matrix.MinAssign(o.matrix) {
		s.markNotClosed()
	}
}

func (s *Shape) checkWidening(op string, y *Shape) error {
	if s.SpaceDimension() != y.SpaceDimension() {
		return dimensionError(op, "shape", y.SpaceDimension(), s.SpaceDimension())
	}
	//
	return nil
}

func (s *Shape) checkLimiting(op string, cs linear.ConstraintSystem) error {
	if cs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "constraint system", cs.SpaceDimension(), s.SpaceDimension())
	} else if cs.HasStrictInequalities() {
		return fmt.Errorf("%s: %w", op, ErrStrictInequality)
	}
	//
	return nil
}

// Determine the least stop point no smaller than a given bound, or +∞ if
// there is none.  The stop points must be sorted.
func nextStopPoint(bound math.InfRat, stops []*big.Rat) math.InfRat {
	for _, p := range stops {
		if bound.CmpRat(p) <= 0 {
			return math.NewInfRat(p)
		}
	}
	//
	return math.PosInfinity
}

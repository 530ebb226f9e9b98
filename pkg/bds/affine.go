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

	"github.com/consensys/go-bdshape/pkg/dbm"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// AffineImage assigns to this shape its image under the transformation v :=
// e/d.  The image is exact when e/d is a constant, or has the form w + c;
// otherwise, the tightest bounds on v and on the differences between v and
// every other variable are computed.
func (s *Shape) AffineImage(v linear.Variable, e linear.Expr, d *big.Int) error {
	if err := s.checkAffine("AffineImage", v, d, e); err != nil {
		return err
	}
	//
	s.affineImage(v, e, d)
	//
	return nil
}

// AffinePreimage assigns to this shape its preimage under the transformation
// v := e/d, i.e. the set of points whose image lies in this shape.
func (s *Shape) AffinePreimage(v linear.Variable, e linear.Expr, d *big.Int) error {
	if err := s.checkAffine("AffinePreimage", v, d, e); err != nil {
		return err
	}
	//
	s.affinePreimage(v, e, d)
	//
	return nil
}

// GeneralizedAffineImage assigns to this shape its image under the relation
// v' ⋈ e/d, where ⋈ is one of <=, == or >=.
func (s *Shape) GeneralizedAffineImage(v linear.Variable, op linear.RelSym, e linear.Expr, d *big.Int) error {
	const name = "GeneralizedAffineImage"
	//
	if err := s.checkAffine(name, v, d, e); err != nil {
		return err
	} else if err := checkRelSym(name, op); err != nil {
		return err
	}
	//
	s.generalizedAffineImage(v, op, e, d)
	//
	return nil
}

// GeneralizedAffinePreimage assigns to this shape its preimage under the
// relation v' ⋈ e/d, where ⋈ is one of <=, == or >=.
func (s *Shape) GeneralizedAffinePreimage(v linear.Variable, op linear.RelSym, e linear.Expr, d *big.Int) error {
	const name = "GeneralizedAffinePreimage"
	//
	if err := s.checkAffine(name, v, d, e); err != nil {
		return err
	} else if err := checkRelSym(name, op); err != nil {
		return err
	}
	//
	if op == linear.Equal {
		s.affinePreimage(v, e, d)
	} else if s.close() {
		e, d = normalise(e, d)
		//
		if a := e.Coefficient(v); a.Sign() != 0 {
			// Invert the relation for v, where the direction of the relation
			// is reversed by a positive coefficient.
			var (
				inverse = linear.Var(v).TimesInt(d).Minus(e.WithCoefficient(v, big.NewInt(0)))
				rop     = op
			)
			//
			if a.Sign() > 0 {
				rop = op.Reverse()
			}
			//
			s.generalizedAffineImage(v, rop, inverse, a)
		} else {
			s.refine(linear.Relate(linear.Var(v).TimesInt(d), op, e))
			s.forget(v)
		}
	}
	//
	return nil
}

// GeneralizedAffineImageLhsRhs assigns to this shape its image under the
// relation lhs' ⋈ rhs, where ⋈ is one of <=, == or >=.  Every variable of lhs
// is assigned, whilst rhs is evaluated over the original values.
func (s *Shape) GeneralizedAffineImageLhsRhs(lhs linear.Expr, op linear.RelSym, rhs linear.Expr) error {
	const name = "GeneralizedAffineImageLhsRhs"
	//
	if err := s.checkLhsRhs(name, op, lhs, rhs); err != nil {
		return err
	} else if !s.close() {
		return nil
	} else if lhs.IsConstant() {
		s.refine(linear.Relate(lhs, op, rhs))
		return nil
	}
	// Hold the value of rhs in a fresh dimension z.
	var z = linear.Variable(s.SpaceDimension())
	//
	s.withFreshDimension(func() {
		s.refine(linear.Eq(linear.Var(z), rhs))
		//
		for _, v := range lhs.NonZeroVars() {
			s.forget(v)
		}
		//
		s.refine(linear.Relate(lhs, op, linear.Var(z)))
	})
	//
	return nil
}

// GeneralizedAffinePreimageLhsRhs assigns to this shape its preimage under the
// relation lhs' ⋈ rhs, where ⋈ is one of <=, == or >=.
func (s *Shape) GeneralizedAffinePreimageLhsRhs(lhs linear.Expr, op linear.RelSym, rhs linear.Expr) error {
	const name = "GeneralizedAffinePreimageLhsRhs"
	//
	if err := s.checkLhsRhs(name, op, lhs, rhs); err != nil {
		return err
	} else if !s.close() {
		return nil
	} else if lhs.IsConstant() {
		s.refine(linear.Relate(lhs, op, rhs))
		return nil
	}
	// Hold the (new) value of lhs in a fresh dimension z.
	var z = linear.Variable(s.SpaceDimension())
	//
	s.withFreshDimension(func() {
		s.refine(linear.Eq(linear.Var(z), lhs))
		//
		for _, v := range lhs.NonZeroVars() {
			s.forget(v)
		}
		//
		s.refine(linear.Relate(linear.Var(z), op, rhs))
	})
	//
	return nil
}

// BoundedAffineImage assigns to this shape its image under the relation lb/d
// <= v' <= ub/d.
func (s *Shape) BoundedAffineImage(v linear.Variable, lb linear.Expr, ub linear.Expr, d *big.Int) error {
	if err := s.checkAffine("BoundedAffineImage", v, d, lb, ub); err != nil {
		return err
	} else if !s.close() {
		return nil
	}
	//
	if d.Sign() < 0 {
		lb, ub, d = lb.Neg(), ub.Neg(), new(big.Int).Neg(d)
	}
	//
	s.assignBetween(v, &lb, &ub, d)
	//
	return nil
}

// BoundedAffinePreimage assigns to this shape its preimage under the relation
// lb/d <= v' <= ub/d.
func (s *Shape) BoundedAffinePreimage(v linear.Variable, lb linear.Expr, ub linear.Expr, d *big.Int) error {
	if err := s.checkAffine("BoundedAffinePreimage", v, d, lb, ub); err != nil {
		return err
	} else if err := checkSpaceDimension("BoundedAffinePreimage", s.SpaceDimension()+1); err != nil {
		return err
	} else if !s.close() {
		return nil
	}
	//
	if d.Sign() < 0 {
		lb, ub, d = lb.Neg(), ub.Neg(), new(big.Int).Neg(d)
	}
	// Hold the (new) value of v in a fresh dimension z.
	var z = linear.Variable(s.SpaceDimension())
	//
	s.withFreshDimension(func() {
		s.refine(linear.Eq(linear.Var(z), linear.Var(v)))
		s.forget(v)
		s.refine(linear.Geq(linear.Var(z).TimesInt(d), lb))
		s.refine(linear.Leq(linear.Var(z).TimesInt(d), ub))
	})
	//
	return nil
}

func (s *Shape) affineImage(v linear.Variable, e linear.Expr, d *big.Int) {
	if !s.close() {
		return
	}
	//
	e, d = normalise(e, d)
	//
	var (
		vi   = index(v)
		vars = e.NonZeroVars()
		c    = new(big.Rat).SetFrac(e.Inhomogeneous(), d)
	)
	//
	switch {
	case len(vars) == 0:
		// v := c
		s.matrix.Forget(vi)
		s.matrix.Set(vi, 0, math.NewInfRat(c))
		s.matrix.Set(0, vi, math.NewInfRat(c).Neg())
		s.incrementalClose(vi)
	case len(vars) == 1 && e.Coefficient(vars[0]).Cmp(d) == 0 && vars[0] == v:
		// v := v + c
		s.translate(vi, c)
	case len(vars) == 1 && e.Coefficient(vars[0]).Cmp(d) == 0:
		// v := w + c
		wi := index(vars[0])
		s.matrix.Forget(vi)
		s.matrix.Set(vi, wi, math.NewInfRat(c))
		s.matrix.Set(wi, vi, math.NewInfRat(c).Neg())
		s.incrementalClose(vi)
	default:
		s.assignBetween(v, &e, &e, d)
	}
}

func (s *Shape) affinePreimage(v linear.Variable, e linear.Expr, d *big.Int) {
	if !s.close() {
		return
	}
	//
	if a := e.Coefficient(v); a.Sign() != 0 {
		// Invertible, since v = (d*v' - (e - a*v)) / a.
		inverse := linear.Var(v).TimesInt(d).Minus(e.WithCoefficient(v, big.NewInt(0)))
		s.affineImage(v, inverse, a)
		//
		return
	}
	//
	s.refine(linear.Eq(linear.Var(v).TimesInt(d), e))
	s.forget(v)
}

func (s *Shape) generalizedAffineImage(v linear.Variable, op linear.RelSym, e linear.Expr, d *big.Int) {
	if op == linear.Equal {
		s.affineImage(v, e, d)
		return
	} else if !s.close() {
		return
	}
	//
	e, d = normalise(e, d)
	//
	if op == linear.LessOrEqual {
		s.assignBetween(v, nil, &e, d)
	} else {
		s.assignBetween(v, &e, nil, d)
	}
}

// Assign v a value between lb/d and ub/d (where d is positive) in this closed,
// non-empty shape.  Either expression may be nil, meaning v is unbounded in
// that direction.  The bounds on v - xk for every other index k are computed
// over the original shape.
func (s *Shape) assignBetween(v linear.Variable, lb *linear.Expr, ub *linear.Expr, d *big.Int) {
	var (
		vi    = index(v)
		n     = s.matrix.Order()
		upper = make([]math.InfRat, n)
		lower = make([]math.InfRat, n)
	)
	//
	for k := uint(0); k < n; k++ {
		upper[k], lower[k] = math.PosInfinity, math.NegInfinity
		//
		if k == vi {
			continue
		} else if ub != nil {
			upper[k] = s.rangeOfDifference(*ub, d, variable(k)).MaxValue()
		}
		//
		if lb != nil {
			lower[k] = s.rangeOfDifference(*lb, d, variable(k)).MinValue()
		}
	}
	//
	s.matrix.Forget(vi)
	//
	for k := uint(0); k < n; k++ {
		if k != vi {
			s.matrix.Tighten(vi, k, upper[k])
			s.matrix.Tighten(k, vi, lower[k].Neg())
		}
	}
	//
	s.incrementalClose(vi)
}

// Translate v by a constant c in this closed shape, which remains closed.
func (s *Shape) translate(vi uint, c *big.Rat) {
	var negc = new(big.Rat).Neg(c)
	//
	for k := uint(0); k < s.matrix.Order(); k++ {
		if k != vi {
			s.matrix.Set(vi, k, s.matrix.Get(vi, k).AddRat(c))
			s.matrix.Set(k, vi, s.matrix.Get(k, vi).AddRat(negc))
		}
	}
	//
	s.markClosed()
}

// Restore the closure of this shape, given it was closed before only the
// bounds of index vi were modified.
func (s *Shape) incrementalClose(vi uint) {
	if dbm.IncrementalClose(s.matrix, vi) {
		s.markClosed()
	} else {
		s.setEmpty()
	}
}

// Apply a given function to this (closed, non-empty) shape extended with one
// unconstrained dimension, which is then removed.
func (s *Shape) withFreshDimension(fn func()) {
	var n = s.SpaceDimension()
	//
	s.matrix.Resize(n + 1)
	s.markClosed()
	fn()
	s.removeHigher(n)
}

func (s *Shape) checkAffine(op string, v linear.Variable, d *big.Int, exprs ...linear.Expr) error {
	if d.Sign() == 0 {
		return fmt.Errorf("%s: %w", op, ErrZeroDenominator)
	} else if v.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "variable", v.SpaceDimension(), s.SpaceDimension())
	}
	//
	for _, e := range exprs {
		if e.SpaceDimension() > s.SpaceDimension() {
			return dimensionError(op, "expression", e.SpaceDimension(), s.SpaceDimension())
		}
	}
	//
	return nil
}

func (s *Shape) checkLhsRhs(op string, rel linear.RelSym, lhs linear.Expr, rhs linear.Expr) error {
	if lhs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "left-hand side", lhs.SpaceDimension(), s.SpaceDimension())
	} else if rhs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "right-hand side", rhs.SpaceDimension(), s.SpaceDimension())
	} else if err := checkRelSym(op, rel); err != nil {
		return err
	}
	//
	return checkSpaceDimension(op, s.SpaceDimension()+1)
}

func checkRelSym(op string, rel linear.RelSym) error {
	switch {
	case rel == linear.NotEqual:
		return fmt.Errorf("%s: %w (%s)", op, ErrInvalidRelationSymbol, rel)
	case rel.IsStrict():
		return fmt.Errorf("%s: %w (%s)", op, ErrStrictInequality, rel)
	}
	//
	return nil
}

// Normalise e/d such that d is positive.
func normalise(e linear.Expr, d *big.Int) (linear.Expr, *big.Int) {
	if d.Sign() < 0 {
		return e.Neg(), new(big.Int).Neg(d)
	}
	//
	return e, d
}

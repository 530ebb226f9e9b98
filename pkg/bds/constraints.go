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

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// AddConstraint intersects this shape with a given constraint, which must be a
// non-strict bound on a single variable or on the difference of two variables
// (or be trivially true or false).
func (s *Shape) AddConstraint(c linear.Constraint) error {
	const op = "AddConstraint"
	//
	if c.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "constraint", c.SpaceDimension(), s.SpaceDimension())
	} else if c.IsTautological() {
		return nil
	} else if c.IsInconsistent() {
		s.setEmpty()
		return nil
	} else if c.IsStrict() {
		return fmt.Errorf("%s: %w (%s)", op, ErrStrictInequality, c.String())
	}
	//
	i, j, a, b, ok := c.BoundedDifference()
	//
	if !ok {
		return fmt.Errorf("%s: %w (%s)", op, ErrNotBoundedDifference, c.String())
	}
	//
	s.addDifference(i, j, a, b, c.Kind())
	//
	return nil
}

// AddConstraints intersects this shape with every constraint of a given
// system, as for AddConstraint.  The shape is unchanged if any constraint is
// rejected.
func (s *Shape) AddConstraints(cs linear.ConstraintSystem) error {
	var tmp = s.Clone()
	//
	for _, c := range cs {
		if err := tmp.AddConstraint(c); err != nil {
			return err
		}
	}
	//
	*s = *tmp
	//
	return nil
}

// RefineWithConstraint intersects this shape with a sound approximation of a
// given constraint.  Bounded differences are added exactly, strict
// inequalities are approximated by their closure, and any other constraint is
// approximated by the tightest bounds on the differences between its
// variables (and every other variable) it implies within this shape.
func (s *Shape) RefineWithConstraint(c linear.Constraint) error {
	if c.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("RefineWithConstraint", "constraint", c.SpaceDimension(), s.SpaceDimension())
	}
	//
	s.refine(c)
	//
	return nil
}

// RefineWithConstraints refines this shape with every constraint of a given
// system, as for RefineWithConstraint.
func (s *Shape) RefineWithConstraints(cs linear.ConstraintSystem) error {
	if cs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("RefineWithConstraints", "constraint system", cs.SpaceDimension(), s.SpaceDimension())
	}
	//
	for _, c := range cs {
		s.refine(c)
	}
	//
	return nil
}

// Unconstrain removes every constraint on a given variable, such that it may
// take any value.
func (s *Shape) Unconstrain(v linear.Variable) error {
	if v.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("Unconstrain", "variable", v.SpaceDimension(), s.SpaceDimension())
	}
	//
	s.forget(v)
	//
	return nil
}

// UnconstrainSet removes every constraint on each variable in a given set.
func (s *Shape) UnconstrainSet(vs linear.VarSet) error {
	if vs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("UnconstrainSet", "variable set", vs.SpaceDimension(), s.SpaceDimension())
	}
	//
	for _, v := range vs.Vars() {
		s.forget(v)
	}
	//
	return nil
}

// Refine this shape with a constraint of suitable dimension, approximating
// where necessary.
func (s *Shape) refine(c linear.Constraint) {
	if c.IsTautological() {
		return
	} else if c.IsInconsistent() {
		s.setEmpty()
		return
	}
	//
	if i, j, a, b, ok := c.BoundedDifference(); ok {
		kind := c.Kind()
		// Approximate strict inequality by its closure
		if kind == linear.Strict {
			kind = linear.NonStrict
		}
		//
		s.addDifference(i, j, a, b, kind)
		//
		return
	} else if !s.close() {
		return
	}
	//
	log.Debugf("approximating constraint %s", c.String())
	//
	s.refineByProgram(c)
}

// Add the (non-strict) constraint a*(xi - xj) + b ⋈ 0, where xj is zero when
// j is nil.
func (s *Shape) addDifference(i linear.Variable, j *linear.Variable, a *big.Int, b *big.Int, kind linear.ConstraintKind) {
	if s.status == statusEmpty {
		return
	}
	//
	var (
		vi = index(i)
		vj = uint(0)
		// q = -b/a
		q       = math.NewInfRat(new(big.Rat).SetFrac(new(big.Int).Neg(b), a))
		changed = false
	)
	//
	if j != nil {
		vj = index(*j)
	}
	// When a > 0, we have xi - xj >= q (i.e. xj - xi <= -q).  Otherwise, we
	// have xi - xj <= q.
	if kind == linear.Equality || a.Sign() < 0 {
		changed = s.matrix.Tighten(vi, vj, q)
	}
	//
	if kind == linear.Equality || a.Sign() > 0 {
		changed = s.matrix.Tighten(vj, vi, q.Neg()) || changed
	}
	//
	if changed {
		s.markNotClosed()
	}
}

// Refine this (closed, non-empty) shape with an arbitrary constraint by
// computing, for each variable u of the constraint and every other index k,
// the range of xu - xk over the intersection of this shape and the
// constraint.
func (s *Shape) refineByProgram(c linear.Constraint) {
	var (
		cs   = append(s.Constraints(), c)
		dim  = s.SpaceDimension()
		vars = c.Expr().NonZeroVars()
	)
	//
	for _, u := range vars {
		for k := uint(0); k <= dim; k++ {
			var (
				vu = index(u)
				e  = linear.Var(u)
			)
			//
			if k == vu {
				continue
			} else if k != 0 {
				e = e.Minus(linear.Var(*variable(k)))
			}
			//
			itv := boundsOf(dim, cs, e)
			//
			if itv.IsEmpty() {
				s.setEmpty()
				return
			}
			//
			s.matrix.Tighten(vu, k, itv.MaxValue())
			s.matrix.Tighten(k, vu, itv.MinValue().Neg())
		}
	}
	//
	s.markNotClosed()
}

// Remove every constraint on a given variable, after closing so that the
// constraints it implies between other variables are retained.
func (s *Shape) forget(v linear.Variable) {
	if !s.close() {
		return
	}
	//
	s.matrix.Forget(index(v))
	s.markClosed()
}

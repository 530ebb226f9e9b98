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
	"strings"

	"github.com/consensys/go-bdshape/pkg/dbm"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/lp"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// MaxSpaceDimension is the largest space dimension a shape may have, such
// that the number of entries of its bound matrix remains representable as a
// 32-bit signed integer.
const MaxSpaceDimension uint = 46339

type status uint8

const (
	// Matrix holds the bounds, but may not be closed.
	statusNotClosed status = iota
	// Matrix is in shortest-path closure form.
	statusClosed
	// Shape contains no points, and the matrix is meaningless.
	statusEmpty
)

// Shape is a bounded difference shape, i.e. the set of rational points
// satisfying a conjunction of constraints of the form xi - xj <= c, xi <= c
// and -xj <= c.  A shape exclusively owns its bound matrix, which is closed
// lazily by any operation whose result depends on the closure.
type Shape struct {
	matrix *dbm.Matrix
	status status
	// cached reduction, valid only when closed
	reduction *dbm.Reduction
}

// NewShape constructs either the universe or the empty shape of a given space
// dimension.
func NewShape(dim uint, kind linear.DegenerateElement) (*Shape, error) {
	if err := checkSpaceDimension("NewShape", dim); err != nil {
		return nil, err
	}
	//
	s := &Shape{matrix: dbm.New(dim), status: statusClosed}
	//
	if kind == linear.EmptyElement {
		s.status = statusEmpty
	}
	//
	return s, nil
}

// FromConstraints constructs the shape described by a given system of
// constraints, whose space dimension is that of the system.  Every constraint
// must be a non-strict bounded difference (or trivially true or false).
func FromConstraints(cs linear.ConstraintSystem) (*Shape, error) {
	var dim = cs.SpaceDimension()
	//
	s, err := NewShape(dim, linear.UniverseElement)
	//
	if err != nil {
		return nil, err
	} else if err := s.AddConstraints(cs); err != nil {
		return nil, err
	}
	//
	return s, nil
}

// Clone returns a deep copy of this shape.
func (s *Shape) Clone() *Shape {
	return &Shape{s.matrix.Clone(), s.status, s.reduction}
}

// SpaceDimension returns the number of variables of this shape.
func (s *Shape) SpaceDimension() uint {
	return s.matrix.SpaceDimension()
}

// IsEmpty checks whether this shape contains no points, which may require
// computing its closure.
func (s *Shape) IsEmpty() bool {
	return !s.close()
}

// IsUniverse checks whether this shape contains every point.
func (s *Shape) IsUniverse() bool {
	if s.status == statusEmpty {
		return false
	}
	//
	return s.matrix.IsUniverse()
}

// IsBounded checks whether every variable of this shape has both a lower and
// an upper bound.
func (s *Shape) IsBounded() bool {
	if !s.close() {
		return true
	}
	//
	n := s.matrix.Order()
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if i != j && s.matrix.Get(i, j).IsPosInfinity() {
				return false
			}
		}
	}
	//
	return true
}

// AffineDimension returns the dimension of the smallest affine subspace
// containing this shape (zero if the shape is empty).
func (s *Shape) AffineDimension() uint {
	if !s.close() {
		return 0
	}
	//
	var (
		r       = s.reduce()
		classes uint
	)
	//
	for i := uint(0); i < s.matrix.Order(); i++ {
		if r.Leader(i) == i {
			classes++
		}
	}
	// The class of the zero index has dimension zero.
	return classes - 1
}

// IsDiscrete checks whether this shape contains at most one point.
func (s *Shape) IsDiscrete() bool {
	return s.AffineDimension() == 0
}

// IsTopologicallyClosed checks whether this shape is topologically closed,
// which always holds since only non-strict bounds are represented.
func (s *Shape) IsTopologicallyClosed() bool {
	return true
}

// ContainsIntegerPoint checks whether this shape contains at least one point
// whose coordinates are all integers.
func (s *Shape) ContainsIntegerPoint() bool {
	if !s.close() {
		return false
	}
	//
	m := s.matrix.Clone()
	// For difference constraints with integral bounds, rational feasibility
	// implies integral feasibility.
	dbm.TightenInteger(m, func(uint) bool { return true })
	//
	return dbm.Close(m)
}

// Constrains checks whether this shape restricts the values of a given
// variable.  An empty shape constrains every variable.
func (s *Shape) Constrains(v linear.Variable) (bool, error) {
	if v.SpaceDimension() > s.SpaceDimension() {
		return false, dimensionError("Constrains", "variable", v.SpaceDimension(), s.SpaceDimension())
	} else if !s.close() {
		return true, nil
	}
	//
	var vi = index(v)
	//
	for k := uint(0); k < s.matrix.Order(); k++ {
		if k != vi && (!s.matrix.Get(vi, k).IsPosInfinity() || !s.matrix.Get(k, vi).IsPosInfinity()) {
			return true, nil
		}
	}
	//
	return false, nil
}

// Equal checks whether two shapes contain exactly the same points.  This
// forces the closure of both shapes.
func (s *Shape) Equal(o *Shape) bool {
	if s.SpaceDimension() != o.SpaceDimension() {
		return false
	}
	//
	sok, ook := s.close(), o.close()
	//
	if !sok || !ook {
		return sok == ook
	}
	//
	return s.matrix.Equal(o.matrix)
}

// Matrix returns a copy of the bound matrix of this shape, after closure.
// This returns nil if the shape is empty.
func (s *Shape) Matrix() *dbm.Matrix {
	if !s.close() {
		return nil
	}
	//
	return s.matrix.Clone()
}

// Constraints returns the constraints of the closure of this shape, where a
// pair of opposite bounds on the same difference is returned as an equality.
// An empty shape is described by the single constraint 0 >= 1.
func (s *Shape) Constraints() linear.ConstraintSystem {
	if !s.close() {
		return falseConstraints()
	}
	//
	var (
		cs linear.ConstraintSystem
		n  = s.matrix.Order()
	)
	//
	for i := uint(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			ij, ji := s.matrix.Get(i, j), s.matrix.Get(j, i)
			//
			if ij.IsFinite() && ji.IsFinite() && ij.Add(ji).Sign() == 0 {
				cs = append(cs, linear.DifferenceEq(variable(i), variable(j), ij.Rat()))
				continue
			}
			//
			if ij.IsFinite() {
				cs = append(cs, linear.DifferenceLeq(variable(i), variable(j), ij.Rat()))
			}
			//
			if ji.IsFinite() {
				cs = append(cs, linear.DifferenceLeq(variable(j), variable(i), ji.Rat()))
			}
		}
	}
	//
	return cs
}

// MinimizedConstraints returns a smallest system of constraints describing
// this shape.  Each variable whose value is fixed relative to a variable of
// lower index (or to zero) is described by a single equality, and every other
// bound not implied by the remainder is described by an inequality.
func (s *Shape) MinimizedConstraints() linear.ConstraintSystem {
	if !s.close() {
		return falseConstraints()
	}
	//
	var (
		cs linear.ConstraintSystem
		r  = s.reduce()
		n  = s.matrix.Order()
	)
	// Equalities
	for j := uint(1); j < n; j++ {
		if i := r.Leader(j); i != j {
			cs = append(cs, linear.DifferenceEq(variable(j), variable(i), s.matrix.Get(j, i).Rat()))
		}
	}
	// Inequalities between leaders
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if r.Leader(i) == i && r.Leader(j) == j && r.IsNonRedundant(i, j) {
				cs = append(cs, linear.DifferenceLeq(variable(i), variable(j), s.matrix.Get(i, j).Rat()))
			}
		}
	}
	//
	return cs
}

// String returns a human-readable description of this shape, such as "A <= 2,
// A - B == 1" (or "true" or "false").
func (s *Shape) String() string {
	var items []string
	//
	if !s.close() {
		return "false"
	}
	//
	n := s.matrix.Order()
	r := s.reduce()
	//
	for i := uint(0); i < n; i++ {
		for j := uint(0); j < n; j++ {
			if i == j || r.IsRedundant(i, j) {
				continue
			}
			//
			items = append(items, formatBound(i, j, s.matrix.Get(i, j)))
		}
	}
	//
	if len(items) == 0 {
		return "true"
	}
	//
	return strings.Join(items, ", ")
}

// Format the bound xi - xj <= val in a readable fashion.
func formatBound(i, j uint, val math.InfRat) string {
	switch {
	case j == 0:
		return fmt.Sprintf("%s <= %s", variable(i), val)
	case i == 0:
		return fmt.Sprintf("%s >= %s", variable(j), val.Neg())
	default:
		return fmt.Sprintf("%s - %s <= %s", variable(i), variable(j), val)
	}
}

// Compute the closure of this shape (if necessary), returning false if it is
// empty.
func (s *Shape) close() bool {
	switch s.status {
	case statusEmpty:
		return false
	case statusClosed:
		return true
	}
	//
	if dbm.Close(s.matrix) {
		s.status = statusClosed
	} else {
		s.setEmpty()
	}
	//
	return s.status == statusClosed
}

// Compute (or reuse) the reduction of this shape, which must be closed and
// non-empty.
func (s *Shape) reduce() *dbm.Reduction {
	if s.status != statusClosed {
		panic("reduction of non-closed shape")
	} else if s.reduction == nil {
		s.reduction = dbm.Reduce(s.matrix)
	}
	//
	return s.reduction
}

// Record that the matrix has been modified, and may no longer be closed.
func (s *Shape) markNotClosed() {
	if s.status != statusEmpty {
		s.status = statusNotClosed
	}
	//
	s.reduction = nil
}

// Record that the matrix has been modified, but remains closed.
func (s *Shape) markClosed() {
	s.status = statusClosed
	s.reduction = nil
}

func (s *Shape) setEmpty() {
	s.status = statusEmpty
	s.reduction = nil
}

// Determine the range of values a given expression takes over this shape,
// which must be closed and non-empty.  Difference expressions are read
// directly from the matrix, whilst others are solved exactly as a linear
// program.
func (s *Shape) rangeOf(e linear.Expr) math.Interval {
	var b = math.PointInterval(math.NewInfInt(e.Inhomogeneous()))
	//
	if e.IsConstant() {
		return b
	} else if i, j, a, ok := e.Difference(); ok {
		var (
			vi  = index(i)
			vj  = uint(0)
			itv math.Interval
		)
		//
		if j != nil {
			vj = index(*j)
		}
		//
		itv = math.NewInterval(s.matrix.Get(vj, vi).Neg(), s.matrix.Get(vi, vj))
		//
		return itv.ScaleRat(new(big.Rat).SetInt(a)).Add(b)
	}
	//
	return boundsOf(s.SpaceDimension(), s.Constraints(), e)
}

// Determine the range of an expression over a constraint system of known
// dimension.
func boundsOf(dim uint, cs linear.ConstraintSystem, e linear.Expr) math.Interval {
	itv, err := lp.Bounds(dim, cs, e)
	// dimensions are checked by callers
	if err != nil {
		panic(err)
	}
	//
	return itv
}

// Determine the matrix index of a given variable.
func index(v linear.Variable) uint {
	return v.Id() + 1
}

// Determine the variable of a given matrix index, or nil for index 0.
func variable(i uint) *linear.Variable {
	if i == 0 {
		return nil
	}
	//
	v := linear.Variable(i - 1)
	//
	return &v
}

func falseConstraints() linear.ConstraintSystem {
	return linear.ConstraintSystem{linear.Geq(linear.NewExpr(0), linear.NewExpr(1))}
}

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
package linear

import (
	"fmt"
	"math/big"
	"strings"
)

// ConstraintKind determines how the expression of a constraint is compared
// against zero.
type ConstraintKind uint8

const (
	// Equality constraints have the form e == 0.
	Equality ConstraintKind = iota
	// NonStrict constraints have the form e >= 0.
	NonStrict
	// Strict constraints have the form e > 0.
	Strict
)

func (k ConstraintKind) String() string {
	switch k {
	case Equality:
		return "=="
	case NonStrict:
		return ">="
	case Strict:
		return ">"
	}
	//
	panic("unreachable")
}

// Constraint represents a linear constraint "e ⋈ 0", where ⋈ is one of ==, >=
// or >.
type Constraint struct {
	expr Expr
	kind ConstraintKind
}

// NewConstraint constructs a constraint "e ⋈ 0" of the given kind.
func NewConstraint(e Expr, kind ConstraintKind) Constraint {
	return Constraint{e, kind}
}

// Eq constructs the constraint lhs == rhs.
func Eq(lhs Expr, rhs Expr) Constraint {
	return Constraint{lhs.Minus(rhs), Equality}
}

// Geq constructs the constraint lhs >= rhs.
func Geq(lhs Expr, rhs Expr) Constraint {
	return Constraint{lhs.Minus(rhs), NonStrict}
}

// Leq constructs the constraint lhs <= rhs.
func Leq(lhs Expr, rhs Expr) Constraint {
	return Constraint{rhs.Minus(lhs), NonStrict}
}

// Gt constructs the constraint lhs > rhs.
func Gt(lhs Expr, rhs Expr) Constraint {
	return Constraint{lhs.Minus(rhs), Strict}
}

// Lt constructs the constraint lhs < rhs.
func Lt(lhs Expr, rhs Expr) Constraint {
	return Constraint{rhs.Minus(lhs), Strict}
}

// Relate constructs the constraint "lhs op rhs".  This will panic for the
// NotEqual symbol, since that is not a (convex) constraint.
func Relate(lhs Expr, op RelSym, rhs Expr) Constraint {
	switch op {
	case LessThan:
		return Lt(lhs, rhs)
	case LessOrEqual:
		return Leq(lhs, rhs)
	case Equal:
		return Eq(lhs, rhs)
	case GreaterOrEqual:
		return Geq(lhs, rhs)
	case GreaterThan:
		return Gt(lhs, rhs)
	}
	//
	panic(fmt.Sprintf("cannot construct constraint with %s", op))
}

// Expr returns the expression e of this constraint "e ⋈ 0".
func (c Constraint) Expr() Expr {
	return c.expr
}

// Kind returns the kind of this constraint.
func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

// IsEquality checks whether this is an equality constraint.
func (c Constraint) IsEquality() bool {
	return c.kind == Equality
}

// IsInequality checks whether this is a (strict or non-strict) inequality.
func (c Constraint) IsInequality() bool {
	return c.kind != Equality
}

// IsStrict checks whether this is a strict inequality.
func (c Constraint) IsStrict() bool {
	return c.kind == Strict
}

// SpaceDimension returns the least space dimension in which this constraint is
// meaningful.
func (c Constraint) SpaceDimension() uint {
	return c.expr.SpaceDimension()
}

// Coefficient returns the coefficient of a given variable.
func (c Constraint) Coefficient(v Variable) *big.Int {
	return c.expr.Coefficient(v)
}

// Inhomogeneous returns the constant term of this constraint.
func (c Constraint) Inhomogeneous() *big.Int {
	return c.expr.Inhomogeneous()
}

// IsTautological checks whether this constraint is satisfied by every point,
// which holds only for trivially true constant constraints (e.g. 1 >= 0).
func (c Constraint) IsTautological() bool {
	if !c.expr.IsConstant() {
		return false
	}
	//
	sign := c.expr.inhomogeneous.Sign()
	//
	switch c.kind {
	case Equality:
		return sign == 0
	case NonStrict:
		return sign >= 0
	default:
		return sign > 0
	}
}

// IsInconsistent checks whether this constraint is satisfied by no point,
// which holds only for trivially false constant constraints (e.g. 0 > 0).
func (c Constraint) IsInconsistent() bool {
	return c.expr.IsConstant() && !c.IsTautological()
}

// Negate returns the complement of this inequality.  Since the complement of
// an equality is not convex, false is returned in that case.
func (c Constraint) Negate() (Constraint, bool) {
	switch c.kind {
	case NonStrict:
		return Constraint{c.expr.Neg(), Strict}, true
	case Strict:
		return Constraint{c.expr.Neg(), NonStrict}, true
	default:
		return c, false
	}
}

// IsSatisfiedBy checks whether a given (rational) point satisfies this
// constraint.
func (c Constraint) IsSatisfiedBy(point []*big.Rat) bool {
	sign := c.expr.EvalRat(point).Sign()
	//
	switch c.kind {
	case Equality:
		return sign == 0
	case NonStrict:
		return sign >= 0
	default:
		return sign > 0
	}
}

// BoundedDifference decomposes this constraint as "a*(xi - xj) + b ⋈ 0" or, if
// only one variable is involved, as "a*xi + b ⋈ 0" (where j is nil).  This
// fails when the constraint has any other form, including when it is
// constant.
func (c Constraint) BoundedDifference() (i Variable, j *Variable, a *big.Int, b *big.Int, ok bool) {
	if i, j, a, ok = c.expr.Difference(); ok {
		return i, j, a, c.expr.Inhomogeneous(), true
	}
	//
	return 0, nil, nil, nil, false
}

// Equals checks whether two constraints are syntactically identical.
func (c Constraint) Equals(o Constraint) bool {
	return c.kind == o.kind && c.expr.Equals(o.expr)
}

// String returns a human-readable representation of this constraint, such as
// "A - B >= -3".
func (c Constraint) String() string {
	var (
		lhs = c.expr.WithInhomogeneous(big.NewInt(0))
		rhs = c.expr.Inhomogeneous()
	)
	//
	return fmt.Sprintf("%s %s %s", lhs.String(), c.kind.String(), rhs.Neg(rhs).String())
}

// ConstraintSystem is an ordered collection of constraints.
type ConstraintSystem []Constraint

// SpaceDimension returns the least space dimension in which every constraint
// of this system is meaningful.
func (cs ConstraintSystem) SpaceDimension() uint {
	var n uint
	//
	for _, c := range cs {
		n = max(n, c.SpaceDimension())
	}
	//
	return n
}

// HasStrictInequalities checks whether any constraint of this system is
// strict.
func (cs ConstraintSystem) HasStrictInequalities() bool {
	for _, c := range cs {
		if c.IsStrict() {
			return true
		}
	}
	//
	return false
}

// IsSatisfiedBy checks whether a given point satisfies every constraint.
func (cs ConstraintSystem) IsSatisfiedBy(point []*big.Rat) bool {
	for _, c := range cs {
		if !c.IsSatisfiedBy(point) {
			return false
		}
	}
	//
	return true
}

func (cs ConstraintSystem) String() string {
	var items []string
	//
	for _, c := range cs {
		items = append(items, c.String())
	}
	//
	return fmt.Sprintf("{%s}", strings.Join(items, ", "))
}

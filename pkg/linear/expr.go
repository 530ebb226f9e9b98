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
	"bytes"
	"math/big"
)

// Expr represents a linear expression a1*x1 + ... + an*xn + b with integer
// coefficients.  Expressions are immutable values: every operation returns a
// fresh expression.
type Expr struct {
	// coefficient of each variable, where trailing zeros are trimmed.
	coeffs []big.Int
	// constant (inhomogeneous) term.
	inhomogeneous big.Int
}

// NewExpr constructs a constant expression.
func NewExpr(constant int64) Expr {
	var e Expr
	//
	e.inhomogeneous.SetInt64(constant)
	//
	return e
}

// Var constructs the expression consisting solely of a given variable.
func Var(v Variable) Expr {
	return Term(1, v)
}

// Term constructs the expression k*v.
func Term(k int64, v Variable) Expr {
	return NewExpr(0).WithCoefficient(v, big.NewInt(k))
}

// Sum adds together zero or more expressions.
func Sum(exprs ...Expr) Expr {
	sum := NewExpr(0)
	//
	for _, e := range exprs {
		sum = sum.Plus(e)
	}
	//
	return sum
}

// SpaceDimension returns the least space dimension in which this expression is
// meaningful.
func (e Expr) SpaceDimension() uint {
	return uint(len(e.coeffs))
}

// Coefficient returns (a copy of) the coefficient of a given variable.
func (e Expr) Coefficient(v Variable) *big.Int {
	if v.Id() >= uint(len(e.coeffs)) {
		return big.NewInt(0)
	}
	//
	return new(big.Int).Set(&e.coeffs[v])
}

// Inhomogeneous returns (a copy of) the constant term of this expression.
func (e Expr) Inhomogeneous() *big.Int {
	return new(big.Int).Set(&e.inhomogeneous)
}

// IsConstant checks whether every variable coefficient is zero.
func (e Expr) IsConstant() bool {
	return len(e.coeffs) == 0
}

// IsZero checks whether this expression is identically zero.
func (e Expr) IsZero() bool {
	return e.IsConstant() && e.inhomogeneous.Sign() == 0
}

// NonZeroVars returns the variables with a non-zero coefficient, in ascending
// order.
func (e Expr) NonZeroVars() []Variable {
	var vars []Variable
	//
	for i := range e.coeffs {
		if e.coeffs[i].Sign() != 0 {
			vars = append(vars, Variable(i))
		}
	}
	//
	return vars
}

// WithCoefficient returns a copy of this expression where the coefficient of v
// is replaced by k.
func (e Expr) WithCoefficient(v Variable, k *big.Int) Expr {
	n := max(uint(len(e.coeffs)), v.SpaceDimension())
	r := e.resized(n)
	r.coeffs[v].Set(k)
	//
	return r.trim()
}

// WithInhomogeneous returns a copy of this expression where the constant term
// is replaced by k.
func (e Expr) WithInhomogeneous(k *big.Int) Expr {
	r := e.resized(uint(len(e.coeffs)))
	r.inhomogeneous.Set(k)
	//
	return r
}

// Plus returns the sum of this expression and another.
func (e Expr) Plus(o Expr) Expr {
	r := e.resized(max(uint(len(e.coeffs)), uint(len(o.coeffs))))
	//
	for i := range o.coeffs {
		r.coeffs[i].Add(&r.coeffs[i], &o.coeffs[i])
	}
	//
	r.inhomogeneous.Add(&r.inhomogeneous, &o.inhomogeneous)
	//
	return r.trim()
}

// Minus returns the difference between this expression and another.
func (e Expr) Minus(o Expr) Expr {
	return e.Plus(o.Neg())
}

// PlusConst returns this expression with k added to its constant term.
func (e Expr) PlusConst(k int64) Expr {
	return e.Plus(NewExpr(k))
}

// Neg returns the negation of this expression.
func (e Expr) Neg() Expr {
	return e.Times(-1)
}

// Times returns this expression multiplied by a constant.
func (e Expr) Times(k int64) Expr {
	return e.TimesInt(big.NewInt(k))
}

// TimesInt returns this expression multiplied by a (big) constant.
func (e Expr) TimesInt(k *big.Int) Expr {
	r := e.resized(uint(len(e.coeffs)))
	//
	for i := range r.coeffs {
		r.coeffs[i].Mul(&r.coeffs[i], k)
	}
	//
	r.inhomogeneous.Mul(&r.inhomogeneous, k)
	//
	return r.trim()
}

// Equals checks whether two expressions have identical coefficients.
func (e Expr) Equals(o Expr) bool {
	if len(e.coeffs) != len(o.coeffs) || e.inhomogeneous.Cmp(&o.inhomogeneous) != 0 {
		return false
	}
	//
	for i := range e.coeffs {
		if e.coeffs[i].Cmp(&o.coeffs[i]) != 0 {
			return false
		}
	}
	//
	return true
}

// EvalRat evaluates this expression at a given (rational) point, where
// missing coordinates are taken to be zero.
func (e Expr) EvalRat(point []*big.Rat) *big.Rat {
	var (
		val  = new(big.Rat).SetInt(&e.inhomogeneous)
		term big.Rat
		k    big.Rat
	)
	//
	for i := range e.coeffs {
		if i < len(point) && e.coeffs[i].Sign() != 0 {
			k.SetInt(&e.coeffs[i])
			term.Mul(&k, point[i])
			val.Add(val, &term)
		}
	}
	//
	return val
}

// Difference determines whether this expression has the form a*(xi - xj) + b,
// or the form a*xi + b.  In the latter case, j is returned as nil.  The
// coefficient a of xi is returned when this holds, whilst ok is false for
// constant expressions and for expressions of any other form.
func (e Expr) Difference() (i Variable, j *Variable, a *big.Int, ok bool) {
	var vars = e.NonZeroVars()
	//
	switch len(vars) {
	case 1:
		return vars[0], nil, e.Coefficient(vars[0]), true
	case 2:
		var (
			first  = e.Coefficient(vars[0])
			second = e.Coefficient(vars[1])
			neg    big.Int
		)
		//
		if neg.Neg(second); first.Cmp(&neg) == 0 {
			return vars[0], &vars[1], first, true
		}
	}
	//
	return 0, nil, nil, false
}

// String returns a human-readable representation of this expression, such as
// "2*A - B + 3".
func (e Expr) String() string {
	var (
		buf   bytes.Buffer
		first = true
	)
	//
	for _, v := range e.NonZeroVars() {
		writeTerm(&buf, &e.coeffs[v], v.String(), first)
		first = false
	}
	//
	if first || e.inhomogeneous.Sign() != 0 {
		writeTerm(&buf, &e.inhomogeneous, "", first)
	}
	//
	return buf.String()
}

func writeTerm(buf *bytes.Buffer, k *big.Int, name string, first bool) {
	var abs big.Int
	//
	abs.Abs(k)
	//
	switch {
	case first && k.Sign() < 0:
		buf.WriteString("-")
	case !first && k.Sign() < 0:
		buf.WriteString(" - ")
	case !first:
		buf.WriteString(" + ")
	}
	//
	switch {
	case name == "":
		buf.WriteString(abs.String())
	case abs.IsInt64() && abs.Int64() == 1:
		buf.WriteString(name)
	default:
		buf.WriteString(abs.String())
		buf.WriteString("*")
		buf.WriteString(name)
	}
}

// Construct a deep copy of this expression with exactly n coefficients.
func (e Expr) resized(n uint) Expr {
	var r Expr
	//
	r.coeffs = make([]big.Int, n)
	//
	for i := range e.coeffs {
		if uint(i) < n {
			r.coeffs[i].Set(&e.coeffs[i])
		}
	}
	//
	r.inhomogeneous.Set(&e.inhomogeneous)
	//
	return r
}

// Remove trailing zero coefficients.
func (e Expr) trim() Expr {
	n := len(e.coeffs)
	//
	for n > 0 && e.coeffs[n-1].Sign() == 0 {
		n--
	}
	//
	e.coeffs = e.coeffs[:n]
	//
	return e
}

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
package lisp

import (
	"math/big"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/source/sexp"
)

// ToLisp converts a named shape back into its declaration, using either the
// constraints of its closure or those of its shortest-path reduction.
func ToLisp(shape NamedShape, minimized bool) *sexp.List {
	var cs linear.ConstraintSystem
	//
	if minimized {
		cs = shape.Shape.MinimizedConstraints()
	} else {
		cs = shape.Shape.Constraints()
	}
	//
	vars := sexp.NewList(sexp.NewSymbol("vars"))
	//
	for _, v := range shape.Vars {
		vars.Append(sexp.NewSymbol(v))
	}
	//
	list := sexp.NewList(sexp.NewSymbol("shape"), sexp.NewSymbol(shape.Name), vars)
	//
	for _, c := range cs {
		list.Append(ConstraintToLisp(c, shape.Vars))
	}
	//
	return list
}

// Format renders a named shape, breaking its declaration over multiple lines
// when it does not fit within a given width.
func Format(shape NamedShape, minimized bool, width uint) string {
	return sexp.NewFormatter(width).Break("shape", 3).Format(ToLisp(shape, minimized))
}

// ConstraintToLisp converts a constraint into an S-Expression, such that
// variables are printed with the given names.  Constraints are arranged to
// read naturally, for example "(<= (- x y) 3)" rather than "(>= (- y x) -3)".
func ConstraintToLisp(c linear.Constraint, vars []string) sexp.SExp {
	var (
		e   = c.Expr()
		op  = linear.GreaterOrEqual
		rhs = new(big.Int).Neg(e.Inhomogeneous())
	)
	//
	if c.IsStrict() {
		op = linear.GreaterThan
	} else if c.IsEquality() {
		op = linear.Equal
	}
	// Ensure the leading coefficient is positive
	if nz := e.NonZeroVars(); len(nz) > 0 && e.Coefficient(nz[0]).Sign() < 0 {
		e = e.Neg()
		rhs.Neg(rhs)
		op = op.Reverse()
	}
	//
	lhs := exprToLisp(e.WithInhomogeneous(big.NewInt(0)), vars)
	//
	return sexp.NewList(sexp.NewSymbol(op.String()), lhs, sexp.NewSymbol(rhs.String()))
}

// Convert a linear expression into an S-Expression, gathering the positive
// and negative terms so that differences read as "(- x y)".
func exprToLisp(e linear.Expr, vars []string) sexp.SExp {
	var pos, neg []sexp.SExp
	//
	for _, v := range e.NonZeroVars() {
		k := e.Coefficient(v)
		//
		if k.Sign() > 0 {
			pos = append(pos, termToLisp(k, v, vars))
		} else {
			neg = append(neg, termToLisp(new(big.Int).Neg(k), v, vars))
		}
	}
	//
	if k := e.Inhomogeneous(); k.Sign() != 0 {
		pos = append(pos, sexp.NewSymbol(k.String()))
	}
	//
	switch {
	case len(neg) == 0:
		return sum(pos)
	case len(pos) == 0:
		return sexp.NewList(sexp.NewSymbol("-"), sum(neg))
	default:
		return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol("-"), sum(pos)}, neg...)...)
	}
}

func termToLisp(k *big.Int, v linear.Variable, vars []string) sexp.SExp {
	name := sexp.NewSymbol(variableName(v, vars))
	//
	if k.IsInt64() && k.Int64() == 1 {
		return name
	}
	//
	return sexp.NewList(sexp.NewSymbol("*"), sexp.NewSymbol(k.String()), name)
}

func sum(terms []sexp.SExp) sexp.SExp {
	switch len(terms) {
	case 0:
		return sexp.NewSymbol("0")
	case 1:
		return terms[0]
	default:
		return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol("+")}, terms...)...)
	}
}

func variableName(v linear.Variable, vars []string) string {
	if v.Id() < uint(len(vars)) {
		return vars[v.Id()]
	}
	//
	return v.String()
}

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
	"math/big"
)

// DegenerateElement identifies one of the two trivial elements of a numeric
// domain.
type DegenerateElement uint8

const (
	// UniverseElement is the element containing every point.
	UniverseElement DegenerateElement = iota
	// EmptyElement is the element containing no point.
	EmptyElement
)

func (k DegenerateElement) String() string {
	if k == EmptyElement {
		return "empty"
	}
	//
	return "universe"
}

// DifferenceLeq constructs the constraint "pos - neg <= bound", where either
// variable may be nil (meaning it is zero).  The constraint is scaled by the
// denominator of the bound so that all coefficients are integers.
func DifferenceLeq(pos *Variable, neg *Variable, bound *big.Rat) Constraint {
	return Constraint{difference(neg, pos, bound), NonStrict}
}

// DifferenceEq constructs the constraint "pos - neg == bound", in the same
// fashion as DifferenceLeq.
func DifferenceEq(pos *Variable, neg *Variable, bound *big.Rat) Constraint {
	return Constraint{difference(pos, neg, new(big.Rat).Neg(bound)), Equality}
}

// Construct d*(pos - neg) + n where n/d is the given rational.
func difference(pos *Variable, neg *Variable, val *big.Rat) Expr {
	var (
		d = val.Denom()
		e = NewExpr(0).WithInhomogeneous(val.Num())
	)
	//
	if pos != nil {
		e = e.WithCoefficient(*pos, d)
	}
	//
	if neg != nil {
		e = e.WithCoefficient(*neg, new(big.Int).Neg(d))
	}
	//
	return e
}

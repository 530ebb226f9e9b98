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
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of all errors arising from a caller violating
// the precondition of an operation.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrLength is the root of all errors arising from a space dimension growing
// beyond MaxSpaceDimension.
var ErrLength = errors.New("length error")

// ErrDimensionIncompatible is returned when an argument has a space dimension
// incompatible with that of the shape.
var ErrDimensionIncompatible = fmt.Errorf("%w: dimension incompatible", ErrInvalidArgument)

// ErrStrictInequality is returned when a strict inequality (or strict relation
// symbol) is given to an operation requiring a non-strict one.
var ErrStrictInequality = fmt.Errorf("%w: strict inequality", ErrInvalidArgument)

// ErrNotBoundedDifference is returned when a constraint is neither a bound on
// a single variable, nor a bound on the difference of two variables.
var ErrNotBoundedDifference = fmt.Errorf("%w: not a bounded difference", ErrInvalidArgument)

// ErrZeroDenominator is returned when an affine transformation has a zero
// denominator.
var ErrZeroDenominator = fmt.Errorf("%w: zero denominator", ErrInvalidArgument)

// ErrInvalidRelationSymbol is returned when the != symbol is given to a
// generalised affine transformation.
var ErrInvalidRelationSymbol = fmt.Errorf("%w: invalid relation symbol", ErrInvalidArgument)

// ErrInvalidGenerators is returned when a non-empty generator system contains
// no points.
var ErrInvalidGenerators = fmt.Errorf("%w: invalid generator system", ErrInvalidArgument)

// ErrInvalidVariable is returned when a variable is used in a position where
// it is not permitted (e.g. folding a dimension into itself).
var ErrInvalidVariable = fmt.Errorf("%w: invalid variable", ErrInvalidArgument)

// ErrMaxSpaceDimension is returned when an operation would produce a shape
// whose space dimension exceeds MaxSpaceDimension.
var ErrMaxSpaceDimension = fmt.Errorf("%w: maximum space dimension exceeded", ErrLength)

func dimensionError(op string, what string, got uint, dim uint) error {
	return fmt.Errorf("%s: %w (%s has dimension %d, shape has dimension %d)", op, ErrDimensionIncompatible, what, got,
		dim)
}

func checkSpaceDimension(op string, dim uint) error {
	if dim > MaxSpaceDimension {
		return fmt.Errorf("%s: %w (%d > %d)", op, ErrMaxSpaceDimension, dim, MaxSpaceDimension)
	}
	//
	return nil
}

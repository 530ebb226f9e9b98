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

	"github.com/consensys/go-bdshape/pkg/linear"
)

// AddSpaceDimensionsAndEmbed appends m unconstrained dimensions to this shape.
func (s *Shape) AddSpaceDimensionsAndEmbed(m uint) error {
	if err := checkSpaceDimension("AddSpaceDimensionsAndEmbed", s.SpaceDimension()+m); err != nil {
		return err
	}
	// Unconstrained dimensions preserve closure
	s.matrix.Resize(s.SpaceDimension() + m)
	s.reduction = nil
	//
	return nil
}

// AddSpaceDimensionsAndProject appends m dimensions to this shape, each of
// which is constrained to be zero.
func (s *Shape) AddSpaceDimensionsAndProject(m uint) error {
	if err := checkSpaceDimension("AddSpaceDimensionsAndProject", s.SpaceDimension()+m); err != nil {
		return err
	}
	//
	var n = s.matrix.Order()
	//
	s.matrix.Resize(s.SpaceDimension() + m)
	s.reduction = nil
	// Each new variable is equivalent to the zero index, so copying its bounds
	// preserves closure.
	for k := n; k < s.matrix.Order(); k++ {
		for j := uint(0); j < s.matrix.Order(); j++ {
			if j != k {
				s.matrix.Set(k, j, s.matrix.Get(0, j))
				s.matrix.Set(j, k, s.matrix.Get(j, 0))
			}
		}
	}
	//
	return nil
}

// RemoveSpaceDimensions removes a given set of dimensions from this shape,
// such that the remaining dimensions are renumbered in order.
func (s *Shape) RemoveSpaceDimensions(vs linear.VarSet) error {
	if vs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError("RemoveSpaceDimensions", "variable set", vs.SpaceDimension(), s.SpaceDimension())
	} else if vs.IsEmpty() {
		return nil
	}
	//
	var (
		dim    = s.SpaceDimension() - vs.Len()
		target = make([]uint, s.matrix.Order())
		next   = uint(1)
	)
	//
	for i := uint(1); i < s.matrix.Order(); i++ {
		if !vs.Contains(*variable(i)) {
			target[i] = next
			next++
		}
	}
	//
	s.remap(dim, func(i uint) (uint, bool) { return target[i], target[i] != 0 })
	//
	return nil
}

// RemoveHigherSpaceDimensions removes every dimension of this shape from a
// given dimension onwards.
func (s *Shape) RemoveHigherSpaceDimensions(dim uint) error {
	if dim > s.SpaceDimension() {
		return dimensionError("RemoveHigherSpaceDimensions", "new dimension", dim, s.SpaceDimension())
	}
	//
	s.removeHigher(dim)
	//
	return nil
}

// MapSpaceDimensions renames the dimensions of this shape according to a
// partial function.  Dimensions not mapped are removed, and the space
// dimension becomes one more than the largest dimension in the codomain.
func (s *Shape) MapSpaceDimensions(pf *linear.PartialFunction) error {
	if pf.HasEmptyCodomain() {
		s.removeHigher(0)
		return nil
	}
	//
	var dim = pf.MaxInCodomain().SpaceDimension()
	//
	if err := checkSpaceDimension("MapSpaceDimensions", dim); err != nil {
		return err
	}
	//
	s.remap(dim, func(i uint) (uint, bool) {
		if j, ok := pf.MapsTo(*variable(i)); ok {
			return index(j), true
		}
		//
		return 0, false
	})
	//
	return nil
}

// ExpandSpaceDimension appends m copies of a given variable to this shape,
// where each copy has the same constraints as the variable with respect to
// every other (original) dimension.
func (s *Shape) ExpandSpaceDimension(v linear.Variable, m uint) error {
	const op = "ExpandSpaceDimension"
	//
	if v.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "variable", v.SpaceDimension(), s.SpaceDimension())
	} else if err := checkSpaceDimension(op, s.SpaceDimension()+m); err != nil {
		return err
	} else if m == 0 {
		return nil
	}
	//
	var (
		n  = s.matrix.Order()
		vi = index(v)
	)
	//
	s.matrix.Resize(s.SpaceDimension() + m)
	//
	for k := n; k < s.matrix.Order(); k++ {
		for j := uint(0); j < n; j++ {
			if j != vi {
				s.matrix.Set(k, j, s.matrix.Get(vi, j))
				s.matrix.Set(j, k, s.matrix.Get(j, vi))
			}
		}
	}
	//
	s.markNotClosed()
	//
	return nil
}

// FoldSpaceDimensions folds a set of dimensions into a given destination
// variable, such that the destination takes any value taken by one of them.
// The folded dimensions are then removed.
func (s *Shape) FoldSpaceDimensions(vs linear.VarSet, dest linear.Variable) error {
	const op = "FoldSpaceDimensions"
	//
	if dest.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "variable", dest.SpaceDimension(), s.SpaceDimension())
	} else if vs.SpaceDimension() > s.SpaceDimension() {
		return dimensionError(op, "variable set", vs.SpaceDimension(), s.SpaceDimension())
	} else if vs.Contains(dest) {
		return fmt.Errorf("%s: %w (%s folded into itself)", op, ErrInvalidVariable, dest)
	} else if vs.IsEmpty() {
		return nil
	}
	//
	if s.close() {
		di := index(dest)
		//
		for _, v := range vs.Vars() {
			vi := index(v)
			//
			// Includes the folded dimensions themselves, so that no stale
			// difference with dest survives their removal.
			for k := uint(0); k < s.matrix.Order(); k++ {
				if k != di {
					s.matrix.Set(di, k, s.matrix.Get(di, k).Max(s.matrix.Get(vi, k)))
					s.matrix.Set(k, di, s.matrix.Get(k, di).Max(s.matrix.Get(k, vi)))
				}
			}
		}
		//
		s.markNotClosed()
	}
	//
	return s.RemoveSpaceDimensions(vs)
}

// ConcatenateAssign appends the dimensions of another shape to this shape,
// such that the result constrains the original dimensions as this shape does,
// and the new dimensions as the other shape does.
func (s *Shape) ConcatenateAssign(o *Shape) error {
	var (
		n   = s.matrix.Order()
		dim = s.SpaceDimension() + o.SpaceDimension()
	)
	//
	if err := checkSpaceDimension("ConcatenateAssign", dim); err != nil {
		return err
	}
	//
	s.matrix.Resize(dim)
	//
	if o.status == statusEmpty {
		s.setEmpty()
		return nil
	}
	// Copy bounds of the other shape, where its zero index is ours.
	for i := uint(0); i < o.matrix.Order(); i++ {
		for j := uint(0); j < o.matrix.Order(); j++ {
			if i != j {
				s.matrix.Set(shift(i, n), shift(j, n), o.matrix.Get(i, j))
			}
		}
	}
	//
	s.markNotClosed()
	//
	return nil
}

// Remove every dimension from a given dimension onwards.
func (s *Shape) removeHigher(dim uint) {
	if s.close() {
		// Projection of a closed matrix remains closed.
		s.matrix.Resize(dim)
		s.markClosed()
	} else {
		s.matrix.Resize(dim)
	}
}

// Remap this shape into a given dimension, according to a given mapping of
// indices.
func (s *Shape) remap(dim uint, f func(uint) (uint, bool)) {
	if s.close() {
		s.matrix = s.matrix.Remap(dim, f)
		s.markClosed()
	} else {
		s.matrix.Resize(dim)
	}
}

// Shift index i of a matrix appended after n indices (excluding the zero
// index, which is shared).
func shift(i uint, n uint) uint {
	if i == 0 {
		return 0
	}
	//
	return i + n - 1
}


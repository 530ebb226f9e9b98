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

	"github.com/consensys/go-bdshape/pkg/box"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// FromBox constructs the shape whose only constraints are the variable bounds
// of a given box.
func FromBox(b *box.Box) (*Shape, error) {
	s, err := NewShape(b.SpaceDimension(), linear.UniverseElement)
	//
	if err != nil {
		return nil, err
	} else if b.IsEmpty() {
		s.setEmpty()
		return s, nil
	}
	//
	for i := uint(0); i < b.SpaceDimension(); i++ {
		var (
			v   = linear.Variable(i)
			itv = b.Interval(v)
		)
		//
		s.matrix.Set(index(v), 0, itv.MaxValue())
		s.matrix.Set(0, index(v), itv.MinValue().Neg())
	}
	//
	s.markNotClosed()
	//
	return s, nil
}

// ToBox constructs the smallest box containing this shape.
func (s *Shape) ToBox() *box.Box {
	var n = s.SpaceDimension()
	//
	if !s.close() {
		return box.New(n, linear.EmptyElement)
	}
	//
	b := box.New(n, linear.UniverseElement)
	//
	for i := uint(1); i <= n; i++ {
		itv := math.NewInterval(s.matrix.Get(0, i).Neg(), s.matrix.Get(i, 0))
		b.SetInterval(*variable(i), itv)
	}
	//
	return b
}

// FromGenerators constructs the smallest shape containing every generator of
// a given system.  A non-empty system must contain at least one point.
func FromGenerators(gs linear.GeneratorSystem) (*Shape, error) {
	var dim = gs.SpaceDimension()
	//
	if len(gs) == 0 {
		return NewShape(dim, linear.EmptyElement)
	} else if !gs.HasPoints() {
		return nil, fmt.Errorf("FromGenerators: %w (no points)", ErrInvalidGenerators)
	}
	//
	s, err := NewShape(dim, linear.UniverseElement)
	//
	if err != nil {
		return nil, err
	}
	//
	var (
		n     = s.matrix.Order()
		first = true
	)
	// Bound differences between the coordinates of every point
	for _, g := range gs {
		if !g.IsPointOrClosurePoint() {
			continue
		}
		//
		coords := append([]*big.Rat{new(big.Rat)}, g.Coordinates(dim)...)
		//
		for i := uint(0); i < n; i++ {
			for j := uint(0); j < n; j++ {
				if i == j {
					continue
				}
				//
				d := math.NewInfRat(new(big.Rat).Sub(coords[i], coords[j]))
				//
				if !first {
					d = d.Max(s.matrix.Get(i, j))
				}
				//
				s.matrix.Set(i, j, d)
			}
		}
		//
		first = false
	}
	// Relax any difference along which a ray or line extends
	for _, g := range gs {
		if g.IsPointOrClosurePoint() {
			continue
		}
		//
		for i := uint(0); i < n; i++ {
			for j := uint(0); j < n; j++ {
				if i == j {
					continue
				}
				//
				d := new(big.Int).Sub(coefficient(g, i), coefficient(g, j)).Sign()
				//
				if d > 0 || (d != 0 && g.IsLine()) {
					s.matrix.Set(i, j, math.PosInfinity)
				}
			}
		}
	}
	//
	s.markClosed()
	//
	return s, nil
}

// Determine the coefficient of a generator at a given matrix index.
func coefficient(g linear.Generator, i uint) *big.Int {
	if i == 0 {
		return new(big.Int)
	}
	//
	return g.Coefficient(*variable(i))
}

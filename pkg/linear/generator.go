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

// GeneratorKind identifies the kind of a generator.
type GeneratorKind uint8

const (
	// PointGen is a point of the generated set.
	PointGen GeneratorKind = iota
	// ClosurePointGen is a point of the topological closure of the generated
	// set.
	ClosurePointGen
	// RayGen is a direction of unboundedness.
	RayGen
	// LineGen is a bidirectional direction of unboundedness.
	LineGen
)

func (k GeneratorKind) String() string {
	switch k {
	case PointGen:
		return "point"
	case ClosurePointGen:
		return "closure_point"
	case RayGen:
		return "ray"
	case LineGen:
		return "line"
	}
	//
	panic("unreachable")
}

// Generator represents a point, closure point, ray or line.  The coordinates
// of a (closure) point are given by the coefficients of its expression divided
// by its (positive) divisor.  Rays and lines have divisor zero.
type Generator struct {
	kind    GeneratorKind
	expr    Expr
	divisor big.Int
}

// Point constructs the point whose coordinates are the coefficients of e.  The
// constant term of e is ignored.
func Point(e Expr) Generator {
	return RationalPoint(e, big.NewInt(1))
}

// RationalPoint constructs the point whose coordinates are given by the
// coefficients of e divided by d.  This will panic if d is zero.
func RationalPoint(e Expr, d *big.Int) Generator {
	return newPoint(PointGen, e, d)
}

// ClosurePoint constructs a closure point, in the same fashion as
// RationalPoint.  This will panic if d is zero.
func ClosurePoint(e Expr, d *big.Int) Generator {
	return newPoint(ClosurePointGen, e, d)
}

// Ray constructs the ray with direction e.  This will panic if e has no
// non-zero variable coefficient.
func Ray(e Expr) Generator {
	return newDirection(RayGen, e)
}

// Line constructs the line with direction e.  This will panic if e has no
// non-zero variable coefficient.
func Line(e Expr) Generator {
	return newDirection(LineGen, e)
}

func newPoint(kind GeneratorKind, e Expr, d *big.Int) Generator {
	var g = Generator{kind: kind, expr: e.WithInhomogeneous(big.NewInt(0))}
	//
	switch d.Sign() {
	case 0:
		panic(fmt.Sprintf("%s has zero divisor", kind))
	case -1:
		g.expr = g.expr.Neg()
		g.divisor.Neg(d)
	default:
		g.divisor.Set(d)
	}
	//
	return g
}

func newDirection(kind GeneratorKind, e Expr) Generator {
	if e.IsConstant() {
		panic(fmt.Sprintf("%s has zero direction", kind))
	}
	//
	return Generator{kind: kind, expr: e.WithInhomogeneous(big.NewInt(0))}
}

// Kind returns the kind of this generator.
func (g Generator) Kind() GeneratorKind {
	return g.kind
}

// IsPoint checks whether this generator is a point.
func (g Generator) IsPoint() bool {
	return g.kind == PointGen
}

// IsClosurePoint checks whether this generator is a closure point.
func (g Generator) IsClosurePoint() bool {
	return g.kind == ClosurePointGen
}

// IsPointOrClosurePoint checks whether this generator is either a point or a
// closure point.
func (g Generator) IsPointOrClosurePoint() bool {
	return g.kind == PointGen || g.kind == ClosurePointGen
}

// IsRay checks whether this generator is a ray.
func (g Generator) IsRay() bool {
	return g.kind == RayGen
}

// IsLine checks whether this generator is a line.
func (g Generator) IsLine() bool {
	return g.kind == LineGen
}

// SpaceDimension returns the least space dimension in which this generator is
// meaningful.
func (g Generator) SpaceDimension() uint {
	return g.expr.SpaceDimension()
}

// Coefficient returns the coefficient of a given variable.
func (g Generator) Coefficient(v Variable) *big.Int {
	return g.expr.Coefficient(v)
}

// Expr returns the (homogeneous) expression of this generator.
func (g Generator) Expr() Expr {
	return g.expr
}

// Divisor returns the divisor of this generator, which is zero for rays and
// lines.
func (g Generator) Divisor() *big.Int {
	return new(big.Int).Set(&g.divisor)
}

// Coordinate returns the given coordinate of a (closure) point.  For rays and
// lines this is simply the coefficient of the variable.
func (g Generator) Coordinate(v Variable) *big.Rat {
	var r = new(big.Rat).SetInt(g.expr.Coefficient(v))
	//
	if g.IsPointOrClosurePoint() {
		r.Quo(r, new(big.Rat).SetInt(&g.divisor))
	}
	//
	return r
}

// Coordinates returns every coordinate of this generator in a space of the
// given dimension.
func (g Generator) Coordinates(dim uint) []*big.Rat {
	coords := make([]*big.Rat, dim)
	//
	for i := range coords {
		coords[i] = g.Coordinate(Variable(i))
	}
	//
	return coords
}

func (g Generator) String() string {
	if g.IsPointOrClosurePoint() && (!g.divisor.IsInt64() || g.divisor.Int64() != 1) {
		return fmt.Sprintf("%s((%s)/%s)", g.kind, g.expr, g.divisor.String())
	}
	//
	return fmt.Sprintf("%s(%s)", g.kind, g.expr)
}

// GeneratorSystem is an ordered collection of generators.
type GeneratorSystem []Generator

// SpaceDimension returns the least space dimension in which every generator
// of this system is meaningful.
func (gs GeneratorSystem) SpaceDimension() uint {
	var n uint
	//
	for _, g := range gs {
		n = max(n, g.SpaceDimension())
	}
	//
	return n
}

// HasPoints checks whether this system contains at least one point.
func (gs GeneratorSystem) HasPoints() bool {
	for _, g := range gs {
		if g.IsPoint() {
			return true
		}
	}
	//
	return false
}

func (gs GeneratorSystem) String() string {
	var items []string
	//
	for _, g := range gs {
		items = append(items, g.String())
	}
	//
	return fmt.Sprintf("{%s}", strings.Join(items, ", "))
}
